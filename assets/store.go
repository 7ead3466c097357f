// Package assets resolves slide image references to embeddable bytes. A Store is scoped to one
// render: every file it downloads is deleted by Cleanup.
package assets

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/exlskills/storyboardutil/config"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var Log = config.Cfg().GetLogger()

const maxDownloadBytes = 32 << 20

// Image is a decoded-and-checked picture ready to embed. Ext is png, jpeg or gif.
type Image struct {
	Data   []byte
	Ext    string
	Width  int
	Height int
}

type Store struct {
	Client    *http.Client
	TempDir   string
	MaxPixels uint

	mu    sync.Mutex
	files []string
}

// NewStore builds a store from the process configuration.
func NewStore() *Store {
	cfg := config.Cfg()
	return &Store{
		Client:    &http.Client{Timeout: cfg.ImageFetchTimeout},
		TempDir:   cfg.TempDir,
		MaxPixels: cfg.MaxImagePixels,
	}
}

// Resolve loads ref from the local filesystem or over http(s). Remote images are downloaded to a
// uniquely named temp file first.
func (s *Store) Resolve(ctx context.Context, ref string) (*Image, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("empty image reference")
	}
	var (
		fileName string
		err      error
	)
	if IsRemote(ref) {
		fileName, err = s.download(ctx, ref)
	} else {
		fileName, err = GetAbsolutePathFromFileURI(ref)
	}
	if err != nil {
		return nil, err
	}
	data, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read image %s", ref)
	}
	return s.prepare(data)
}

func (s *Store) download(ctx context.Context, url string) (fileName string, err error) {
	ext := strings.ToLower(path.Ext(strings.SplitN(url, "?", 2)[0]))
	if len(ext) > 5 {
		ext = ""
	}
	fileName = filepath.Join(s.tempDir(), "storyboard-"+uuid.New().String()+ext)
	Log.Debug("Downloading ", url, " to ", fileName)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, "invalid image URL")
	}
	req = req.WithContext(ctx)
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	response, err := client.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "error while downloading %s", url)
	}
	defer response.Body.Close()
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", errors.Errorf("error while downloading %s: status %d", url, response.StatusCode)
	}

	output, err := os.Create(fileName)
	if err != nil {
		return "", errors.Wrapf(err, "error while creating %s", fileName)
	}
	s.track(fileName)
	defer output.Close()

	n, err := io.Copy(output, io.LimitReader(response.Body, maxDownloadBytes))
	if err != nil {
		return "", errors.Wrapf(err, "error while downloading %s", url)
	}
	Log.Debug(n, " bytes downloaded")
	return fileName, nil
}

func (s *Store) tempDir() string {
	if s.TempDir != "" {
		return s.TempDir
	}
	return os.TempDir()
}

func (s *Store) track(fileName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files, fileName)
}

// Files lists the temp files the store currently owns.
func (s *Store) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.files...)
}

// Cleanup removes every downloaded file. It is safe to call more than once.
func (s *Store) Cleanup() {
	s.mu.Lock()
	files := s.files
	s.files = nil
	s.mu.Unlock()
	for _, f := range files {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			Log.Warnf("Unable to remove temp image %s: %v", f, err)
		}
	}
}

// prepare keeps png, jpeg and gif as they are unless they exceed MaxPixels. Other decodable
// formats are transcoded to png.
func (s *Store) prepare(data []byte) (*Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "unrecognized image data")
	}
	img := &Image{Data: data, Ext: format, Width: cfg.Width, Height: cfg.Height}
	native := format == "png" || format == "jpeg" || format == "gif"
	tooBig := s.MaxPixels > 0 && (uint(cfg.Width) > s.MaxPixels || uint(cfg.Height) > s.MaxPixels)
	if native && !tooBig {
		return img, nil
	}
	if format == "gif" && tooBig {
		// Scaling would drop every frame but the first.
		return img, nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode image")
	}
	if tooBig {
		decoded = resize.Thumbnail(s.MaxPixels, s.MaxPixels, decoded, resize.Lanczos3)
	}
	out := new(bytes.Buffer)
	if format == "jpeg" {
		err = jpeg.Encode(out, decoded, &jpeg.Options{Quality: 90})
	} else {
		format = "png"
		err = png.Encode(out, decoded)
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode image")
	}
	b := decoded.Bounds()
	return &Image{Data: out.Bytes(), Ext: format, Width: b.Dx(), Height: b.Dy()}, nil
}

// FitWithin scales w x h down (never up) to fit a box, preserving the aspect ratio.
func FitWithin(w, h, boxW, boxH int64) (int64, int64) {
	if w <= 0 || h <= 0 || boxW <= 0 || boxH <= 0 {
		return 0, 0
	}
	scale := 1.0
	if sx := float64(boxW) / float64(w); sx < scale {
		scale = sx
	}
	if sy := float64(boxH) / float64(h); sy < scale {
		scale = sy
	}
	return int64(float64(w) * scale), int64(float64(h) * scale)
}
