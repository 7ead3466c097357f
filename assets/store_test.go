package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{B: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestResolveLocalFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "pic.png")
	if err := ioutil.WriteFile(p, pngBytes(t, 4, 3), 0644); err != nil {
		t.Fatal(err)
	}
	s := &Store{TempDir: dir}
	for _, ref := range []string{p, "file://" + p} {
		img, err := s.Resolve(context.Background(), ref)
		if err != nil {
			t.Fatalf("%s: %v", ref, err)
		}
		if img.Ext != "png" || img.Width != 4 || img.Height != 3 {
			t.Fatalf("unexpected image %s %dx%d", img.Ext, img.Width, img.Height)
		}
	}
	if len(s.Files()) != 0 {
		t.Fatalf("local files must not be tracked for cleanup")
	}
}

func TestResolveMissingFile(t *testing.T) {
	s := &Store{}
	if _, err := s.Resolve(context.Background(), filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := s.Resolve(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty reference")
	}
}

func TestResolveRemoteDownloadsAndCleansUp(t *testing.T) {
	body := pngBytes(t, 10, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(body)
	}))
	defer srv.Close()

	dir := t.TempDir()
	s := &Store{TempDir: dir, Client: srv.Client()}
	a, err := s.Resolve(context.Background(), srv.URL+"/img.png?x=1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, err := s.Resolve(context.Background(), srv.URL+"/img.png"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if a.Width != 10 {
		t.Fatalf("unexpected width %d", a.Width)
	}
	files := s.Files()
	if len(files) != 2 || files[0] == files[1] {
		t.Fatalf("expected two distinct temp files, got %v", files)
	}
	if _, err := s.Resolve(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Fatalf("expected error for 404")
	}

	s.Cleanup()
	s.Cleanup()
	for _, f := range files {
		if _, err := os.Stat(f); !os.IsNotExist(err) {
			t.Fatalf("expected %s removed", f)
		}
	}
}

func TestResolveCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngBytes(t, 1, 1))
	}))
	defer srv.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &Store{TempDir: t.TempDir(), Client: srv.Client()}
	if _, err := s.Resolve(ctx, srv.URL+"/a.png"); err == nil {
		t.Fatalf("expected cancelled fetch to fail")
	}
}

func TestPrepareDownscales(t *testing.T) {
	s := &Store{MaxPixels: 50}
	img, err := s.prepare(pngBytes(t, 200, 100))
	if err != nil {
		t.Fatal(err)
	}
	if img.Width != 50 || img.Height != 25 || img.Ext != "png" {
		t.Fatalf("unexpected result %s %dx%d", img.Ext, img.Width, img.Height)
	}
	if _, err := s.prepare([]byte("not an image")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestFitWithin(t *testing.T) {
	cases := []struct {
		w, h, bw, bh, ew, eh int64
	}{
		{100, 50, 1000, 1000, 100, 50},
		{200, 100, 100, 100, 100, 50},
		{100, 200, 100, 100, 50, 100},
		{0, 10, 10, 10, 0, 0},
	}
	for _, c := range cases {
		w, h := FitWithin(c.w, c.h, c.bw, c.bh)
		if w != c.ew || h != c.eh {
			t.Errorf("FitWithin(%d,%d,%d,%d) = %d,%d want %d,%d", c.w, c.h, c.bw, c.bh, w, h, c.ew, c.eh)
		}
	}
}

func TestVerifyAndClean(t *testing.T) {
	clean, err := VerifyAndClean("/tmp/a/../deck.txt")
	if err != nil || clean != "file:///tmp/deck.txt" {
		t.Fatalf("got %q, %v", clean, err)
	}
	if _, err := VerifyAndClean("s3://bucket/key"); err == nil {
		t.Fatalf("expected unsupported protocol error")
	}
	if !IsRemote("HTTPS://example.com/a.png") || IsRemote("/local/a.png") || IsRemote("http://") {
		t.Fatalf("unexpected IsRemote classification")
	}
}
