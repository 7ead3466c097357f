package webmodels

import (
	"encoding/json"
	"io/ioutil"
	"mime"
	"net/http"
	"reflect"

	"github.com/exlskills/storyboardutil/config"
	"github.com/exlskills/storyboardutil/extfmt"
	"github.com/exlskills/storyboardutil/jsonhttp"
	"github.com/pkg/errors"
)

var Log = config.Cfg().GetLogger()

const (
	maxMemory = 32 << 20
	fileField = "file"
)

var formFields = map[string]func(*ExportRequest) *string{
	"script":           func(er *ExportRequest) *string { return &er.Script },
	"format":           func(er *ExportRequest) *string { return &er.Format },
	"font_name":        func(er *ExportRequest) *string { return &er.FontName },
	"font_color":       func(er *ExportRequest) *string { return &er.FontColor },
	"bg_color":         func(er *ExportRequest) *string { return &er.BgColor },
	"filename":         func(er *ExportRequest) *string { return &er.Filename },
	"max_text_lines":   func(er *ExportRequest) *string { return &er.MaxTextLines },
	"max_bullet_lines": func(er *ExportRequest) *string { return &er.MaxBulletLines },
}

// ExportDecodeAndCatchForAPI reads a multipart, urlencoded or JSON export request. On failure it
// writes the error response itself and returns a non-nil error.
func ExportDecodeAndCatchForAPI(w http.ResponseWriter, r *http.Request, outStruct *ExportRequest) error {
	if err := decodeExport(r, outStruct); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonhttp.JSONRequestTooLargeError(w, "Request too large", err.Error())
		} else {
			jsonhttp.JSONBadRequestError(w, "Invalid request", err.Error())
		}
		return err
	}
	if !isCheckableRequest(outStruct) {
		return nil
	}
	method := reflect.ValueOf(outStruct).MethodByName("Parameters").Interface().(func() error)
	if err := method(); err != nil {
		jsonhttp.JSONBadRequestError(w, "", err.Error())
		return err
	}
	return nil
}

func decodeExport(r *http.Request, er *ExportRequest) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		body, err := ioutil.ReadAll(r.Body)
		if err != nil {
			return err
		}
		return errors.Wrap(json.Unmarshal(body, er), "invalid JSON")
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return err
		}
	default:
		if err := r.ParseForm(); err != nil {
			return err
		}
	}
	for name, field := range formFields {
		*field(er) = r.FormValue(name)
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File[fileField]) == 0 {
		return nil
	}
	fh := r.MultipartForm.File[fileField][0]
	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "unable to open upload")
	}
	defer f.Close()
	data, err := ioutil.ReadAll(f)
	if err != nil {
		return errors.Wrap(err, "unable to read upload")
	}
	Log.Debugf("Received upload %s (%d bytes)", fh.Filename, len(data))
	er.Upload = &extfmt.Source{Name: fh.Filename, Data: data}
	return nil
}

func isCheckableRequest(checkAgainst interface{}) bool {
	reader := reflect.TypeOf((*CheckableRequest)(nil)).Elem()
	return reflect.TypeOf(checkAgainst).Implements(reader)
}

// CheckableRequest is a request payload with its own validation, run after decoding.
type CheckableRequest interface {
	Parameters() error
}
