package server

import (
	"io"
	"net/http"

	"github.com/exlskills/storyboardutil/extfmt"
	"github.com/exlskills/storyboardutil/jsonhttp"
	"github.com/exlskills/storyboardutil/service"
)

func index(w http.ResponseWriter, r *http.Request) {
	jsonhttp.JSONSuccess(w, nil, "Server healthy")
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok")
}

type formatsResponse struct {
	Export     []string `json:"export"`
	Registered []string `json:"registered"`
}

func formats(w http.ResponseWriter, r *http.Request) {
	jsonhttp.JSONSuccess(w, formatsResponse{Export: service.Formats, Registered: extfmt.Keys()}, "")
}

func uploadForm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, uploadFormHTML)
}

const uploadFormHTML = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Storyboard export</title></head>
<body>
<h1>Storyboard export</h1>
<form method="post" action="/export" enctype="multipart/form-data">
<p><textarea name="script" rows="20" cols="80" placeholder="## Slide: Welcome"></textarea></p>
<p>or upload a table (.csv, .tsv, .xlsx, .xls): <input type="file" name="file"></p>
<p>
<label>Format <select name="format"><option>pptx</option><option>csv</option><option>zip</option></select></label>
<label>File name <input name="filename" value="export"></label>
</p>
<p>
<label>Font <input name="font_name" value="Calibri"></label>
<label>Text color <input name="font_color" value="#111111"></label>
<label>Background <input name="bg_color" value="#FFFFFF"></label>
</p>
<p><button type="submit">Export</button></p>
</form>
</body>
</html>
`
