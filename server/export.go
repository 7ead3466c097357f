package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/exlskills/storyboardutil/jsonhttp"
	"github.com/exlskills/storyboardutil/service"
	"github.com/exlskills/storyboardutil/webmodels"
)

func export(w http.ResponseWriter, r *http.Request) {
	reqObj := webmodels.ExportRequest{}
	if err := webmodels.ExportDecodeAndCatchForAPI(w, r, &reqObj); err != nil {
		Log.Debug("Rejected export request: ", err)
		return
	}
	res, err := service.Export(r.Context(), reqObj.ServiceRequest())
	if err != nil {
		if service.IsClientError(err) {
			Log.Info("Export request failed: ", err)
			jsonhttp.JSONBadRequestError(w, err.Error(), "")
			return
		}
		Log.Errorf("An error occurred exporting %s: %+v", reqObj.Format, err)
		jsonhttp.JSONInternalError(w, "An error occurred building the export", "")
		return
	}
	w.Header().Set("Content-Type", res.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Data); err != nil {
		Log.Warn("Unable to write export response: ", err)
	}
}
