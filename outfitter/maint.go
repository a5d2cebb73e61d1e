package outfitter

import (
	"net/http"

	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/logger"
)

// MaintModeHandler serves every request a 503
// asking clients to retry in 10 minutes.
//
// Embark swaps it in for the router when the MAINTENANCE_MODE env var is truthy.
func MaintModeHandler(d *resp.Responder, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		wx.Header().Set("Retry-After", "600")

		data := map[string]string{"message": "Down for maintenance, please check back soon."}
		err := d.Json(wx, rx, resp.Code(http.StatusServiceUnavailable), resp.Data(data))
		if err != nil {
			l.Error(err.Error(), nil)
			wx.WriteHeader(http.StatusServiceUnavailable)
		}
	})
}
