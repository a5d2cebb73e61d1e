package resp

import (
	"net/http"

	"github.com/xy-planning-network/trailhead/http/keyring"
	"github.com/xy-planning-network/trailhead/logger"
)

// newLogContext helps structure a logger.LogContext from the provided parts.
//
// Values stashed in the *http.Request.Context under keys land in LogContext.Data.
func newLogContext(r *http.Request, err error, data any, keys ...keyring.Keyable) *logger.LogContext {
	if r == nil && err == nil && data == nil {
		return nil
	}

	ctx := new(logger.LogContext)
	if r != nil {
		ctx.Request = r
	}

	if err != nil {
		ctx.Error = err
	}

	d := make(map[string]any)
	if data != nil {
		d["data"] = data
	}

	if r != nil {
		for _, key := range keys {
			if key == nil {
				continue
			}

			if val := r.Context().Value(key); val != nil {
				d[key.Key()] = val
			}
		}
	}

	if len(d) > 0 {
		ctx.Data = d
	}

	return ctx
}
