package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// logTransport logs every round-trip at debug level.
type logTransport struct {
	base http.RoundTripper
	log  zerolog.Logger
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	event := t.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Str("request_id", req.Header.Get(HeaderRequestID)).
		Dur("duration", time.Since(start))
	if err != nil {
		event.Err(err).Msg("request failed")
		return nil, err
	}
	event.Int("status", resp.StatusCode).Msg("request")
	return resp, nil
}
