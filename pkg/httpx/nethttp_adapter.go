package httpx

import (
	"errors"
	"net/http"
	"time"

	"github.com/btkostner/plug/pkg/conn"
	"github.com/btkostner/plug/pkg/header"
	"github.com/btkostner/plug/pkg/logger"
	"github.com/btkostner/plug/pkg/target"
	"github.com/btkostner/plug/pkg/telemetry"
)

// NetHTTPAdapter adapts a plug Handler into a standard net/http handler.
// Malformed request targets are answered with 400 at this boundary; handler
// errors on an unsent exchange are answered with 500.
func NetHTTPAdapter(h Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		host, port := splitHostPort(r.Host, scheme)

		pairs := make([]header.Pair, 0, len(r.Header))
		for k, vs := range r.Header {
			for _, v := range vs {
				pairs = append(pairs, header.Pair{Name: k, Value: v})
			}
		}

		tr := &netHTTPTransport{w: w}
		c, err := conn.New(r.Method, scheme, host, port, r.RequestURI, header.FromPairs(pairs), r.Body, tr)
		if err != nil {
			var malformed *target.MalformedRequestError
			if errors.As(err, &malformed) {
				telemetry.ObserveMalformed()
				logger.Warn("malformed_request", "target", malformed.Target, "reason", malformed.Reason, "remote", r.RemoteAddr)
				http.Error(w, "bad request", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		c = c.WithRemoteAddr(r.RemoteAddr)

		start := time.Now()
		out, err := h(c)
		if err != nil {
			var sent *conn.AlreadySentError
			if errors.As(err, &sent) {
				telemetry.ObserveAlreadySent()
			}
			logger.Error("handler_error", "method", r.Method, "path", r.URL.Path, "error", err)
			if out == nil || out.State != conn.Sent {
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
			return
		}
		if out != nil && out.State == conn.Sent {
			telemetry.ObserveSend(out.Method, out.Status, time.Since(start))
		}
	})
}

type netHTTPTransport struct {
	w http.ResponseWriter
}

func (t *netHTTPTransport) WriteResponse(status int, headers []header.Pair, body []byte) error {
	for _, p := range headers {
		t.w.Header().Add(p.Name, p.Value)
	}
	t.w.WriteHeader(status)
	_, err := t.w.Write(body)
	return err
}

func (t *netHTTPTransport) NotifySent() {}
