package httpx

import (
	"bytes"
	"errors"
	"io"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/btkostner/plug/pkg/conn"
	"github.com/btkostner/plug/pkg/header"
	"github.com/btkostner/plug/pkg/logger"
	"github.com/btkostner/plug/pkg/target"
	"github.com/btkostner/plug/pkg/telemetry"
)

// FastHTTPAdapter adapts a plug Handler into a fasthttp.RequestHandler.
// Boundary behavior mirrors NetHTTPAdapter: 400 for malformed targets, 500
// for handler errors on an unsent exchange.
func FastHTTPAdapter(h Handler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		scheme := "http"
		if ctx.IsTLS() {
			scheme = "https"
		}
		host, port := splitHostPort(string(ctx.Host()), scheme)

		var pairs []header.Pair
		ctx.Request.Header.VisitAll(func(k, v []byte) {
			pairs = append(pairs, header.Pair{Name: string(k), Value: string(v)})
		})

		var body io.Reader
		if b := ctx.PostBody(); len(b) > 0 {
			body = bytes.NewReader(b)
		}

		tr := &fastHTTPTransport{ctx: ctx}
		c, err := conn.New(string(ctx.Method()), scheme, host, port, string(ctx.RequestURI()), header.FromPairs(pairs), body, tr)
		if err != nil {
			var malformed *target.MalformedRequestError
			if errors.As(err, &malformed) {
				telemetry.ObserveMalformed()
				logger.Warn("malformed_request", "target", malformed.Target, "reason", malformed.Reason, "remote", ctx.RemoteAddr().String())
				ctx.Error("bad request", fasthttp.StatusBadRequest)
				return
			}
			ctx.Error("internal server error", fasthttp.StatusInternalServerError)
			return
		}
		c = c.WithRemoteAddr(ctx.RemoteAddr().String())

		start := time.Now()
		out, err := h(c)
		if err != nil {
			var sent *conn.AlreadySentError
			if errors.As(err, &sent) {
				telemetry.ObserveAlreadySent()
			}
			logger.Error("handler_error", "method", string(ctx.Method()), "path", string(ctx.Path()), "error", err)
			if out == nil || out.State != conn.Sent {
				ctx.Error("internal server error", fasthttp.StatusInternalServerError)
			}
			return
		}
		if out != nil && out.State == conn.Sent {
			telemetry.ObserveSend(out.Method, out.Status, time.Since(start))
		}
	}
}

type fastHTTPTransport struct {
	ctx *fasthttp.RequestCtx
}

func (t *fastHTTPTransport) WriteResponse(status int, headers []header.Pair, body []byte) error {
	for _, p := range headers {
		t.ctx.Response.Header.Add(p.Name, p.Value)
	}
	t.ctx.SetStatusCode(status)
	t.ctx.SetBody(body)
	return nil
}

func (t *fastHTTPTransport) NotifySent() {}
