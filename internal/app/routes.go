package app

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/btkostner/plug/pkg/conn"
	"github.com/btkostner/plug/pkg/cookie"
	"github.com/btkostner/plug/pkg/httpx"
	"github.com/btkostner/plug/pkg/middleware"
	"github.com/btkostner/plug/pkg/params"
)

// routes builds the demo route table. Every plug endpoint goes through the
// shared middleware stack; /metrics and /healthz are plain handlers.
func (a *App) routes() http.Handler {
	var mws []middleware.Middleware
	mws = append(mws, middleware.RequestLogger())
	if a.cfg.RateLimit.Enabled {
		mws = append(mws, middleware.RateLimit(middleware.RateLimitConfig{
			RPS:   a.cfg.RateLimit.RPS,
			Burst: a.cfg.RateLimit.Burst,
		}))
	}
	mount := func(h httpx.Handler) http.Handler {
		return httpx.NetHTTPAdapter(middleware.Chain(h, mws...))
	}

	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/healthz", healthzHandler)
	r.PathPrefix("/echo").Handler(mount(echoHandler))
	r.Handle("/greet", mount(greetHandler))
	r.Handle("/logout", mount(logoutHandler))
	return r
}

func healthzHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// echoHandler reflects the exchange back as plain text: method, path
// segments, and decoded params.
func echoHandler(c *conn.Conn) (*conn.Conn, error) {
	c, err := c.FetchParams(params.URLEncoded{})
	if err != nil {
		return c.SendResp(http.StatusBadRequest, []byte("bad params\n"))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "method: %s\n", c.Method)
	fmt.Fprintf(&b, "path: /%s\n", strings.Join(c.PathInfo, "/"))
	if values, ok := c.Params.Values(); ok && len(values) > 0 {
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "param %s=%s\n", k, values[k])
		}
	}
	return c.PutRespContentType("text/plain").SendResp(http.StatusOK, []byte(b.String()))
}

// greetHandler greets the visitor by the name param and starts a session
// cookie.
func greetHandler(c *conn.Conn) (*conn.Conn, error) {
	c, err := c.FetchParams(params.URLEncoded{})
	if err != nil {
		return c.SendResp(http.StatusBadRequest, []byte("bad params\n"))
	}
	name, ok := c.Params.Get("name")
	if !ok || name == "" {
		name = "stranger"
	}
	return c.
		Assign("visitor", name).
		PutRespCookie("session", name, cookie.Options{Path: "/"}).
		PutRespContentType("text/html").
		SendResp(http.StatusOK, []byte("<h1>Hello, "+name+"</h1>\n"))
}

// logoutHandler expires the session cookie.
func logoutHandler(c *conn.Conn) (*conn.Conn, error) {
	return c.
		DeleteRespCookie("session", cookie.Options{Path: "/"}).
		PutRespContentType("text/plain").
		SendResp(http.StatusOK, []byte("goodbye\n"))
}
