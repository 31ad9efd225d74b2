// plugd-fast serves the echo pipeline over fasthttp. It exists to exercise
// the fasthttp transport adapter end to end and to compare transport
// overhead against the net/http demo server.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/btkostner/plug/pkg/conn"
	"github.com/btkostner/plug/pkg/httpx"
	"github.com/btkostner/plug/pkg/logger"
	"github.com/btkostner/plug/pkg/middleware"
	"github.com/btkostner/plug/pkg/params"
)

func main() {
	addr := flag.String("addr", ":8081", "listen address")
	flag.Parse()

	logger.Init()

	echo := func(c *conn.Conn) (*conn.Conn, error) {
		c, err := c.FetchParams(params.URLEncoded{})
		if err != nil {
			return c.SendResp(http.StatusBadRequest, []byte("bad params\n"))
		}
		body := fmt.Sprintf("method: %s\npath: /%s\n", c.Method, strings.Join(c.PathInfo, "/"))
		return c.PutRespContentType("text/plain").SendResp(http.StatusOK, []byte(body))
	}

	srv := &fasthttp.Server{
		Handler:            httpx.FastHTTPAdapter(middleware.Chain(echo, middleware.RequestLogger())),
		Name:               "plugd-fast",
		ReadTimeout:        5 * time.Second,
		WriteTimeout:       5 * time.Second,
		MaxRequestBodySize: 1 << 20,
	}
	logger.Info("listening", "addr", *addr, "transport", "fasthttp")
	if err := srv.ListenAndServe(*addr); err != nil {
		logger.Error("server_exit", "error", err)
	}
}
