package middleware

import (
	"strings"
	"time"

	"github.com/btkostner/plug/pkg/conn"
	"github.com/btkostner/plug/pkg/httpx"
	"github.com/btkostner/plug/pkg/logger"
)

// RequestLogger logs one line per exchange after the inner handler returns:
// method, path, resulting status, and elapsed time. Errors pass through
// untouched; the adapter decides how to answer them.
func RequestLogger() Middleware {
	return func(next httpx.Handler) httpx.Handler {
		return func(c *conn.Conn) (*conn.Conn, error) {
			start := time.Now()
			out, err := next(c)
			path := "/" + strings.Join(c.PathInfo, "/")
			status := 0
			if out != nil {
				status = out.Status
			}
			if err != nil {
				logger.Warn("request_failed",
					"method", c.Method,
					"path", path,
					"error", err,
					"elapsed", time.Since(start).String(),
				)
				return out, err
			}
			logger.Info("request",
				"method", c.Method,
				"path", path,
				"status", status,
				"elapsed", time.Since(start).String(),
			)
			return out, nil
		}
	}
}
