// Package middleware composes plug handlers out of independent
// transformation steps. A Middleware wraps a Handler; Chain applies a list
// of them so the first listed middleware runs outermost.
package middleware

import (
	"github.com/btkostner/plug/pkg/conn"
	"github.com/btkostner/plug/pkg/httpx"
)

// Middleware wraps a handler with extra behavior before or after it runs.
type Middleware func(httpx.Handler) httpx.Handler

// Chain wraps h with the given middleware, outermost first.
func Chain(h httpx.Handler, mws ...Middleware) httpx.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Halted reports whether a middleware should stop calling further into the
// chain because the exchange was already completed.
func Halted(c *conn.Conn) bool {
	return c != nil && c.State == conn.Sent
}
