// Package httpx provides the transport adapters that connect plug handler
// pipelines to real servers. Each adapter constructs the initial Conn from
// raw request data, runs the handler, and implements the write/notify
// completion contract of conn.Transport. Two adapters are provided: one for
// net/http and one for fasthttp.
package httpx

import (
	"strconv"
	"strings"

	"github.com/btkostner/plug/pkg/conn"
)

// Handler is the application handler signature run by adapters. It threads
// a Conn through a chain of pure transformations and normally ends in a
// send.
type Handler func(*conn.Conn) (*conn.Conn, error)

// splitHostPort splits a Host header value into host and port, defaulting
// the port from the scheme when absent or unparseable.
func splitHostPort(hostport, scheme string) (string, int) {
	host, portStr, ok := strings.Cut(hostport, ":")
	if host == "" {
		host = "localhost"
	}
	port := 80
	if scheme == "https" {
		port = 443
	}
	if ok {
		if p, err := strconv.Atoi(portStr); err == nil && p > 0 {
			port = p
		}
	}
	return host, port
}
