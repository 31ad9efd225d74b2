// Package target parses raw HTTP request targets into the scheme, host,
// port, path segments, and query string an exchange is constructed from.
package target

import (
	"fmt"
	"strconv"
	"strings"
)

// MalformedRequestError reports a request target that cannot be parsed.
// It is fatal for the exchange; the transport boundary answers with a
// 4xx-class response.
type MalformedRequestError struct {
	Target string
	Reason string
}

func (e *MalformedRequestError) Error() string {
	return fmt.Sprintf("malformed request target %q: %s", e.Target, e.Reason)
}

// Parsed is the result of parsing one request target.
type Parsed struct {
	Scheme      string
	Host        string
	Port        int
	PathInfo    []string
	QueryString string
}

// Parse resolves rawTarget against transport-supplied defaults. Absolute
// targets (scheme://host[:port]/path) and scheme-relative targets
// (//host[:port]/path) carry their own authority; origin-form targets
// inherit scheme, host, and port from the defaults. When the authority
// omits the port, it falls back to 80 for http and 443 for https.
func Parse(rawTarget, defaultScheme, defaultHost string, defaultPort int) (Parsed, error) {
	p := Parsed{Scheme: defaultScheme, Host: defaultHost, Port: defaultPort}
	if p.Scheme == "" {
		p.Scheme = "http"
	}

	rest := rawTarget
	switch {
	case isAbsolute(rawTarget):
		scheme, tail, _ := strings.Cut(rawTarget, "://")
		if scheme != "http" && scheme != "https" {
			return Parsed{}, &MalformedRequestError{Target: rawTarget, Reason: "unsupported scheme " + strconv.Quote(scheme)}
		}
		p.Scheme = scheme
		var err error
		rest, err = p.splitAuthority(rawTarget, tail)
		if err != nil {
			return Parsed{}, err
		}
	case strings.HasPrefix(rawTarget, "//"):
		var err error
		rest, err = p.splitAuthority(rawTarget, rawTarget[2:])
		if err != nil {
			return Parsed{}, err
		}
	}

	if p.Port == 0 {
		p.Port = defaultPortFor(p.Scheme)
	}

	path, query, _ := strings.Cut(rest, "?")
	p.QueryString = query
	p.PathInfo = SplitPath(path)
	return p, nil
}

// isAbsolute reports whether rawTarget is absolute-form, i.e. starts with
// scheme://. A "://" appearing after a "/" or "?" belongs to the path or
// query of an origin-form target (e.g. /redirect?url=https://example.com)
// and must not trigger authority parsing.
func isAbsolute(rawTarget string) bool {
	i := strings.Index(rawTarget, "://")
	return i >= 0 && !strings.ContainsAny(rawTarget[:i], "/?")
}

// splitAuthority consumes host[:port] from tail and returns the remaining
// path?query part. The authority resets any inherited port so the scheme
// default applies when none is given.
func (p *Parsed) splitAuthority(raw, tail string) (string, error) {
	authority := tail
	rest := ""
	if i := strings.IndexAny(tail, "/?"); i >= 0 {
		authority = tail[:i]
		rest = tail[i:]
	}
	if authority == "" {
		return "", &MalformedRequestError{Target: raw, Reason: "empty host"}
	}
	host, portStr, hasPort := strings.Cut(authority, ":")
	if host == "" {
		return "", &MalformedRequestError{Target: raw, Reason: "empty host"}
	}
	p.Host = host
	p.Port = 0
	if hasPort {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 {
			return "", &MalformedRequestError{Target: raw, Reason: "invalid port " + strconv.Quote(portStr)}
		}
		p.Port = port
	}
	return rest, nil
}

// SplitPath splits a path on "/" and drops empty segments, so leading,
// trailing, and repeated slashes all collapse.
func SplitPath(path string) []string {
	segs := []string{}
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

func defaultPortFor(scheme string) int {
	if scheme == "https" {
		return 443
	}
	return 80
}
