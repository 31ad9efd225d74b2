// Package conn implements the immutable connection value representing one
// HTTP exchange: the incoming request paired with the response being built
// for it. Every mutator returns a new Conn, so handler pipelines compose as
// plain function chains without aliasing hazards. The package performs no
// I/O and never logs; byte transmission belongs to the Transport supplied
// at construction.
package conn

import (
	"io"

	"github.com/btkostner/plug/pkg/cookie"
	"github.com/btkostner/plug/pkg/header"
	"github.com/btkostner/plug/pkg/target"
)

// State tracks whether the response has been flushed to the transport.
type State int

const (
	Unsent State = iota
	Sent
)

func (s State) String() string {
	if s == Sent {
		return "sent"
	}
	return "unsent"
}

// Transport is the narrow boundary to the adapter that owns the socket.
// WriteResponse hands over the finalized response exactly once per
// exchange, and NotifySent signals completion exactly once after a
// successful write.
type Transport interface {
	WriteResponse(status int, headers []header.Pair, body []byte) error
	NotifySent()
}

// respCookie is one pending Set-Cookie directive. Order of first put is
// preserved so serialized set-cookie entries come out deterministically.
type respCookie struct {
	Name      string
	Directive cookie.Directive
}

// Conn is the aggregate value for one exchange. Treat it as immutable:
// derive new values through its methods instead of writing fields.
type Conn struct {
	Method      string
	Scheme      string
	Host        string
	Port        int
	PathInfo    []string
	QueryString string

	// RemoteAddr is the client's network address as reported by the
	// transport, in host:port form when available. Empty when the
	// transport does not supply one.
	RemoteAddr string

	// ReqHeaders is read-only after construction except through
	// PutReqHeader, which derives a new Conn.
	ReqHeaders *header.Store

	// Params and ReqCookies stay unfetched until FetchParams or
	// FetchCookies resolves them.
	Params     LazyMap
	ReqCookies LazyMap

	// Assigns carries handler-to-handler data for this exchange. The
	// package never inspects its contents.
	Assigns map[string]any

	// Status is 0 until set by Resp or a send.
	Status      int
	RespHeaders *header.Store
	RespBody    []byte
	State       State

	respCookies []respCookie
	body        io.Reader
	transport   Transport
}

// New constructs the initial Conn for an exchange from transport-supplied
// request data. rawTarget is resolved against the given scheme, host, and
// port defaults (see target.Parse); a malformed target fails with
// target.MalformedRequestError. Response headers are seeded with the
// baseline cache-control directive.
func New(method, scheme, host string, port int, rawTarget string, reqHeaders *header.Store, body io.Reader, t Transport) (*Conn, error) {
	p, err := target.Parse(rawTarget, scheme, host, port)
	if err != nil {
		return nil, err
	}
	if reqHeaders == nil {
		reqHeaders = header.New()
	}
	return &Conn{
		Method:      method,
		Scheme:      p.Scheme,
		Host:        p.Host,
		Port:        p.Port,
		PathInfo:    p.PathInfo,
		QueryString: p.QueryString,
		ReqHeaders:  reqHeaders,
		Params:      Unfetched(AspectParams),
		ReqCookies:  Unfetched(AspectCookies),
		Assigns:     map[string]any{},
		RespHeaders: header.New().Put("cache-control", "max-age=0, private, must-revalidate"),
		body:        body,
		transport:   t,
	}, nil
}

// WithRemoteAddr returns a Conn carrying the client's network address.
// Transport adapters call this right after construction.
func (c *Conn) WithRemoteAddr(addr string) *Conn {
	out := c.clone()
	out.RemoteAddr = addr
	return out
}

// clone returns a shallow copy sharing all sub-structures. Callers replace
// only the fields they change, so unchanged headers, assigns, and cookies
// stay shared across derived values.
func (c *Conn) clone() *Conn {
	out := *c
	return &out
}
