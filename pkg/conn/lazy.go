package conn

import (
	"github.com/btkostner/plug/pkg/cookie"
	"github.com/btkostner/plug/pkg/params"
)

// Aspect tags an unfetched lazy field with the derived data it stands for,
// so "never looked at" is distinguishable from "looked at, found none".
type Aspect int

const (
	AspectParams Aspect = iota + 1
	AspectCookies
)

func (a Aspect) String() string {
	switch a {
	case AspectParams:
		return "params"
	case AspectCookies:
		return "cookies"
	default:
		return "unknown"
	}
}

// LazyMap is a derived string mapping that starts unfetched and resolves at
// most once for the lifetime of the exchange.
type LazyMap struct {
	aspect Aspect
	values map[string]string
}

// Unfetched returns the unresolved marker for the given aspect.
func Unfetched(a Aspect) LazyMap { return LazyMap{aspect: a} }

func resolved(a Aspect, values map[string]string) LazyMap {
	if values == nil {
		values = map[string]string{}
	}
	return LazyMap{aspect: a, values: values}
}

// Aspect reports which derived field this marker stands for.
func (l LazyMap) Aspect() Aspect { return l.aspect }

// Fetched reports whether the field has been resolved. A field resolved to
// an empty mapping is still fetched.
func (l LazyMap) Fetched() bool { return l.values != nil }

// Values returns the resolved mapping. The second return is false while the
// field is unfetched. Callers must not modify the returned map.
func (l LazyMap) Values() (map[string]string, bool) {
	if l.values == nil {
		return nil, false
	}
	return l.values, true
}

// Get looks up one resolved value. It returns false while unfetched or when
// the key is absent.
func (l LazyMap) Get(key string) (string, bool) {
	if l.values == nil {
		return "", false
	}
	v, ok := l.values[key]
	return v, ok
}

// FetchParams resolves Params by running the decoder over the query string
// and the request body source. Fetching an already-resolved Conn returns it
// unchanged, so the decode runs at most once per exchange. Decoder errors
// propagate untouched.
func (c *Conn) FetchParams(dec params.Decoder) (*Conn, error) {
	if c.Params.Fetched() {
		return c, nil
	}
	values, err := dec.Decode(c.QueryString, c.body)
	if err != nil {
		return c, err
	}
	out := c.clone()
	out.Params = resolved(AspectParams, values)
	return out, nil
}

// FetchCookies resolves ReqCookies from the request cookie header. An
// absent header resolves to an empty mapping, not back to the unfetched
// marker. Fetching twice is a no-op.
func (c *Conn) FetchCookies() *Conn {
	if c.ReqCookies.Fetched() {
		return c
	}
	raw, _ := c.ReqHeaders.Get("cookie")
	pairs := cookie.ParseRequest(raw)
	values := make(map[string]string, len(pairs))
	for _, p := range pairs {
		values[p.Name] = p.Value
	}
	out := c.clone()
	out.ReqCookies = resolved(AspectCookies, values)
	return out
}
