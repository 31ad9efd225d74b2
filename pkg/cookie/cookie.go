// Package cookie parses request Cookie headers and serializes response
// Set-Cookie directives following RFC 6265 conventions.
package cookie

import (
	"strconv"
	"strings"
	"time"
)

// Pair is one name/value entry from a request Cookie header, in appearance
// order.
type Pair struct {
	Name  string
	Value string
}

// ParseRequest parses a raw Cookie header ("k1=v1; k2=v2") into ordered
// pairs. An empty header yields an empty (non-nil) slice. Segments without
// an "=" are skipped. Duplicate names keep their first position but the
// last value wins.
func ParseRequest(raw string) []Pair {
	out := []Pair{}
	for _, seg := range strings.Split(raw, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		name, value, ok := strings.Cut(seg, "=")
		if !ok || name == "" {
			continue
		}
		value = strings.Trim(value, `"`)
		replaced := false
		for i := range out {
			if out[i].Name == name {
				out[i].Value = value
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, Pair{Name: name, Value: value})
		}
	}
	return out
}

// Directive describes one Set-Cookie entry pending serialization.
type Directive struct {
	Value    string
	Path     string
	Domain   string
	MaxAge   *int
	Expires  *time.Time
	Secure   bool
	HTTPOnly bool
}

// Options carries caller-supplied attributes for a put or delete directive.
// Zero values mean "use the default": Path defaults to "/", HTTPOnly
// defaults to on. Use Bool to set HTTPOnly explicitly off.
type Options struct {
	Path     string
	Domain   string
	MaxAge   *int
	Secure   bool
	HTTPOnly *bool
}

// Int returns a pointer to n, for Options.MaxAge.
func Int(n int) *int { return &n }

// Bool returns a pointer to b, for Options.HTTPOnly.
func Bool(b bool) *bool { return &b }

// Put builds the directive recorded by a response-cookie put.
func Put(value string, opts Options) Directive {
	d := Directive{
		Value:    value,
		Path:     opts.Path,
		Domain:   opts.Domain,
		MaxAge:   opts.MaxAge,
		Secure:   opts.Secure,
		HTTPOnly: true,
	}
	if d.Path == "" {
		d.Path = "/"
	}
	if opts.HTTPOnly != nil {
		d.HTTPOnly = *opts.HTTPOnly
	}
	return d
}

// Delete builds the directive that expires a cookie on the client: empty
// value, max-age 0, and an expiry pinned at the Unix epoch. Caller-supplied
// path and domain are merged so the deletion targets the right cookie.
func Delete(opts Options) Directive {
	d := Put("", opts)
	zero := 0
	epoch := time.Unix(0, 0).UTC()
	d.MaxAge = &zero
	d.Expires = &epoch
	return d
}

// Serialize renders one Set-Cookie header value. Attribute order is fixed:
// path, domain, expires, max-age, Secure, HttpOnly; absent attributes are
// omitted.
func Serialize(name string, d Directive) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(d.Value)
	if d.Path != "" {
		b.WriteString("; path=")
		b.WriteString(d.Path)
	}
	if d.Domain != "" {
		b.WriteString("; domain=")
		b.WriteString(d.Domain)
	}
	if d.Expires != nil {
		b.WriteString("; expires=")
		b.WriteString(d.Expires.UTC().Format("Mon, 02 Jan 2006 15:04:05") + " GMT")
	}
	if d.MaxAge != nil {
		b.WriteString("; max-age=")
		b.WriteString(strconv.Itoa(*d.MaxAge))
	}
	if d.Secure {
		b.WriteString("; Secure")
	}
	if d.HTTPOnly {
		b.WriteString("; HttpOnly")
	}
	return b.String()
}
