package conn

import (
	"github.com/btkostner/plug/pkg/cookie"
)

// Assign returns a Conn with key set in Assigns. The existing map is left
// untouched so earlier values keep seeing it.
func (c *Conn) Assign(key string, value any) *Conn {
	out := c.clone()
	out.Assigns = make(map[string]any, len(c.Assigns)+1)
	for k, v := range c.Assigns {
		out.Assigns[k] = v
	}
	out.Assigns[key] = value
	return out
}

// PutReqHeader returns a Conn with the request header set. Useful for
// tests and for middleware that normalizes incoming metadata before
// handlers run.
func (c *Conn) PutReqHeader(name, value string) *Conn {
	out := c.clone()
	out.ReqHeaders = c.ReqHeaders.Put(name, value)
	return out
}

// PutRespHeader returns a Conn with the response header set, replacing any
// case-insensitively equal entry in place.
func (c *Conn) PutRespHeader(name, value string) *Conn {
	out := c.clone()
	out.RespHeaders = c.RespHeaders.Put(name, value)
	return out
}

// DeleteRespHeader returns a Conn without the named response header.
// Deleting an absent header is a no-op.
func (c *Conn) DeleteRespHeader(name string) *Conn {
	out := c.clone()
	out.RespHeaders = c.RespHeaders.Delete(name)
	return out
}

// PutRespContentType sets the content-type response header. With no charset
// argument it defaults to utf-8; pass an explicit empty string to emit the
// mime type verbatim.
//
//	c.PutRespContentType("text/html")      // "text/html; charset=utf-8"
//	c.PutRespContentType("text/html", "")  // "text/html"
func (c *Conn) PutRespContentType(mime string, charset ...string) *Conn {
	cs := "utf-8"
	if len(charset) > 0 {
		cs = charset[0]
	}
	value := mime
	if cs != "" {
		value = mime + "; charset=" + cs
	}
	return c.PutRespHeader("content-type", value)
}

// PutRespCookie records a Set-Cookie directive for name. Path defaults to
// "/" and HttpOnly to on; see cookie.Options. A repeated put for the same
// name replaces the pending directive, so one set-cookie entry is emitted
// per distinct name at send time.
func (c *Conn) PutRespCookie(name, value string, opts cookie.Options) *Conn {
	return c.putCookie(name, cookie.Put(value, opts))
}

// DeleteRespCookie records a directive expiring the named cookie on the
// client: empty value, max-age 0, expiry at the Unix epoch, with any
// caller-supplied path and domain merged in.
func (c *Conn) DeleteRespCookie(name string, opts cookie.Options) *Conn {
	return c.putCookie(name, cookie.Delete(opts))
}

func (c *Conn) putCookie(name string, d cookie.Directive) *Conn {
	out := c.clone()
	out.respCookies = make([]respCookie, len(c.respCookies), len(c.respCookies)+1)
	copy(out.respCookies, c.respCookies)
	for i := range out.respCookies {
		if out.respCookies[i].Name == name {
			out.respCookies[i].Directive = d
			return out
		}
	}
	out.respCookies = append(out.respCookies, respCookie{Name: name, Directive: d})
	return out
}

// Resp sets the pending status and body without sending, leaving the Conn
// unsent so headers and cookies can still be adjusted before the eventual
// send.
func (c *Conn) Resp(status int, body []byte) *Conn {
	out := c.clone()
	out.Status = status
	out.RespBody = body
	return out
}
