package conn

import (
	"net/http"

	"github.com/btkostner/plug/pkg/cookie"
)

// AlreadySentError reports a send attempt on a Conn whose response was
// already flushed. It indicates a bug in the calling handler chain and is
// always surfaced, never swallowed.
type AlreadySentError struct{}

func (*AlreadySentError) Error() string { return "response already sent" }

// SendResp sends the response with the given status and body. It is the
// single unsent-to-sent transition: the pending cookies are merged into
// set-cookie response headers (one entry per cookie name, in first-put
// order), the body is written through the transport, and the transport is
// notified exactly once. HEAD requests transmit an empty body while status
// and headers are recorded normally. The returned Conn has State Sent and
// no retained body. Sending a sent Conn fails with AlreadySentError.
func (c *Conn) SendResp(status int, body []byte) (*Conn, error) {
	if c.State == Sent {
		return c, &AlreadySentError{}
	}
	if status == 0 {
		status = c.Status
	}
	if status == 0 {
		status = http.StatusOK
	}

	headers := c.RespHeaders
	for _, rc := range c.respCookies {
		headers = headers.Append("set-cookie", cookie.Serialize(rc.Name, rc.Directive))
	}

	wire := body
	if c.Method == http.MethodHead {
		wire = []byte{}
	}

	if c.transport != nil {
		if err := c.transport.WriteResponse(status, headers.Pairs(), wire); err != nil {
			return c, err
		}
	}

	out := c.clone()
	out.Status = status
	out.RespHeaders = headers
	out.RespBody = nil
	out.State = Sent
	if c.transport != nil {
		c.transport.NotifySent()
	}
	return out, nil
}

// Send flushes the status and body previously staged with Resp. A Conn
// that never staged a status sends 200.
func (c *Conn) Send() (*Conn, error) {
	return c.SendResp(c.Status, c.RespBody)
}
