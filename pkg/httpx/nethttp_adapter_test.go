package httpx

import (
	"bufio"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/btkostner/plug/pkg/conn"
	"github.com/btkostner/plug/pkg/cookie"
	"github.com/btkostner/plug/pkg/params"
)

func TestNetHTTPAdapterRoundTrip(t *testing.T) {
	h := NetHTTPAdapter(func(c *conn.Conn) (*conn.Conn, error) {
		c, err := c.FetchParams(params.URLEncoded{})
		if err != nil {
			return c, err
		}
		name, _ := c.Params.Get("name")
		return c.
			PutRespContentType("text/plain").
			PutRespCookie("session", "abc", cookie.Options{Path: "/"}).
			SendResp(http.StatusOK, []byte("hello "+name))
	})

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/greet?name=alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "hello alice" {
		t.Fatalf("unexpected body: %q", body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content-type: %q", ct)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "max-age=0, private, must-revalidate" {
		t.Fatalf("unexpected cache-control: %q", cc)
	}
	sc := resp.Header.Get("Set-Cookie")
	if sc != "session=abc; path=/; HttpOnly" {
		t.Fatalf("unexpected set-cookie: %q", sc)
	}
}

func TestNetHTTPAdapterHeadRequest(t *testing.T) {
	h := NetHTTPAdapter(func(c *conn.Conn) (*conn.Conn, error) {
		return c.SendResp(http.StatusOK, []byte("should not appear"))
	})
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := srv.Client().Head(srv.URL + "/")
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if len(body) != 0 {
		t.Fatalf("HEAD response carried a body: %q", body)
	}
}

func TestNetHTTPAdapterSuppliesRemoteAddr(t *testing.T) {
	var remote string
	h := NetHTTPAdapter(func(c *conn.Conn) (*conn.Conn, error) {
		remote = c.RemoteAddr
		return c.SendResp(http.StatusOK, nil)
	})
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if remote == "" {
		t.Fatal("adapter did not thread the client address into the conn")
	}
}

func TestNetHTTPAdapterHandlerError(t *testing.T) {
	h := NetHTTPAdapter(func(c *conn.Conn) (*conn.Conn, error) {
		return c, io.ErrUnexpectedEOF
	})
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

func TestNetHTTPAdapterMalformedTarget(t *testing.T) {
	handled := false
	h := NetHTTPAdapter(func(c *conn.Conn) (*conn.Conn, error) {
		handled = true
		return c.SendResp(http.StatusOK, nil)
	})

	// an absolute-form target with an unsupported scheme passes net/http
	// parsing but must be rejected at the adapter boundary
	raw := "GET ftp://example.com/ HTTP/1.1\r\nHost: example.com\r\n\r\n"
	req, err := http.ReadRequest(bufio.NewReader(strings.NewReader(raw)))
	if err != nil {
		t.Fatalf("read request: %v", err)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed target, got %d", rec.Code)
	}
	if handled {
		t.Fatal("handler must not run for a malformed target")
	}
}

func TestNetHTTPAdapterFormBody(t *testing.T) {
	h := NetHTTPAdapter(func(c *conn.Conn) (*conn.Conn, error) {
		c, err := c.FetchParams(params.URLEncoded{})
		if err != nil {
			return c, err
		}
		v, _ := c.Params.Get("greeting")
		return c.SendResp(http.StatusOK, []byte(v))
	})
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := srv.Client().Post(srv.URL+"/", "application/x-www-form-urlencoded", strings.NewReader("greeting=hi"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "hi" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestSplitHostPort(t *testing.T) {
	cases := []struct {
		in     string
		scheme string
		host   string
		port   int
	}{
		{"example.com:8080", "http", "example.com", 8080},
		{"example.com", "http", "example.com", 80},
		{"example.com", "https", "example.com", 443},
		{"", "http", "localhost", 80},
	}
	for _, c := range cases {
		host, port := splitHostPort(c.in, c.scheme)
		if host != c.host || port != c.port {
			t.Fatalf("splitHostPort(%q,%q) = %s:%d, want %s:%d", c.in, c.scheme, host, port, c.host, c.port)
		}
	}
}
