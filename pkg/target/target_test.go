package target

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplitPathCollapsesSlashes(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"/foo//bar/", []string{"foo", "bar"}},
		{"/foo/bar", []string{"foo", "bar"}},
		{"/", []string{}},
		{"", []string{}},
		{"///a///b///", []string{"a", "b"}},
	}
	for _, c := range cases {
		if got := SplitPath(c.in); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("SplitPath(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestQueryString(t *testing.T) {
	cases := []struct {
		target string
		want   string
	}{
		{"/", ""},
		{"/foo?barbat", "barbat"},
		{"/foo/bar?bar=bat", "bar=bat"},
	}
	for _, c := range cases {
		p, err := Parse(c.target, "http", "localhost", 80)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.target, err)
		}
		if p.QueryString != c.want {
			t.Fatalf("Parse(%q).QueryString = %q, want %q", c.target, p.QueryString, c.want)
		}
	}
}

func TestAbsoluteTarget(t *testing.T) {
	p, err := Parse("https://127.0.0.1/", "http", "ignored", 80)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Scheme != "https" || p.Host != "127.0.0.1" || p.Port != 443 {
		t.Fatalf("got %s://%s:%d", p.Scheme, p.Host, p.Port)
	}
}

func TestSchemeRelativeTarget(t *testing.T) {
	p, err := Parse("//example.com:8080/", "http", "ignored", 80)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Scheme != "http" || p.Host != "example.com" || p.Port != 8080 {
		t.Fatalf("got %s://%s:%d", p.Scheme, p.Host, p.Port)
	}
}

func TestOriginFormInheritsDefaults(t *testing.T) {
	p, err := Parse("/foo/bar?a=b", "https", "example.org", 8443)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Scheme != "https" || p.Host != "example.org" || p.Port != 8443 {
		t.Fatalf("got %s://%s:%d", p.Scheme, p.Host, p.Port)
	}
	if !reflect.DeepEqual(p.PathInfo, []string{"foo", "bar"}) || p.QueryString != "a=b" {
		t.Fatalf("got path=%v query=%q", p.PathInfo, p.QueryString)
	}
}

func TestOriginFormQueryContainingURL(t *testing.T) {
	p, err := Parse("/redirect?url=https://example.com/x", "http", "localhost", 80)
	if err != nil {
		t.Fatalf("valid origin-form target rejected: %v", err)
	}
	if !reflect.DeepEqual(p.PathInfo, []string{"redirect"}) {
		t.Fatalf("unexpected path info: %v", p.PathInfo)
	}
	if p.QueryString != "url=https://example.com/x" {
		t.Fatalf("unexpected query string: %q", p.QueryString)
	}
	if p.Scheme != "http" || p.Host != "localhost" || p.Port != 80 {
		t.Fatalf("origin-form target must inherit defaults, got %s://%s:%d", p.Scheme, p.Host, p.Port)
	}
}

func TestMalformedTargets(t *testing.T) {
	cases := []string{
		"ftp://example.com/",
		"http://example.com:abc/",
		"http://:80/",
		"//:8080/",
		"http://example.com:-1/",
	}
	for _, c := range cases {
		_, err := Parse(c, "http", "localhost", 80)
		var merr *MalformedRequestError
		if !errors.As(err, &merr) {
			t.Fatalf("Parse(%q): expected MalformedRequestError, got %v", c, err)
		}
	}
}
