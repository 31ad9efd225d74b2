// Package params defines the pluggable decoder boundary used to turn a raw
// query string (and, when present, a request body) into decoded parameters.
package params

import (
	"errors"
	"io"
	"net/url"
	"strings"
)

// Decoder turns a raw query string and an optional body source into a
// mapping of decoded key/value pairs. Decoder errors are surfaced to the
// caller untouched.
type Decoder interface {
	Decode(query string, body io.Reader) (map[string]string, error)
}

// URLEncoded decodes application/x-www-form-urlencoded data from the query
// string and, when a body is supplied, from the body as well. Body keys
// override query keys, and within each source the last occurrence of a
// duplicate key wins.
type URLEncoded struct{}

func (URLEncoded) Decode(query string, body io.Reader) (map[string]string, error) {
	out := map[string]string{}
	if err := decodeInto(out, query); err != nil {
		return nil, err
	}
	if body != nil {
		raw, err := io.ReadAll(body)
		if err != nil {
			return nil, err
		}
		if err := decodeInto(out, string(raw)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

var errEmptyKey = errors.New("params: empty key in pair")

func decodeInto(out map[string]string, raw string) error {
	for _, seg := range strings.Split(raw, "&") {
		if seg == "" {
			continue
		}
		k, v, _ := strings.Cut(seg, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return err
		}
		if key == "" {
			return errEmptyKey
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			return err
		}
		out[key] = val
	}
	return nil
}
