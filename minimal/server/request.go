package server

import (
	"net/url"
	"strings"
)

// base is the fixed origin request paths are resolved against.
var base = &url.URL{Scheme: "http", Host: "localhost", Path: "/"}

// Request is the start line of one inbound chunk. Method and Path are empty
// when the chunk did not carry them.
type Request struct {
	Method     string
	Path       string
	Remainder  []string
	RemoteAddr string
}

// ParseRequest splits raw on whitespace: method, path, then everything else.
func ParseRequest(raw []byte) *Request {
	fields := strings.Fields(string(raw))
	req := new(Request)
	if len(fields) > 0 {
		req.Method = fields[0]
	}
	if len(fields) > 1 {
		req.Path = fields[1]
	}
	if len(fields) > 2 {
		req.Remainder = fields[2:]
	}
	return req
}

func (r *Request) HasMethod() bool { return r.Method != "" }
func (r *Request) HasPath() bool   { return r.Path != "" }

// Key returns the route key the request dispatches on, or "" if the start
// line is incomplete. No route is ever registered under "".
func (r *Request) Key() string {
	if !r.HasMethod() || !r.HasPath() {
		return ""
	}
	return routeKey(r.Method, r.Path)
}

func routeKey(method, p string) string {
	return strings.ToUpper(method) + " " + NormalizePath(p)
}

// NormalizePath lowercases p, strips trailing slashes and drops the query
// and fragment. Applying it twice yields the same result.
func NormalizePath(p string) string {
	var escaped string
	if ref, err := url.Parse(p); err == nil {
		escaped = base.ResolveReference(ref).EscapedPath()
	} else {
		escaped, _, _ = strings.Cut(p, "?")
		escaped, _, _ = strings.Cut(escaped, "#")
	}
	escaped = strings.ToLower(escaped)
	return strings.TrimRight(escaped, "/")
}
