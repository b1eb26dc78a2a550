package server

import (
	"strconv"
	"testing"
)

type discardConn struct{}

func (discardConn) Write(b []byte) (int, error) { return len(b), nil }
func (discardConn) Close() error                { return nil }

func dummyHandler(req *Request, res *Response) { res.SendString("") }

// setupFixed registers only fixed paths
func setupFixed() *App {
	app := New()
	for i := 1; i <= 30; i++ {
		app.Get("/fixed/path"+strconv.Itoa(i), dummyHandler)
	}
	return app
}

// setupMixed registers fixed paths and paths that differ only in case
func setupMixed() *App {
	app := New()
	for i := 1; i <= 15; i++ {
		app.Get("/fixed/path"+strconv.Itoa(i), dummyHandler)
	}
	for i := 1; i <= 15; i++ {
		app.Get("/Users/"+strconv.Itoa(i)+"/Profile/", dummyHandler)
	}
	return app
}

func benchmarkDispatch(b *testing.B, app *App, raw string) {
	req := ParseRequest([]byte(raw))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		app.dispatch(req, NewResponse(discardConn{}))
	}
}

func BenchmarkFixedOnly(b *testing.B) {
	benchmarkDispatch(b, setupFixed(), "GET /fixed/path1 HTTP/1.1")
}

func BenchmarkMixedFixed(b *testing.B) {
	benchmarkDispatch(b, setupMixed(), "GET /fixed/path1 HTTP/1.1")
}

func BenchmarkMixedNormalized(b *testing.B) {
	benchmarkDispatch(b, setupMixed(), "GET /users/7/profile?tab=1 HTTP/1.1")
}

func BenchmarkNotFound(b *testing.B) {
	benchmarkDispatch(b, setupFixed(), "GET /nowhere HTTP/1.1")
}

func BenchmarkParseRequest(b *testing.B) {
	raw := []byte("GET /img/cat.jpg HTTP/1.1\r\nHost: localhost\r\nAccept: */*\r\n\r\n")
	for i := 0; i < b.N; i++ {
		ParseRequest(raw)
	}
}
