package server

import (
	"errors"
	"io"
	"net"
	"testing"
)

// recordingConn keeps every Write as a separate chunk.
type recordingConn struct {
	writes [][]byte
	closed bool
	err    error
}

func (c *recordingConn) Write(b []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.writes = append(c.writes, append([]byte(nil), b...))
	return len(b), nil
}

func (c *recordingConn) Close() error {
	c.closed = true
	return nil
}

func (c *recordingConn) String() string {
	var out []byte
	for _, w := range c.writes {
		out = append(out, w...)
	}
	return string(out)
}

const notFound = "HTTP/1.1 404 Not Found\r\nContent-Type: text/html\r\n\r\nPage not found"

var errBrokenPipe = errors.New("broken pipe")

// roundTrip sends raw over an in-memory connection and returns everything
// the app wrote before closing it.
func roundTrip(t *testing.T, app *App, raw string) string {
	t.Helper()
	client, srv := net.Pipe()
	defer client.Close()

	done := make(chan error, 1)
	go func() { done <- app.ServeConn(srv) }()

	if _, err := client.Write([]byte(raw)); err != nil {
		t.Fatalf("write request: %s", err)
	}
	out, err := io.ReadAll(client)
	if err != nil {
		t.Fatalf("read response: %s", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("serve conn: %s", err)
	}
	return string(out)
}

func textHandler(body string) HandlerFunc {
	return func(req *Request, res *Response) {
		res.SendString(body)
	}
}
