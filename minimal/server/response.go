package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
)

var nlcf = []byte{0x0d, 0x0a}

var ErrResponseSent = errors.New("response already sent")

// Response accumulates a status line and headers and writes them together
// with a body to the connection it owns. Send is terminal: it closes conn.
type Response struct {
	conn       io.WriteCloser
	statusCode int
	version    string
	names      []string
	headers    map[string]string
	sent       bool
}

func NewResponse(conn io.WriteCloser) *Response {
	return &Response{
		conn:       conn,
		statusCode: 200,
		version:    "HTTP/1.1",
		headers:    make(map[string]string),
	}
}

// Set stores a header, overwriting any previous value under the same name.
// The first Set of a name decides where it is serialized.
func (r *Response) Set(name, value string) *Response {
	if _, ok := r.headers[name]; !ok {
		r.names = append(r.names, name)
	}
	r.headers[name] = value
	return r
}

func (r *Response) Get(name string) string {
	return r.headers[name]
}

// Header returns the header names in serialization order.
func (r *Response) Header() []string {
	return append([]string(nil), r.names...)
}

func (r *Response) Status(code int) *Response {
	r.statusCode = code
	return r
}

func (r *Response) StatusCode() int { return r.statusCode }
func (r *Response) Sent() bool      { return r.sent }

func (r *Response) SendString(body string) error {
	return r.Send([]byte(body))
}

// Redirect sends a 301 pointing at location.
func (r *Response) Redirect(location string) error {
	return r.Status(301).Set("Location", location).SendString("Redirecting")
}

// Send writes the response and closes the connection.
func (r *Response) Send(body []byte) error {
	if r.sent {
		slog.Warn(fmt.Sprintf("Send called twice, second time with status: %d", r.statusCode))
		return ErrResponseSent
	}
	r.sent = true

	if r.headers["Content-Type"] == "" {
		r.Set("Content-Type", "text/html")
	}

	statusLine := r.version + " " + strconv.Itoa(r.statusCode) + " " + StatusText(r.statusCode) + "\r\n"
	var headerBlock bytes.Buffer
	for _, name := range r.names {
		headerBlock.WriteString(name)
		headerBlock.Write([]byte{':', ' '})
		headerBlock.WriteString(r.headers[name])
		headerBlock.Write(nlcf)
	}

	werr := r.write(statusLine, headerBlock.Bytes(), body)
	cerr := r.conn.Close()
	if werr != nil {
		return fmt.Errorf("write response: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("close connection: %w", cerr)
	}
	return nil
}

func (r *Response) write(statusLine string, headerBlock, body []byte) error {
	// Redirects go out as one payload.
	if r.statusCode == 301 {
		payload := make([]byte, 0, len(statusLine)+len(headerBlock)+len(nlcf)+len(body))
		payload = append(payload, statusLine...)
		payload = append(payload, headerBlock...)
		payload = append(payload, nlcf...)
		payload = append(payload, body...)
		_, err := r.conn.Write(payload)
		return err
	}

	if _, err := io.WriteString(r.conn, statusLine); err != nil {
		return err
	}
	if _, err := r.conn.Write(headerBlock); err != nil {
		return err
	}
	if _, err := r.conn.Write(nlcf); err != nil {
		return err
	}
	if _, err := r.conn.Write(body); err != nil {
		return err
	}
	return nil
}
