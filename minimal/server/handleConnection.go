package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

// ServeConn answers the single request carried by conn and closes it.
func (a *App) ServeConn(conn net.Conn) error {
	return a.handleConnection(conn)
}

func (a *App) handleConnection(conn net.Conn) error {
	defer conn.Close()

	if a.readTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(a.readTimeout)); err != nil {
			return fmt.Errorf("set read deadline: %w", err)
		}
	}

	// One chunk is one request; segments after the first are not reassembled.
	buf := make([]byte, a.readBufferSize)
	n, err := conn.Read(buf)
	if err != nil && !(errors.Is(err, io.EOF) && n > 0) {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("read request error: %w", err)
	}

	req := ParseRequest(buf[:n])
	if addr := conn.RemoteAddr(); addr != nil {
		req.RemoteAddr = addr.String()
	}
	res := NewResponse(conn)

	a.dispatch(req, res)
	return nil
}
