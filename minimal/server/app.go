package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"
)

var (
	ErrAlreadyListening = errors.New("app is already listening")
	ErrServerClosed     = errors.New("app closed")
)

// HandlerFunc answers a request by calling one of res's Send methods.
type HandlerFunc func(req *Request, res *Response)

// Middleware runs before route dispatch. Calling next dispatches to the
// route table; not calling it short-circuits.
type Middleware func(req *Request, res *Response, next func())

type Option func(*App)

// WithReadBufferSize sets the size of the single chunk read per connection.
func WithReadBufferSize(n int) Option {
	return func(a *App) {
		if n > 0 {
			a.readBufferSize = n
		}
	}
}

// WithReadTimeout bounds how long a connection may take to send its request.
// Zero means no bound.
func WithReadTimeout(d time.Duration) Option {
	return func(a *App) { a.readTimeout = d }
}

// App routes requests arriving on raw TCP connections.
type App struct {
	readBufferSize int
	readTimeout    time.Duration

	mu         sync.RWMutex
	routes     map[string]HandlerFunc
	middleware Middleware
	listener   net.Listener
	closed     bool
	conns      sync.WaitGroup
}

func New(opts ...Option) *App {
	a := &App{
		readBufferSize: 64 * 1024,
		routes:         make(map[string]HandlerFunc),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Get registers handler for GET requests on path.
func (a *App) Get(path string, handler HandlerFunc) {
	a.Handle("GET", path, handler)
}

// Handle registers handler under method and the normalized path. A later
// registration that normalizes to the same key replaces the earlier one.
func (a *App) Handle(method, path string, handler HandlerFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.routes[routeKey(method, path)] = handler
}

// Use sets the middleware, replacing any previous one.
func (a *App) Use(mw Middleware) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.middleware = mw
}

// Listen binds host:port and serves until Close is called.
func (a *App) Listen(port int, host string) error {
	l, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return err
	}
	return a.Serve(l)
}

// Serve accepts connections on l. It always closes l before returning.
func (a *App) Serve(l net.Listener) error {
	defer l.Close()

	a.mu.Lock()
	switch {
	case a.closed:
		a.mu.Unlock()
		return ErrServerClosed
	case a.listener != nil:
		a.mu.Unlock()
		return ErrAlreadyListening
	}
	a.listener = l
	a.mu.Unlock()

	for {
		conn, err := l.Accept()
		if err != nil {
			if a.isClosed() {
				return ErrServerClosed
			}
			return err
		}

		if !a.track() {
			conn.Close()
			return ErrServerClosed
		}
		go func() {
			defer a.conns.Done()
			if err := a.handleConnection(conn); err != nil {
				slog.Error(fmt.Sprintf("http error: %s", err))
			}
		}()
	}
}

// Listening reports whether Serve has taken a listener.
func (a *App) Listening() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.listener != nil && !a.closed
}

// Addr returns the listener address, or nil before Listen.
func (a *App) Addr() net.Addr {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.listener == nil {
		return nil
	}
	return a.listener.Addr()
}

// Close stops accepting new connections. It does not wait for connections
// already accepted; use Shutdown for that.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	if a.listener == nil {
		return nil
	}
	return a.listener.Close()
}

// Shutdown stops accepting new connections and waits until every accepted
// connection has been answered or ctx is done.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Close()

	done := make(chan struct{})
	go func() {
		a.conns.Wait()
		close(done)
	}()

	select {
	case <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// track registers an accepted connection unless the app is closed. Holding
// mu orders every Add before the Wait in Shutdown.
func (a *App) track() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return false
	}
	a.conns.Add(1)
	return true
}

func (a *App) isClosed() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.closed
}

func (a *App) dispatch(req *Request, res *Response) {
	a.mu.RLock()
	mw := a.middleware
	a.mu.RUnlock()

	if mw == nil {
		a.route(req, res)
		return
	}
	mw(req, res, func() { a.route(req, res) })
}

func (a *App) route(req *Request, res *Response) {
	a.mu.RLock()
	handler, ok := a.routes[req.Key()]
	a.mu.RUnlock()

	if !ok {
		if err := res.Status(404).SendString("Page not found"); err != nil {
			slog.Error(fmt.Sprintf("http error: %s", err))
		}
		return
	}
	handler(req, res)
}
