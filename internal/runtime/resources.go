package runtime

import (
	"database/sql"
	"fmt"
	"image"
	"net"
	"sync"
)

// ChannelValue is a shared-ownership sender/receiver pair over Values.
// Send never blocks (buffered); Receive is non-blocking.
type ChannelValue struct {
	ch chan Value
	closed *bool
	mu *sync.Mutex
}

// NewChannel creates a buffered channel; requires `.send` to
// never block, so the buffer is sized generously rather than 0.
func NewChannel(buffer int) *ChannelValue {
	if buffer <= 0 {
		buffer = 1024
	}
	closed := false
	return &ChannelValue{ch: make(chan Value, buffer), closed: &closed, mu: &sync.Mutex{}}
}

func (v *ChannelValue) Type() string { return "CHANNEL" }
func (v *ChannelValue) String() string { return "Channel" }

// Send enqueues val; returns an error only if the channel is full enough
// to block (callers are expected to size buffers generously) or closed.
func (v *ChannelValue) Send(val Value) error {
	v.mu.Lock()
	if *v.closed {
		v.mu.Unlock()
		return fmt.Errorf("send on disconnected channel")
	}
	v.mu.Unlock()
	select {
	case v.ch <- val:
		return nil
	default:
		return fmt.Errorf("channel buffer full")
	}
}

// Receive returns (value, true) if something was waiting, or (Null,
// false) if empty; disconnection is surfaced separately via Closed().
func (v *ChannelValue) Receive() (Value, bool) {
	select {
	case val, ok := <-v.ch:
		if !ok {
			return Null, false
		}
		return val, true
	default:
		return Null, false
	}
}

func (v *ChannelValue) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !*v.closed {
		*v.closed = true
		close(v.ch)
	}
}

func (v *ChannelValue) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return *v.closed
}

// Route is one registered (method, path-pattern, handler) entry. Handler
// is a callable Value (Function/NativeFunction).
type Route struct {
	Method string
	Pattern string
	Handler Value
}

// HttpServerValue carries a port and an immutable route list; `.route`
// returns a new HttpServerValue rather than mutating in place — routes
// are immutable per registration.
type HttpServerValue struct {
	Port int
	Routes []Route
}

func (v *HttpServerValue) Type() string { return "HTTP_SERVER" }
func (v *HttpServerValue) String() string {
	return fmt.Sprintf("HttpServer(port=%d, %d routes)", v.Port, len(v.Routes))
}

// WithRoute returns a new server value with one more route appended.
func (v *HttpServerValue) WithRoute(method, pattern string, handler Value) *HttpServerValue {
	routes := make([]Route, len(v.Routes)+1)
	copy(routes, v.Routes)
	routes[len(v.Routes)] = Route{Method: method, Pattern: pattern, Handler: handler}
	return &HttpServerValue{Port: v.Port, Routes: routes}
}

// HttpResponseValue is a handler's returned {status, body, headers} tuple.
type HttpResponseValue struct {
	Status int
	Body string
	Headers map[string]string
}

func (v *HttpResponseValue) Type() string { return "HTTP_RESPONSE" }
func (v *HttpResponseValue) String() string {
	return fmt.Sprintf("HttpResponse(status=%d, body_len=%d)", v.Status, len(v.Body))
}

// TcpListenerValue wraps a net.Listener.
type TcpListenerValue struct {
	Listener net.Listener
	Addr string
}

func (v *TcpListenerValue) Type() string { return "TCP_LISTENER" }
func (v *TcpListenerValue) String() string { return "TcpListener(" + v.Addr + ")" }

// TcpStreamValue wraps a net.Conn.
type TcpStreamValue struct {
	Conn net.Conn
	PeerAddr string
}

func (v *TcpStreamValue) Type() string { return "TCP_STREAM" }
func (v *TcpStreamValue) String() string { return "TcpStream(" + v.PeerAddr + ")" }

// UdpSocketValue wraps a net.PacketConn.
type UdpSocketValue struct {
	Conn net.PacketConn
	Addr string
}

func (v *UdpSocketValue) Type() string { return "UDP_SOCKET" }
func (v *UdpSocketValue) String() string { return "UdpSocket(" + v.Addr + ")" }

// DatabaseValue wraps one database/sql connection. Each DB-kind native
// function (sqlite/postgres/mysql) registers its driver under
// database/sql and constructs this the same way regardless of kind.
type DatabaseValue struct {
	DB *sql.DB
	DriverName string
	ConnectionString string
	mu sync.Mutex
	inTransaction bool
	tx *sql.Tx
}

func (v *DatabaseValue) Type() string { return "DATABASE" }
func (v *DatabaseValue) String() string {
	return fmt.Sprintf("Database(type=%s)", v.DriverName)
}

// InTransaction reports the transaction flag inspected by
// internal/cleanup at shutdown.
func (v *DatabaseValue) InTransaction() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.inTransaction
}

func (v *DatabaseValue) BeginTx(tx *sql.Tx) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tx = tx
	v.inTransaction = true
}

// Rollback rolls back any open transaction; used by normal `rollback()`
// calls and by internal/cleanup on shutdown.
func (v *DatabaseValue) Rollback() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.inTransaction || v.tx == nil {
		return nil
	}
	err := v.tx.Rollback()
	v.inTransaction = false
	v.tx = nil
	return err
}

func (v *DatabaseValue) Commit() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.inTransaction || v.tx == nil {
		return nil
	}
	err := v.tx.Commit()
	v.inTransaction = false
	v.tx = nil
	return err
}

// DatabasePoolValue wraps a bounded database/sql pool; database/sql
// already pools connections internally, so this mostly configures
// SetMaxOpenConns/SetMaxIdleConns and exposes pool stats via Stats().
type DatabasePoolValue struct {
	DB *sql.DB
	DriverName string
	MaxConnections int
	mu sync.Mutex
	totalCreated int
	inUse int
}

func (v *DatabasePoolValue) Type() string { return "DATABASE_POOL" }
func (v *DatabasePoolValue) String() string {
	return fmt.Sprintf("DatabasePool(type=%s, max=%d)", v.DriverName, v.MaxConnections)
}

func (v *DatabasePoolValue) Stats() map[string]int {
	v.mu.Lock()
	defer v.mu.Unlock()
	stats := v.DB.Stats()
	return map[string]int{
		"available": stats.Idle,
		"in_use": stats.InUse,
		"total": stats.OpenConnections,
		"max": v.MaxConnections,
	}
}

// ImageValue wraps a decoded image plus its source format string.
type ImageValue struct {
	Data image.Image
	Format string
	mu sync.Mutex
}

func (v *ImageValue) Type() string { return "IMAGE" }
func (v *ImageValue) String() string {
	b := v.Data.Bounds()
	return fmt.Sprintf("Image(%dx%d, format=%s)", b.Dx(), b.Dy(), v.Format)
}

func (v *ImageValue) Lock() { v.mu.Lock() }
func (v *ImageValue) Unlock() { v.mu.Unlock() }

// ZipArchiveValue wraps an open zip writer and its destination path.
type ZipArchiveValue struct {
	Path string
	Closer func() error
	mu sync.Mutex
	closed bool
}

func (v *ZipArchiveValue) Type() string { return "ZIP_ARCHIVE" }
func (v *ZipArchiveValue) String() string { return "ZipArchive(" + v.Path + ")" }

func (v *ZipArchiveValue) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	v.closed = true
	return v.Closer()
}
