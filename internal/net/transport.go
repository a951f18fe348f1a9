package net

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/mdns"

	"Kreate/internal/input"
)

// peer is a device connected to the bridge.
type peer struct {
	id   string
	conn *websocket.Conn
}

// Bridge is a gesture source fed by e-reader pages over websocket. Each
// connected page streams tap and swipe messages; every decoded event is
// passed to the handler given to Start.
type Bridge struct {
	port      int
	path      string
	advertise bool

	upgrader websocket.Upgrader
	handle   func(input.Event)

	peers map[string]*peer
	mu    sync.RWMutex

	listener net.Listener
	server   *http.Server
	zone     *mdns.Server
}

var _ input.GestureSource = (*Bridge)(nil)

// NewBridge creates a bridge listening on port at path. Port 0 picks a
// free port.
func NewBridge(port int, path string, advertise bool) *Bridge {
	return &Bridge{
		port:      port,
		path:      path,
		advertise: advertise,
		upgrader: websocket.Upgrader{
			// device pages are served from anywhere on the LAN
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[string]*peer),
	}
}

// Start listens for devices and delivers their gestures to handle. handle
// is called from connection goroutines.
func (b *Bridge) Start(handle func(input.Event)) error {
	if handle == nil {
		return errors.New("bridge: nil handler")
	}
	b.handle = handle

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", b.port))
	if err != nil {
		return fmt.Errorf("bridge: listen on port %d: %w", b.port, err)
	}
	b.listener = ln

	mux := http.NewServeMux()
	mux.Handle(b.path, b)
	b.server = &http.Server{Handler: mux}
	go func() {
		if err := b.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[BRIDGE] Server stopped: %v", err)
		}
	}()
	log.Printf("[BRIDGE] Listening on %s%s", ln.Addr(), b.path)

	if b.advertise {
		zone, err := advertise(b.Port(), b.path)
		if err != nil {
			log.Printf("[MDNS] %v", err)
		} else {
			b.zone = zone
			log.Printf("[MDNS] Advertising %s on port %d", serviceType, b.Port())
		}
	}
	return nil
}

// Port returns the port the bridge listens on, resolved after Start.
func (b *Bridge) Port() int {
	if b.listener == nil {
		return b.port
	}
	if addr, ok := b.listener.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return b.port
}

// URL is the address a device page should connect to.
func (b *Bridge) URL() string {
	ip, err := GetOutgoingIP()
	if err != nil {
		ip = "127.0.0.1"
	}
	return "ws://" + net.JoinHostPort(ip, strconv.Itoa(b.Port())) + b.path
}

// ServeHTTP upgrades a device connection and reads its gestures until it
// disconnects.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[BRIDGE] Upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}
	p := &peer{id: uuid.NewString(), conn: conn}
	b.add(p)
	defer b.remove(p)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[BRIDGE] Peer %s disconnected: %v", p.id, err)
			return
		}
		ev, err := DecodeGesture(data)
		if err != nil {
			log.Printf("[BRIDGE] Peer %s: %v", p.id, err)
			continue
		}
		if b.handle != nil {
			b.handle(ev)
		}
	}
}

func (b *Bridge) add(p *peer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.peers[p.id] = p
	log.Printf("[BRIDGE] Device %s connected from %s", p.id, p.conn.RemoteAddr())
}

func (b *Bridge) remove(p *peer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.peers, p.id)
	p.conn.Close()
}

// Peers returns the number of connected devices.
func (b *Bridge) Peers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.peers)
}

// Close stops advertising, stops the server and drops every device.
func (b *Bridge) Close() error {
	if b.zone != nil {
		if err := b.zone.Shutdown(); err != nil {
			log.Printf("[MDNS] Shutdown: %v", err)
		}
		b.zone = nil
	}
	var err error
	if b.server != nil {
		err = b.server.Close()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for id, p := range b.peers {
		p.conn.Close()
		delete(b.peers, id)
	}
	return err
}
