package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/docuscan/cli/internal/logger"
)

// Status is the snapshot shown by the watch dashboard. It is replaced
// wholesale on every publish; clients never see partial updates.
type Status struct {
	State       string    `json:"state"`
	Framework   string    `json:"framework"`
	TotalRoutes int       `json:"totalRoutes"`
	Modules     int       `json:"modules"`
	Runs        int       `json:"runs"`
	LastRun     time.Time `json:"lastRun"`
	LastError   string    `json:"lastError,omitempty"`
}

// Server exposes the current watch status over HTTP and pushes every
// update to connected websocket clients.
type Server struct {
	addr     string
	log      logger.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	status  Status
	clients map[*websocket.Conn]struct{}
}

func NewServer(addr string, log logger.Logger) *Server {
	return &Server{
		addr:    addr,
		log:     log,
		status:  Status{State: "idle"},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the dashboard routes, separate from Run so tests can
// mount them on an httptest server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()
	s.log.Logf("dashboard listening on http://%s\n", s.addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		s.closeClients()
		return nil
	case err := <-errCh:
		return err
	}
}

// Publish replaces the status and broadcasts it to websocket clients.
func (s *Server) Publish(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status

	payload, err := json.Marshal(status)
	if err != nil {
		return
	}
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status := s.status
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("websocket upgrade failed: %v\n", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	payload, _ := json.Marshal(s.status)
	_ = conn.WriteMessage(websocket.TextMessage, payload)
	s.mu.Unlock()

	// the read loop only exists to notice the client going away
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.mu.Lock()
				delete(s.clients, conn)
				s.mu.Unlock()
				conn.Close()
				return
			}
		}
	}()
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

const indexHTML = `<!doctype html>
<html>
<head><title>docuscan</title>
<style>
body { font-family: monospace; background: #111; color: #eee; padding: 2rem; }
dt { color: #888; } dd { margin: 0 0 .5rem; font-size: 1.2rem; }
.error { color: #f66; }
</style>
</head>
<body>
<h1>docuscan watch</h1>
<dl>
<dt>state</dt><dd id="state">-</dd>
<dt>framework</dt><dd id="framework">-</dd>
<dt>routes</dt><dd id="totalRoutes">-</dd>
<dt>modules</dt><dd id="modules">-</dd>
<dt>runs</dt><dd id="runs">-</dd>
<dt>last run</dt><dd id="lastRun">-</dd>
<dt>last error</dt><dd id="lastError" class="error">-</dd>
</dl>
<script>
function render(s) {
  for (const k of ["state","framework","totalRoutes","modules","runs","lastRun","lastError"]) {
    document.getElementById(k).textContent = s[k] ?? "-";
  }
}
fetch("/api/status").then(r => r.json()).then(render);
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = e => render(JSON.parse(e.data));
</script>
</body>
</html>
`
