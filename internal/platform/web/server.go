// Package web serves Snake over websockets: every connection plays its own
// game, driven by server-side ticks, and receives a JSON frame per move.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/games/snake/core"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const writeTimeout = 5 * time.Second

// ServerConfig holds configuration for the websocket server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// GameID names the variant in stored scores.
	GameID string

	// Width and Height are the board size in cells.
	Width  int
	Height int

	// MoveInterval is the time between two snake moves.
	MoveInterval time.Duration

	// Seed seeds every connection's food placement. Zero means time-seeded.
	Seed int64
}

// DefaultServerConfig returns the classic board at one move per 150ms.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:      ":8080",
		GameID:       "snake",
		Width:        20,
		Height:       20,
		MoveInterval: 150 * time.Millisecond,
	}
}

// Server runs one Snake game per websocket connection.
type Server struct {
	config   ServerConfig
	store    *storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	http     *http.Server

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex // Orders wg.Add against Shutdown's wg.Wait
	closing bool
	wg      sync.WaitGroup
}

// NewServer validates cfg and builds a server. store may be nil, in which
// case scores are not persisted. A nil logger logs to stderr.
func NewServer(cfg ServerConfig, store *storage.Store, logger *log.Logger) (*Server, error) {
	if err := core.CheckSize(cfg.Width, cfg.Height); err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	if cfg.MoveInterval <= 0 {
		return nil, fmt.Errorf("web: move interval must be positive, got %v", cfg.MoveInterval)
	}
	if cfg.GameID == "" {
		cfg.GameID = "snake"
	}
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arcade-ws",
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		ctx:    ctx,
		cancel: cancel,
	}
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the HTTP routes: /ws for play and /api/scores for the
// current top scores.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/api/scores", s.handleScores)
	return mux
}

// ListenAndServe serves until the listener fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting websocket server", "address", s.config.Address)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and ends every running game.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()

	s.cancel()
	err := s.http.Shutdown(ctx)
	s.wg.Wait()
	return err
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		gameID = s.config.GameID
	}

	entries := []scoreJSON{}
	if s.store != nil {
		scores, err := s.store.TopScores(gameID, 10)
		if err != nil {
			s.logger.Error("could not load scores", "game", gameID, "error", err)
			http.Error(w, "could not load scores", http.StatusInternalServerError)
			return
		}
		for _, e := range scores {
			entries = append(entries, scoreJSON{Player: e.Player, Score: e.Score, Length: e.Length})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"game": gameID, "scores": entries})
}

type scoreJSON struct {
	Player string `json:"player"`
	Score  int    `json:"score"`
	Length int    `json:"length"`
}

// track registers a session with the shutdown wait group. It fails once
// Shutdown has started.
func (s *Server) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.wg.Add(1)
	return true
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if !s.track() {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	defer s.wg.Done()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	player := r.URL.Query().Get("name")
	if player == "" {
		player = remoteHost(r.RemoteAddr)
	}

	s.logger.Info("session started", "player", player, "remote", r.RemoteAddr)
	sess := newSession(s, conn, player)
	sess.run()
	s.logger.Info("session ended", "player", player, "remote", r.RemoteAddr,
		"games", sess.games)
}

func remoteHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

// saveRun persists a finished game, logging failures.
func (s *Server) saveRun(player string, snap core.Snapshot) {
	if s.store == nil {
		return
	}
	_, err := s.store.SaveRun(storage.Run{
		GameID: s.config.GameID,
		Player: player,
		Score:  snap.Score,
		Length: len(snap.Body),
		Turns:  snap.Turn,
	})
	if err != nil {
		s.logger.Error("could not save score", "player", player, "error", err)
	}
}

// newSeed returns the seed for a connection's RNG.
func (s *Server) newSeed() int64 {
	if s.config.Seed != 0 {
		return s.config.Seed
	}
	return time.Now().UnixNano()
}

// session is one connection's game. The reader goroutine only queues input;
// all simulation and writes happen on the run goroutine.
type session struct {
	srv    *Server
	conn   *websocket.Conn
	player string
	rng    *rand.Rand

	mu       sync.Mutex
	state    *core.State
	restart  bool
	reported bool // game_over already sent for the current game
	games    int
}

func newSession(srv *Server, conn *websocket.Conn, player string) *session {
	sess := &session{
		srv:    srv,
		conn:   conn,
		player: player,
		rng:    rand.New(rand.NewSource(srv.newSeed())),
	}
	sess.state = sess.newState()
	return sess
}

func (s *session) newState() *core.State {
	s.games++
	cfg := s.srv.config
	return core.New(cfg.Width, cfg.Height, rand.New(rand.NewSource(s.rng.Int63())))
}

func (s *session) run() {
	defer s.conn.Close()

	done := make(chan struct{})
	go s.readLoop(done)

	if err := s.send("frame", s.snapshot()); err != nil {
		return
	}

	ticker := time.NewTicker(s.srv.config.MoveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-s.srv.ctx.Done():
			s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeTimeout))
			return
		case <-ticker.C:
			if err := s.tick(); err != nil {
				s.srv.logger.Debug("write failed", "player", s.player, "error", err)
				return
			}
		}
	}
}

// tick advances the game one move and pushes the resulting messages. A
// pending restart uses the tick to send the new game's opening frame.
func (s *session) tick() error {
	s.mu.Lock()
	if s.restart {
		s.restart = false
		s.reported = false
		s.state = s.newState()
		snap := s.state.Snapshot()
		s.mu.Unlock()
		return s.send("frame", snap)
	}
	if s.state.IsOver() && s.reported {
		s.mu.Unlock()
		return nil
	}
	s.state.Tick()
	snap := s.state.Snapshot()
	finished := snap.Over && !s.reported
	if finished {
		s.reported = true
	}
	s.mu.Unlock()

	if err := s.send("frame", snap); err != nil {
		return err
	}
	if finished {
		s.srv.saveRun(s.player, snap)
		return s.send("game_over", gameOverData{Score: snap.Score, Length: len(snap.Body), Turns: snap.Turn})
	}
	return nil
}

func (s *session) snapshot() core.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}

func (s *session) readLoop(done chan<- struct{}) {
	defer close(done)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.srv.logger.Debug("read failed", "player", s.player, "error", err)
			}
			return
		}
		if err := s.handleMessage(data); err != nil {
			s.srv.logger.Warn("ignoring message", "player", s.player, "error", err)
		}
	}
}

func (s *session) handleMessage(data []byte) error {
	var msg inMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("web: bad message: %w", err)
	}

	switch msg.Type {
	case "direction":
		var name string
		if err := json.Unmarshal(msg.Data, &name); err != nil {
			return fmt.Errorf("web: bad direction payload: %w", err)
		}
		dir, err := core.ParseDirection(name)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.state.RequestDirection(dir)
		s.mu.Unlock()
	case "restart":
		s.mu.Lock()
		if s.state.IsOver() {
			s.restart = true
		}
		s.mu.Unlock()
	default:
		return fmt.Errorf("web: unknown message type %q", msg.Type)
	}
	return nil
}

func (s *session) send(kind string, data any) error {
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteJSON(outMessage{Type: kind, Data: data})
}
