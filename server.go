package slither

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// Server owns every room, the global tick scheduler, and the HTTP/WebSocket
// surface. Exactly one Server runs per process.
type Server struct {
	cfg      *Config
	rooms    []*Room
	roomByID map[string]*Room
	policy   *Policy

	upgrader websocket.Upgrader
	limiter  *ipRateLimiter

	mu       sync.Mutex
	sessions map[string]*session
}

// session tracks which room (if any) a live connection has joined.
type session struct {
	conn     *Conn
	room     *Room
	playerID string
}

// NewServer builds the room fleet and installs a policy: a trained weight
// file if cfg.WeightsPath is set and loads cleanly, otherwise the
// deterministic default network. A bad weight file degrades bot play, it
// never stops the server.
func NewServer(cfg *Config) *Server {
	policy := NewDefaultPolicy(42)
	if cfg.WeightsPath != "" {
		if err := policy.LoadWeights(cfg.WeightsPath); err != nil {
			log.Printf("policy weights: %v (continuing with default policy)", err)
		}
	}

	s := &Server{
		cfg:      cfg,
		roomByID: make(map[string]*Room),
		policy:   policy,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		limiter:  newIPRateLimiter(cfg.JoinCooldown),
		sessions: make(map[string]*session),
	}
	for i := 0; i < RoomCount; i++ {
		r := NewRoom(i, cfg, policy)
		s.rooms = append(s.rooms, r)
		s.roomByID[r.ID] = r
	}
	return s
}

// Start registers HTTP routes, launches the tick scheduler, and blocks
// serving connections.
func (s *Server) Start() error {
	router := mux.NewRouter()
	router.HandleFunc(WSPath, s.handleWS)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/rooms/stats", s.handleRoomStatsHTTP).Methods(http.MethodGet)

	go s.runScheduler()

	log.Printf("listening on %s", s.cfg.ListenAddr)
	return http.ListenAndServe(s.cfg.ListenAddr, router)
}

// runScheduler advances every room once per tick period. Sleep is clamped
// to zero and never accumulates a catch-up burst: a slow tick simply
// shortens (or eliminates) the next sleep.
func (s *Server) runScheduler() {
	for {
		start := time.Now()
		for _, r := range s.rooms {
			if r.maybeAutoStart() {
				// Short grace pause after a start so clients can render
				// the game_start roster before the first delta lands.
				time.Sleep(RoomFullStartDelay)
				continue
			}
			if r.StatusString() == StatusRunning {
				r.Step()
			}
		}
		elapsed := time.Since(start)
		if sleep := TickPeriod - elapsed; sleep > 0 {
			time.Sleep(sleep)
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRoomStatsHTTP(w http.ResponseWriter, r *http.Request) {
	msg := s.roomStatsMessage()
	w.Header().Set("Content-Type", "application/json")
	_ = writeJSON(w, msg)
}

func (s *Server) roomStatsMessage() ServerRoomStatsMsg {
	rooms := make([]RoomStatsEntry, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r.Stats())
	}
	return ServerRoomStatsMsg{Type: MsgRoomStats, Rooms: rooms}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	if !s.limiter.allow(ip) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}

	conn := NewConn(ws)
	sess := &session{conn: conn}
	s.mu.Lock()
	s.sessions[conn.ID] = sess
	s.mu.Unlock()

	go conn.WritePump()
	conn.ReadPump(
		func(raw []byte) { s.dispatch(sess, raw) },
		func() { s.onDisconnect(sess) },
	)
}

func (s *Server) onDisconnect(sess *session) {
	s.mu.Lock()
	delete(s.sessions, sess.conn.ID)
	room := sess.room
	s.mu.Unlock()
	if room != nil {
		room.RemovePlayer(sess.playerID)
	}
}

// dispatch sniffs the "t" tag and routes to the matching handler. A panic
// while handling one client is contained to that connection.
func (s *Server) dispatch(sess *session, raw []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("conn %s: handler panic: %v", sess.conn.ID, rec)
			sess.conn.Close()
		}
	}()

	tag, err := peekType(raw)
	if err != nil {
		_ = sess.conn.Send(newErrorMsg("BAD_MESSAGE"))
		return
	}

	switch tag {
	case MsgJoin:
		var msg ClientJoinMsg
		if err := unmarshalStrict(raw, &msg); err != nil {
			_ = sess.conn.Send(newErrorMsg("BAD_MESSAGE"))
			return
		}
		s.handleJoin(sess, msg)
	case MsgInput:
		var msg ClientInputMsg
		if err := unmarshalStrict(raw, &msg); err != nil {
			return
		}
		s.handleInput(sess, msg)
	case MsgStartRequest:
		s.handleStartRequest(sess)
	case MsgExit:
		s.handleExit(sess)
	case MsgRoomStatsReq:
		_ = sess.conn.Send(s.roomStatsMessage())
	default:
		_ = sess.conn.Send(newErrorMsg("UNKNOWN_TYPE"))
	}
}

func (s *Server) handleJoin(sess *session, msg ClientJoinMsg) {
	room, ok := s.roomByID[msg.RoomID]
	if !ok {
		_ = sess.conn.Send(newErrorMsg(ErrCodeRoomNotFound))
		return
	}

	name := msg.Username
	if name == "" {
		name = "Guest"
	}
	p := NewHumanPlayer(sess.conn.ID, name, sess.conn)

	if err := room.AddPlayer(p); err != nil {
		_ = sess.conn.Send(newErrorMsg(ErrCodeRoomFull))
		return
	}

	s.mu.Lock()
	sess.room = room
	sess.playerID = p.ID
	s.mu.Unlock()

	resp := ServerJoinOKMsg{
		Type:     MsgJoinOK,
		RoomID:   room.ID,
		Status:   string(room.StatusString()),
		Map:      MapDims{W: MapWidth, H: MapHeight},
		Players:  room.Roster(),
		YourID:   p.ID,
		Snapshot: room.JoinSnapshotFor(),
	}
	_ = sess.conn.Send(resp)
}

func (s *Server) handleInput(sess *session, msg ClientInputMsg) {
	if sess.room == nil {
		return
	}
	dir, ok := parseDirection(msg.Dir)
	if !ok {
		return
	}
	_ = sess.room.HandleInput(sess.playerID, dir)
}

func (s *Server) handleStartRequest(sess *session) {
	if sess.room == nil {
		return
	}
	if err := sess.room.HandleStartRequest(sess.playerID); err != nil {
		_ = sess.conn.Send(newErrorMsg(ErrCodeNotHost))
	}
}

func (s *Server) handleExit(sess *session) {
	if sess.room != nil {
		sess.room.RemovePlayer(sess.playerID)
		s.mu.Lock()
		sess.room = nil
		s.mu.Unlock()
	}
	// Graceful disconnect: drop the transport too, ending the read pump.
	sess.conn.Close()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ipRateLimiter enforces one WebSocket connection attempt per IP per
// cooldown window; join messages on an open connection are not limited.
type ipRateLimiter struct {
	mu       sync.Mutex
	last     map[string]time.Time
	cooldown time.Duration
}

func newIPRateLimiter(cooldown time.Duration) *ipRateLimiter {
	l := &ipRateLimiter{last: make(map[string]time.Time), cooldown: cooldown}
	go l.cleanupLoop()
	return l
}

func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	if t, ok := l.last[ip]; ok && now.Sub(t) < l.cooldown {
		return false
	}
	l.last[ip] = now
	return true
}

func (l *ipRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		cutoff := time.Now().Add(-10 * time.Minute)
		for ip, t := range l.last {
			if t.Before(cutoff) {
				delete(l.last, ip)
			}
		}
		l.mu.Unlock()
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) error {
	return json.NewEncoder(w).Encode(v)
}

func unmarshalStrict(raw []byte, v interface{}) error {
	return json.Unmarshal(raw, v)
}
