package slither

import "time"

// Sender abstracts "deliver this JSON-able message to the client", so Room
// and Player logic never depend on *websocket.Conn directly. connection.go's
// *Conn implements this.
type Sender interface {
	Send(msg interface{}) error
}

// Player is one seat in a Room: a human connection or a bot. Body is
// ordered head-first. BodySet mirrors Body for O(1) membership tests
// during collision arbitration (invariant: BodySet == set(Body) at every
// tick boundary).
type Player struct {
	ID   string
	Name string

	IsBot bool
	conn  Sender // nil for bots; kept after a human disconnects (Connected goes false)

	Connected  bool
	Alive      bool
	Eliminated bool

	Score int

	Direction        Cell
	PendingDirection *Cell // set by the most recent "in" message, consumed at tick start

	Body    []Cell
	BodySet map[Cell]struct{}

	LastInputTs time.Time
	LastSeenTs  time.Time
}

// NewHumanPlayer constructs a connected human player. It starts not alive
// and without a body until a round spawns it.
func NewHumanPlayer(id, name string, conn Sender) *Player {
	return &Player{
		ID:         id,
		Name:       truncateName(name),
		conn:       conn,
		Connected:  true,
		Direction:  DirRight,
		BodySet:    make(map[Cell]struct{}),
		LastSeenTs: time.Now(),
	}
}

// NewBotPlayer constructs a bot seat. Bots arrive alive and connected, the
// same as any other joiner; the room's bench logic sidelines the extras
// once humans show up.
func NewBotPlayer(id, name string) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		IsBot:     true,
		Connected: true,
		Alive:     true,
		Direction: DirRight,
		BodySet:   make(map[Cell]struct{}),
	}
}

func truncateName(name string) string {
	const maxNameLen = 10
	r := []rune(name)
	if len(r) > maxNameLen {
		return string(r[:maxNameLen])
	}
	return name
}

// Head returns the player's current head cell. Callers must only invoke
// this on a player with a non-empty Body (i.e. spawned).
func (p *Player) Head() Cell {
	return p.Body[0]
}

// Send delivers a message to the underlying connection, if any. A no-op
// for bots (their conn is nil).
func (p *Player) Send(msg interface{}) error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Send(msg)
}

// SetConn (re)attaches a live connection, used when a player reconnects or
// when a bot needs no connection at all (pass nil).
func (p *Player) SetConn(conn Sender) {
	p.conn = conn
}

// spawnAt resets the player to a fresh length-InitialSnakeLength body
// pointing in DirRight, laid out [head, head-1, head-2] along the X axis.
func (p *Player) spawnAt(head Cell) {
	p.Body = []Cell{
		head,
		{X: head.X - 1, Y: head.Y},
		{X: head.X - 2, Y: head.Y},
	}
	p.BodySet = make(map[Cell]struct{}, len(p.Body))
	for _, c := range p.Body {
		p.BodySet[c] = struct{}{}
	}
	p.Direction = DirRight
	p.PendingDirection = nil
	p.Alive = true
	p.Eliminated = false
}

// clearBody empties Body/BodySet on death.
func (p *Player) clearBody() {
	p.Body = nil
	p.BodySet = make(map[Cell]struct{})
}

// isBenchedBot reports whether this bot is sitting out this round (not
// alive, not eliminated), resident and available for revival.
func (p *Player) isBenchedBot() bool {
	return p.IsBot && !p.Alive && !p.Eliminated
}

// countsTowardCapacity reports whether this player occupies a room slot for
// capacity/stats purposes. Disconnected, eliminated ghosts still occupy a
// slot until explicitly removed; only benched bots are excluded.
func (p *Player) countsTowardCapacity() bool {
	return !p.isBenchedBot()
}
