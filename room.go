package slither

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// RoomStatus is the room lifecycle state.
type RoomStatus string

const (
	StatusIdle     RoomStatus = "IDLE"
	StatusWaiting  RoomStatus = "WAITING"
	StatusRunning  RoomStatus = "RUNNING"
	StatusFinished RoomStatus = "FINISHED"
)

var (
	ErrRoomFull = errors.New("room full")
	ErrNotHost  = errors.New("not host")
	ErrBadState = errors.New("room not in a state that allows this action")
)

// Room is the authoritative simulation for one grid of up to Capacity
// players. Exactly one goroutine (the scheduler in server.go) ever calls
// Step; everything else (join, remove, input, start requests) is invoked
// from connection-handling goroutines and synchronizes through mu. One
// mutex covers every mutation of room state.
type Room struct {
	mu sync.Mutex

	ID       string
	Index    int
	Capacity int

	Status  RoomStatus
	Players map[string]*Player
	HostID  string

	// activeBots lists the room's bot ids in fixed seat order. The slice
	// itself never changes: benching walks it from the end and keeps the
	// first seat, and StartGame fields bots in this order.
	activeBots []string

	food     []Cell
	occupied map[Cell]struct{}

	TickID    int
	StartTime time.Time

	DeathOrder    []string
	countdownAt   *time.Time
	pendingDeaths map[string]struct{}

	policy *Policy
}

// NewRoom creates a room pre-seated with BotsPerRoom bots. The bots
// arrive alive, so a freshly created room sits in WAITING with the first
// bot holding host until a human shows up and takes it over.
func NewRoom(index int, cfg *Config, policy *Policy) *Room {
	r := &Room{
		ID:            fmt.Sprintf("room-%d", index+1),
		Index:         index,
		Capacity:      RoomCapacity,
		Status:        StatusIdle,
		Players:       make(map[string]*Player),
		food:          nil,
		occupied:      make(map[Cell]struct{}),
		pendingDeaths: make(map[string]struct{}),
		policy:        policy,
	}
	botCount := cfg.BotsPerRoom
	for i := 0; i < botCount; i++ {
		id := botID(index, i)
		b := NewBotPlayer(id, botName(i))
		r.Players[id] = b
		r.activeBots = append(r.activeBots, id)
		if r.HostID == "" {
			r.HostID = id
		}
		r.Status = StatusWaiting
	}
	return r
}

// countedPlayers excludes benched bots: a bot sitting out doesn't count
// against capacity or show up in the roster.
func (r *Room) countedPlayers() []*Player {
	out := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if p.countsTowardCapacity() {
			out = append(out, p)
		}
	}
	return out
}

func (r *Room) countedPlayerCount() int {
	n := 0
	for _, p := range r.Players {
		if p.countsTowardCapacity() {
			n++
		}
	}
	return n
}

func (r *Room) humanCount() int {
	n := 0
	for _, p := range r.Players {
		if !p.IsBot && p.Connected {
			n++
		}
	}
	return n
}

// broadcast fans a message out to every connected player's send queue,
// fire-and-forget: a slow or dead connection never blocks the tick, and a
// delivery error is logged, not propagated.
func (r *Room) broadcast(msg interface{}) {
	for _, p := range r.Players {
		if !p.Connected {
			continue
		}
		if err := p.Send(msg); err != nil {
			log.Printf("room %s: broadcast to %s failed: %v", r.ID, p.ID, err)
		}
	}
}

// AddPlayer seats a new human connection. Joining a RUNNING room admits the
// player as a spectator (Alive=false, no body) rather than rejecting them.
func (r *Room) AddPlayer(p *Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.countedPlayerCount() >= r.Capacity {
		return ErrRoomFull
	}

	if r.Status == StatusRunning {
		p.Alive = false
	}

	r.Players[p.ID] = p

	// First human to arrive takes host over from a bot seat-warmer.
	if r.HostID == "" {
		r.HostID = p.ID
	} else if host, ok := r.Players[r.HostID]; !p.IsBot && (!ok || host.IsBot) {
		r.HostID = p.ID
	}

	if !p.IsBot {
		r.benchExcessBots()
	}

	if r.Status == StatusIdle {
		r.Status = StatusWaiting
	}
	return nil
}

// benchExcessBots applies the humans-crowd-out-bots rule: with
// BenchHumanThreshold or fewer humans present in a WAITING room, every
// active bot but one is benched.
func (r *Room) benchExcessBots() {
	if r.Status != StatusWaiting {
		return
	}
	if r.humanCount() > BenchHumanThreshold {
		return
	}
	for i := len(r.activeBots) - 1; i > 0; i-- {
		id := r.activeBots[i]
		b, ok := r.Players[id]
		if !ok || !b.Alive {
			continue
		}
		b.Alive = false
		b.Connected = false
	}
}

// RemovePlayer detaches a player on disconnect. In WAITING the seat is
// freed entirely; in RUNNING the player becomes a corpse whose cleanup is
// deferred to the next Step() via pendingDeaths, so the occupied set is
// only ever mutated on the tick, never from a network handler.
func (r *Room) RemovePlayer(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.Players[id]
	if !ok {
		return
	}
	p.Connected = false

	switch r.Status {
	case StatusWaiting:
		delete(r.Players, id)
		if r.HostID == id {
			r.electHost()
		}
		if r.countedPlayerCount() == 0 {
			r.Status = StatusIdle
		}
	case StatusRunning:
		p.Alive = false
		r.pendingDeaths[id] = struct{}{}
		if r.HostID == id {
			r.electHost()
		}
	}

	if r.humanCount() == 0 {
		for _, b := range r.Players {
			if b.IsBot {
				b.Score = 0
			}
		}
	}
}

// electHost picks a remaining connected player as host, humans before
// bots. Within each class Go map iteration order is randomized, so which
// player becomes host is intentionally unspecified beyond "some connected
// human, else some connected bot".
func (r *Room) electHost() {
	for id, p := range r.Players {
		if p.Connected && !p.IsBot {
			r.HostID = id
			return
		}
	}
	for id, p := range r.Players {
		if p.Connected {
			r.HostID = id
			return
		}
	}
	r.HostID = ""
}

// spawnRect computes the inner spawn rectangle: roughly the middle 60% of
// the map along each axis, falling back to a fixed 2-cell margin if the
// computed bounds would invert (can happen on a very small map).
func spawnRect(w, h int) (xMin, xMax, yMin, yMax int) {
	xMin, xMax = max(2, w/5), min(w-3, w-w/5)
	if xMin > xMax {
		xMin, xMax = 2, w-3
	}
	yMin, yMax = max(2, h/5), min(h-3, h-h/5)
	if yMin > yMax {
		yMin, yMax = 2, h-3
	}
	return
}

// findSpawnHead searches the inner spawn rectangle for a head cell whose
// full length-InitialSnakeLength body (pointing right) doesn't collide with
// occupied, giving up after SpawnAttempts tries.
func findSpawnHead(occupied map[Cell]struct{}) (Cell, bool) {
	xMin, xMax, yMin, yMax := spawnRect(MapWidth, MapHeight)
	for attempt := 0; attempt < SpawnAttempts; attempt++ {
		hx := xMin + rand.Intn(xMax-xMin+1)
		hy := yMin + rand.Intn(yMax-yMin+1)
		head := Cell{X: hx, Y: hy}
		collides := false
		for i := 0; i < InitialSnakeLength; i++ {
			c := Cell{X: hx - i, Y: hy}
			if _, ok := occupied[c]; ok {
				collides = true
				break
			}
		}
		if !collides {
			return head, true
		}
	}
	return Cell{}, false
}

// StartGame transitions WAITING -> RUNNING: revives every human, fields
// one bot when any human is present (none otherwise), spawns bodies,
// refills food, and broadcasts game_start.
func (r *Room) StartGame(reason string) {
	for id, p := range r.Players {
		if !p.IsBot && !p.Connected {
			delete(r.Players, id)
			continue
		}
		p.Eliminated = false
		p.Score = 0
		if !p.IsBot {
			p.Alive = true
		}
	}

	humans := r.humanCount()
	targetBots := 0
	if humans > 0 {
		targetBots = 1
	}
	fielded := 0
	for _, id := range r.activeBots {
		b, ok := r.Players[id]
		if !ok {
			continue
		}
		if fielded < targetBots {
			b.Alive = true
			b.Connected = true
			fielded++
		} else {
			b.Alive = false
			b.Connected = false
		}
	}

	r.Status = StatusRunning
	r.TickID = 0
	r.StartTime = time.Now()
	r.DeathOrder = nil
	r.occupied = make(map[Cell]struct{})
	r.pendingDeaths = make(map[string]struct{})
	r.food = nil

	spawnInfo := make([]SpawnInfo, 0, len(r.Players))
	for _, p := range r.Players {
		if !p.Alive {
			continue
		}
		head, ok := findSpawnHead(r.occupied)
		if !ok {
			p.Alive = false
			continue
		}
		p.spawnAt(head)
		for _, c := range p.Body {
			r.occupied[c] = struct{}{}
		}
		spawnInfo = append(spawnInfo, SpawnInfo{
			ID: p.ID, Name: p.Name, Body: cellsToPairs(p.Body), IsBot: p.IsBot,
		})
	}
	sort.Slice(spawnInfo, func(i, j int) bool { return spawnInfo[i].ID < spawnInfo[j].ID })

	r.spawnFood()

	r.broadcast(ServerGameStartMsg{
		Type:    MsgGameStart,
		TickID:  0,
		Food:    cellsToPairs(r.food),
		Players: spawnInfo,
	})
	_ = reason
}

func cellsToPairs(cells []Cell) [][2]int {
	out := make([][2]int, len(cells))
	for i, c := range cells {
		out[i] = [2]int{c.X, c.Y}
	}
	return out
}

// tickIntent is the per-player result of Phase 1: where it wants to go and
// whether that move eats.
type tickIntent struct {
	nextHead Cell
	willGrow bool
	tailFree *Cell
}

// Step advances the simulation by exactly one tick: intent, arbitration,
// commit, death cleanup. All four phases run under the room lock, so
// every other goroutine observes whole ticks, never a half-applied one.
func (r *Room) Step() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Status != StatusRunning {
		return
	}
	r.TickID++

	if r.shouldEnd() {
		r.endGame()
		return
	}

	alive := r.alivePlayers()
	for _, p := range alive {
		if p.IsBot {
			p.Direction = r.decideBotMove(p)
		}
	}

	intents := r.computeIntents(alive)
	dying, reasons := r.arbitrate(alive, intents)
	moves, foodEaten := r.applyMoves(alive, intents, dying)
	moves = append(moves, r.cleanupDeaths(dying, reasons)...)

	if foodEaten {
		r.spawnFood()
	}

	r.broadcast(ServerDeltaMsg{
		Type:  MsgDelta,
		Tick:  r.TickID,
		Moves: moves,
		Food:  cellsToPairs(r.food),
	})

	if r.shouldEnd() {
		r.endGame()
	}
}

// shouldEnd evaluates the round's end conditions: everyone dead, a
// last-snake-standing situation (unless the AI-showdown handoff keeps the
// round alive), or every human participant gone with no bot to carry on.
func (r *Room) shouldEnd() bool {
	aliveTotal := 0
	totalHumans := 0
	aliveHumans, aliveBots, benchedBots := r.countRoster()
	for _, p := range r.Players {
		if p.Alive {
			aliveTotal++
		}
		if !p.IsBot {
			totalHumans++
		}
	}
	if aliveTotal == 0 {
		return true
	}
	keepForShowdown := aliveHumans == 0 && aliveBots == 1 && benchedBots > 0
	if aliveTotal <= 1 && r.countedPlayerCount() >= 2 && !keepForShowdown {
		return true
	}
	if totalHumans > 0 && aliveHumans == 0 && aliveBots == 0 {
		return true
	}
	return false
}

func (r *Room) alivePlayers() []*Player {
	out := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if p.Alive {
			out = append(out, p)
		}
	}
	return out
}

func (r *Room) countRoster() (aliveHumans, aliveBots, benchedBots int) {
	for _, p := range r.Players {
		switch {
		case p.Alive && !p.IsBot:
			aliveHumans++
		case p.Alive && p.IsBot:
			aliveBots++
		case p.isBenchedBot():
			benchedBots++
		}
	}
	return
}

// computeIntents is Phase 1: for every alive player, where does it want to
// go next tick, and would that move eat a food cell?
func (r *Room) computeIntents(alive []*Player) map[string]tickIntent {
	intents := make(map[string]tickIntent, len(alive))
	for _, p := range alive {
		if p.PendingDirection != nil {
			p.Direction = *p.PendingDirection
			p.PendingDirection = nil
		}
		next := p.Head().Add(p.Direction)
		willGrow := r.hasFoodAt(next)
		in := tickIntent{nextHead: next, willGrow: willGrow}
		if !willGrow {
			tail := p.Body[len(p.Body)-1]
			in.tailFree = &tail
		}
		intents[p.ID] = in
	}
	return intents
}

// arbitrate is Phase 2: wall collisions, body collisions (accounting for
// tails that are vacating this tick), and symmetric head-on collisions.
func (r *Room) arbitrate(alive []*Player, intents map[string]tickIntent) (map[string]struct{}, map[string]string) {
	tailsToFree := make(map[Cell]struct{})
	for _, in := range intents {
		if in.tailFree != nil {
			tailsToFree[*in.tailFree] = struct{}{}
		}
	}

	dying := make(map[string]struct{})
	reasons := make(map[string]string)
	for id := range r.pendingDeaths {
		dying[id] = struct{}{}
		reasons[id] = "disconnect"
	}
	r.pendingDeaths = make(map[string]struct{})

	for _, p := range alive {
		in := intents[p.ID]
		if !in.nextHead.InBounds(MapWidth, MapHeight) {
			dying[p.ID] = struct{}{}
			reasons[p.ID] = "wall"
			continue
		}
		if _, occ := r.occupied[in.nextHead]; occ {
			if _, free := tailsToFree[in.nextHead]; !free {
				dying[p.ID] = struct{}{}
				reasons[p.ID] = "body"
			}
		}
	}

	for i, a := range alive {
		ai := intents[a.ID]
		for _, b := range alive[i+1:] {
			bi := intents[b.ID]
			if ai.nextHead == bi.nextHead {
				dying[a.ID] = struct{}{}
				reasons[a.ID] = "head-on"
				dying[b.ID] = struct{}{}
				reasons[b.ID] = "head-on"
			}
		}
	}
	return dying, reasons
}

// applyMoves is Phase 3: every alive, non-dying player commits its move,
// including the tail-chase edge case where the new head lands exactly on
// the vacated tail cell (the cell never actually becomes free).
func (r *Room) applyMoves(alive []*Player, intents map[string]tickIntent, dying map[string]struct{}) ([]MoveDelta, bool) {
	moves := make([]MoveDelta, 0, len(alive))
	foodEaten := false

	for _, p := range alive {
		if _, dead := dying[p.ID]; dead {
			continue
		}
		in := intents[p.ID]

		p.Body = append([]Cell{in.nextHead}, p.Body...)
		p.BodySet[in.nextHead] = struct{}{}
		r.occupied[in.nextHead] = struct{}{}

		var tailRemove *[2]int
		if !in.willGrow {
			tail := p.Body[len(p.Body)-1]
			p.Body = p.Body[:len(p.Body)-1]
			if tail == in.nextHead {
				// New head lands exactly where the tail used to be: the
				// cell stays occupied (now by the head), so it must not
				// be freed from either set.
			} else {
				delete(p.BodySet, tail)
				delete(r.occupied, tail)
				tailRemove = &[2]int{tail.X, tail.Y}
			}
		} else {
			p.Score++
			foodEaten = true
			r.removeFood(in.nextHead)
		}

		moves = append(moves, MoveDelta{
			ID:         p.ID,
			HeadAdd:    &[2]int{in.nextHead.X, in.nextHead.Y},
			TailRemove: tailRemove,
			Score:      p.Score,
			Alive:      true,
		})
	}
	return moves, foodEaten
}

// cleanupDeaths is Phase 4: halve score, record death order, clear the
// dead player's occupied cells, and — if the last human just died while a
// bot is still alive with a bot benched — revive one bot so an AI-vs-AI
// finish can still play out rather than ending instantly.
func (r *Room) cleanupDeaths(dying map[string]struct{}, reasons map[string]string) []MoveDelta {
	moves := make([]MoveDelta, 0, len(dying))
	for id := range dying {
		p, ok := r.Players[id]
		if !ok {
			continue
		}
		p.Alive = false
		p.Eliminated = true
		p.Score = p.Score / 2
		r.DeathOrder = append(r.DeathOrder, id)
		for _, c := range p.Body {
			delete(r.occupied, c)
		}
		p.clearBody()
		moves = append(moves, MoveDelta{ID: id, Dead: true, Reason: reasons[id]})

		if !p.IsBot {
			moves = append(moves, r.maybeReviveBot(dying)...)
		}
	}
	return moves
}

// maybeReviveBot implements the AI-handoff rule: once the last human is
// gone this tick, if a bot is still alive and another is benched, bring
// one benched bot back in so the round has a real finish.
func (r *Room) maybeReviveBot(dyingThisTick map[string]struct{}) []MoveDelta {
	aliveHumans := 0
	aliveBotsAfter := 0
	var benched []*Player
	for _, p := range r.Players {
		if _, diedNow := dyingThisTick[p.ID]; diedNow {
			continue
		}
		switch {
		case p.Alive && !p.IsBot:
			aliveHumans++
		case p.Alive && p.IsBot:
			aliveBotsAfter++
		case p.isBenchedBot():
			benched = append(benched, p)
		}
	}
	if aliveHumans != 0 || aliveBotsAfter == 0 || len(benched) == 0 {
		return nil
	}

	revivee := benched[0]
	// Food cells are blocked too, so the revived body never lands on food.
	blocked := make(map[Cell]struct{}, len(r.occupied)+len(r.food))
	for c := range r.occupied {
		blocked[c] = struct{}{}
	}
	for _, c := range r.food {
		blocked[c] = struct{}{}
	}
	head, ok := findSpawnHead(blocked)
	if !ok {
		return nil
	}
	revivee.spawnAt(head)
	revivee.Connected = true
	for _, c := range revivee.Body {
		r.occupied[c] = struct{}{}
	}
	headPair := [2]int{head.X, head.Y}
	return []MoveDelta{{
		ID: revivee.ID, Name: revivee.Name, Revived: true,
		HeadAdd: &headPair,
		Body:    cellsToPairs(revivee.Body), Score: revivee.Score, Alive: true,
	}}
}

// endGame transitions RUNNING -> FINISHED: ranks every participant
// (currently alive, then dead in reverse elimination order), broadcasts
// game_over, and resets the room back toward IDLE/WAITING.
func (r *Room) endGame() {
	r.Status = StatusFinished

	var aliveP []*Player
	for _, p := range r.Players {
		if p.Alive {
			aliveP = append(aliveP, p)
		}
	}
	sort.Slice(aliveP, func(i, j int) bool { return rankLess(aliveP[i], aliveP[j]) })

	var deadP []*Player
	for i := len(r.DeathOrder) - 1; i >= 0; i-- {
		if p, ok := r.Players[r.DeathOrder[i]]; ok {
			deadP = append(deadP, p)
		}
	}

	ranks := make([]RankEntry, 0, len(aliveP)+len(deadP))
	rank := 1
	for _, p := range aliveP {
		ranks = append(ranks, RankEntry{Rank: rank, ID: p.ID, Name: p.Name, Score: p.Score})
		rank++
	}
	for _, p := range deadP {
		ranks = append(ranks, RankEntry{Rank: rank, ID: p.ID, Name: p.Name, Score: p.Score})
		rank++
	}

	participants := append(append([]*Player{}, aliveP...), deadP...)
	sort.Slice(participants, func(i, j int) bool { return rankLess(participants[i], participants[j]) })

	var winnerID, winnerName string
	if len(participants) > 0 {
		winnerID = participants[0].ID
		winnerName = participants[0].Name
	}

	r.broadcast(ServerGameOverMsg{
		Type:      MsgGameOver,
		Ranks:     ranks,
		WinnerID:  winnerID,
		Winner:    winnerName,
		EndedTick: r.TickID,
	})

	for _, p := range r.Players {
		p.Score = 0
	}
	r.DeathOrder = nil
	r.pendingDeaths = make(map[string]struct{})
	r.Status = StatusIdle
	r.HostID = ""
	r.countdownAt = nil
	r.electHost()
	if r.HostID != "" {
		r.Status = StatusWaiting
	}
}

// rankLess orders two participants for the winner tie-break: highest
// score first, ties broken by ascending name then ascending id.
func rankLess(a, b *Player) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}

// HandleInput applies a direction change request, rejecting a direct
// 180-degree reversal against the direction currently committed (not
// against any still-pending input).
func (r *Room) HandleInput(playerID string, dir Cell) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.Players[playerID]
	if !ok || !p.Alive {
		return ErrBadState
	}
	if isReverse(p.Direction, dir) {
		return nil
	}
	p.PendingDirection = &dir
	p.LastInputTs = time.Now()
	return nil
}

// HandleStartRequest lets the room's host force an immediate start once at
// least two counted players are present (or, for single-player debugging,
// with just the host).
func (r *Room) HandleStartRequest(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if playerID != r.HostID || r.Status != StatusWaiting {
		return ErrNotHost
	}
	reason := "MANUAL_DEBUG"
	if r.countedPlayerCount() >= 2 {
		reason = "MANUAL"
	}
	r.StartGame(reason)
	return nil
}

// maybeAutoStart is called once per tick by the scheduler before Step();
// it implements the capacity/countdown auto-start triggers for a WAITING
// room. It reports whether it started a round, so the scheduler can
// insert the short pre-game grace pause.
func (r *Room) maybeAutoStart() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Status != StatusWaiting {
		return false
	}
	humans := r.humanCount()
	if humans == 0 {
		r.countdownAt = nil
		return false
	}
	switch counted := r.countedPlayerCount(); {
	case counted >= r.Capacity:
		r.StartGame("REF_FULL")
		return true
	case counted >= 2:
		if r.countdownAt == nil {
			deadline := time.Now().Add(AutoStartCountdown)
			r.countdownAt = &deadline
		} else if !time.Now().Before(*r.countdownAt) {
			r.StartGame("COUNTDOWN")
			return true
		}
	default:
		r.countdownAt = nil
	}
	return false
}

// Stats returns the room's current room_stats row. An idle room kept
// alive only by its own bots reports at most 1 displayed player, not the
// raw connected-bot count, so bot-only rooms don't look populated in the
// lobby.
func (r *Room) Stats() RoomStatsEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	connected := 0
	connectedHumans := 0
	connectedBots := 0
	for _, p := range r.Players {
		if !p.countsTowardCapacity() || !p.Connected {
			continue
		}
		connected++
		if p.IsBot {
			connectedBots++
		} else {
			connectedHumans++
		}
	}
	display := connected
	if connectedHumans == 0 && connectedBots > 0 {
		display = 1
	}
	used := r.countedPlayerCount()
	available := r.Capacity - used
	if available < 0 {
		available = 0
	}
	return RoomStatsEntry{
		RoomID:           r.ID,
		Status:           string(r.Status),
		ConnectedPlayers: connected,
		DisplayPlayers:   display,
		UsedSlots:        used,
		Capacity:         r.Capacity,
		AvailableSlots:   available,
	}
}

// JoinSnapshotFor builds the RUNNING-room snapshot sent to a spectator in
// their join_ok message.
func (r *Room) JoinSnapshotFor() *JoinSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Status != StatusRunning {
		return nil
	}
	snap := &JoinSnapshot{Snakes: make(map[string]SnakeSnapshot), Food: cellsToPairs(r.food)}
	for _, p := range r.Players {
		if !p.Alive {
			continue
		}
		snap.Snakes[p.ID] = SnakeSnapshot{Body: cellsToPairs(p.Body), Name: p.Name, Score: p.Score, Alive: true}
	}
	return snap
}

// Roster lists counted players as {id,name} pairs for a join_ok response.
func (r *Room) Roster() []PlayerSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]PlayerSummary, 0, len(r.Players))
	for _, p := range r.countedPlayers() {
		out = append(out, PlayerSummary{ID: p.ID, Name: p.Name})
	}
	return out
}

// StatusString returns the current status under lock, for handlers that
// only need to read it.
func (r *Room) StatusString() RoomStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Status
}
