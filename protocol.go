package slither

import "encoding/json"

// Wire protocol uses a JSON envelope tagged by the "t" field; tags are
// short strings, abbreviated ("in", "d", "err") for the frequent ones.
//
//	Client -> Server:
//	  "join"           {"t":"join","username":"..","room_id":".."}
//	  "in"             {"t":"in","d":"up"}
//	  "start_request"  {"t":"start_request"}
//	  "exit"           {"t":"exit"}
//	  "room_stats_req" {"t":"room_stats_req"}
//
//	Server -> Client:
//	  "join_ok"     {"t":"join_ok", ...}
//	  "game_start"  {"t":"game_start","tick_id":0,"food":[...],"players":[...]}
//	  "d"           {"t":"d","tick":N,"moves":[...],"food":[...]}
//	  "game_over"   {"t":"game_over","ranks":[...],"winner_id":"..","winner_name":"..","ended_tick":N}
//	  "room_stats"  {"t":"room_stats","rooms":[...]}
//	  "err"         {"t":"err","code":".."}
const (
	MsgJoin         = "join"
	MsgJoinOK       = "join_ok"
	MsgInput        = "in"
	MsgStartRequest = "start_request"
	MsgExit         = "exit"
	MsgRoomStatsReq = "room_stats_req"
	MsgGameStart    = "game_start"
	MsgDelta        = "d"
	MsgGameOver     = "game_over"
	MsgRoomStats    = "room_stats"
	MsgError        = "err"
)

// envelope is used only to sniff the "t" tag before dispatching to a typed
// struct; payload fields are decoded a second time into the concrete type.
type envelope struct {
	Type string `json:"t"`
}

func peekType(raw []byte) (string, error) {
	var e envelope
	if err := json.Unmarshal(raw, &e); err != nil {
		return "", err
	}
	return e.Type, nil
}

// ClientJoinMsg requests to join (or spectate, if the room is RUNNING) a
// room by id.
type ClientJoinMsg struct {
	Type     string `json:"t"`
	Username string `json:"username"`
	RoomID   string `json:"room_id"`
}

// ClientInputMsg sets a player's pending direction for the next tick.
// Dir is a direction name: "up", "down", "left" or "right".
type ClientInputMsg struct {
	Type string `json:"t"`
	Dir  string `json:"d"`
}

// ClientStartRequestMsg is the host's request to force-start a WAITING
// room; it is rejected from any other player.
type ClientStartRequestMsg struct {
	Type string `json:"t"`
}

// ClientExitMsg signals a clean voluntary disconnect.
type ClientExitMsg struct {
	Type string `json:"t"`
}

// ClientRoomStatsReqMsg asks for the current snapshot of every room.
type ClientRoomStatsReqMsg struct {
	Type string `json:"t"`
}

// MapDims describes the fixed grid geometry, echoed to clients on join so
// they don't need to hardcode it.
type MapDims struct {
	W int `json:"w"`
	H int `json:"h"`
}

// PlayerSummary is the {id,name} pair used in room rosters.
type PlayerSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SnakeSnapshot is a full alive snake, sent inside a join_ok snapshot when
// joining a RUNNING room as a spectator.
type SnakeSnapshot struct {
	Body  [][2]int `json:"body"`
	Name  string   `json:"name"`
	Score int      `json:"score"`
	Alive bool     `json:"alive"`
}

// JoinSnapshot carries the current RUNNING-room state so a late joiner (or
// spectator) can render immediately without waiting for the next delta.
type JoinSnapshot struct {
	Snakes map[string]SnakeSnapshot `json:"snakes"`
	Food   [][2]int                 `json:"food"`
}

// ServerJoinOKMsg confirms a successful join.
type ServerJoinOKMsg struct {
	Type     string          `json:"t"`
	RoomID   string          `json:"room_id"`
	Status   string          `json:"status"`
	Map      MapDims         `json:"map"`
	Players  []PlayerSummary `json:"players"`
	YourID   string          `json:"your_id"`
	Snapshot *JoinSnapshot   `json:"snapshot,omitempty"`
}

// SpawnInfo describes one player's starting body at game_start.
type SpawnInfo struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Body  [][2]int `json:"body"`
	IsBot bool     `json:"is_bot"`
}

// ServerGameStartMsg announces a room transitioning to RUNNING.
type ServerGameStartMsg struct {
	Type    string      `json:"t"`
	TickID  int         `json:"tick_id"`
	Food    [][2]int    `json:"food"`
	Players []SpawnInfo `json:"players"`
}

// MoveDelta is one player's outcome for a single tick: either a live move
// (HeadAdd/TailRemove populated), a death, or a revival.
type MoveDelta struct {
	ID         string   `json:"id"`
	HeadAdd    *[2]int  `json:"head_add,omitempty"`
	TailRemove *[2]int  `json:"tail_remove,omitempty"`
	Score      int      `json:"score"`
	Alive      bool     `json:"alive"`
	Dead       bool     `json:"dead,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	Revived    bool     `json:"revived,omitempty"`
	Name       string   `json:"name,omitempty"`
	Body       [][2]int `json:"body,omitempty"`
}

// ServerDeltaMsg is the per-tick broadcast: every move plus the current
// food set.
type ServerDeltaMsg struct {
	Type  string      `json:"t"`
	Tick  int         `json:"tick"`
	Moves []MoveDelta `json:"moves"`
	Food  [][2]int    `json:"food"`
}

// RankEntry is one row of the end-of-round ranking.
type RankEntry struct {
	Rank  int    `json:"rank"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// ServerGameOverMsg announces a room transitioning to FINISHED.
type ServerGameOverMsg struct {
	Type      string      `json:"t"`
	Ranks     []RankEntry `json:"ranks"`
	WinnerID  string      `json:"winner_id"`
	Winner    string      `json:"winner_name"`
	EndedTick int         `json:"ended_tick"`
}

// RoomStatsEntry is one room's summary row.
type RoomStatsEntry struct {
	RoomID           string `json:"room_id"`
	Status           string `json:"status"`
	ConnectedPlayers int    `json:"connected_players"`
	DisplayPlayers   int    `json:"display_players"`
	UsedSlots        int    `json:"used_slots"`
	Capacity         int    `json:"capacity"`
	AvailableSlots   int    `json:"available_slots"`
}

// ServerRoomStatsMsg answers a room_stats_req.
type ServerRoomStatsMsg struct {
	Type  string           `json:"t"`
	Rooms []RoomStatsEntry `json:"rooms"`
}

// ServerErrorMsg reports a protocol-level rejection.
type ServerErrorMsg struct {
	Type string `json:"t"`
	Code string `json:"code"`
}

func newErrorMsg(code string) ServerErrorMsg {
	return ServerErrorMsg{Type: MsgError, Code: code}
}

// Error codes carried in err messages.
const (
	ErrCodeRoomNotFound = "ROOM_NOT_FOUND"
	ErrCodeRoomFull     = "ROOM_FULL"
	ErrCodeNotHost      = "NOT_HOST"
	ErrCodeBadState     = "BAD_STATE"
	ErrCodeRateLimited  = "RATE_LIMITED"
)
