package main

import "encoding/json"

// Client -> Server message types
const (
	MsgJoin   = "join"
	MsgLeave  = "leave"
	MsgInput  = "input"
	MsgCreate = "create" // create arena
	MsgList   = "list"   // list arenas
	MsgCheck  = "check"  // check if arena exists
)

// Server -> Client message types
const (
	MsgWelcome      = "welcome"
	MsgMapObjects   = "map-objects"
	MsgSnapshot     = "snapshot" // binary, msgpack-encoded
	MsgPlayerJoin   = "player-join"
	MsgPlayerLeave  = "player-leave"
	MsgMapUpdate    = "map-update"
	MsgHealthUpdate = "health-update"
	MsgScoreUpdate  = "score-update"
	MsgKill         = "kill"
	MsgSessions     = "sessions"
	MsgJoined       = "joined"
	MsgCreated      = "created"
	MsgChecked      = "checked"
	MsgError        = "error"
)

// Envelope wraps all outgoing JSON messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages — json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// ClientInput is one sequenced input sample, sent at a throttled client
// rate independent of the server tick rate
type ClientInput struct {
	Seq   uint32 `json:"seq"`
	Up    bool   `json:"up"`
	Down  bool   `json:"down"`
	Left  bool   `json:"left"`
	Right bool   `json:"right"`
	Shoot bool   `json:"shoot"`
}

// Command converts the wire input to a simulation command
func (in ClientInput) Command() Command {
	return Command{
		Seq:   in.Seq,
		Up:    in.Up,
		Down:  in.Down,
		Left:  in.Left,
		Right: in.Right,
		Shoot: in.Shoot,
	}
}

// Binary input frame flag bits
const (
	inputFlagUp    = 0x01
	inputFlagDown  = 0x02
	inputFlagLeft  = 0x04
	inputFlagRight = 0x08
	inputFlagShoot = 0x10
)

// DecodeBinaryInput decodes a compact 6-byte input frame:
// [0x01, flags, seq_be32]. Returns false for malformed frames.
func DecodeBinaryInput(msg []byte) (ClientInput, bool) {
	if len(msg) != 6 || msg[0] != 0x01 {
		return ClientInput{}, false
	}
	flags := msg[1]
	seq := uint32(msg[2])<<24 | uint32(msg[3])<<16 | uint32(msg[4])<<8 | uint32(msg[5])
	return ClientInput{
		Seq:   seq,
		Up:    flags&inputFlagUp != 0,
		Down:  flags&inputFlagDown != 0,
		Left:  flags&inputFlagLeft != 0,
		Right: flags&inputFlagRight != 0,
		Shoot: flags&inputFlagShoot != 0,
	}, true
}

// EncodeBinaryInput builds the compact frame for ClientInput
func EncodeBinaryInput(in ClientInput) []byte {
	var flags byte
	if in.Up {
		flags |= inputFlagUp
	}
	if in.Down {
		flags |= inputFlagDown
	}
	if in.Left {
		flags |= inputFlagLeft
	}
	if in.Right {
		flags |= inputFlagRight
	}
	if in.Shoot {
		flags |= inputFlagShoot
	}
	return []byte{0x01, flags, byte(in.Seq >> 24), byte(in.Seq >> 16), byte(in.Seq >> 8), byte(in.Seq)}
}

// JoinMsg asks to join an arena
type JoinMsg struct {
	SessionID string `json:"sid"`
}

// CreateMsg asks to create a new arena
type CreateMsg struct {
	SessionName string `json:"sname"`
}

// CheckMsg asks whether an arena exists
type CheckMsg struct {
	SID string `json:"sid"`
}

// CheckedMsg is the response to an arena check
type CheckedMsg struct {
	SID     string `json:"sid"`
	Exists  bool   `json:"exists"`
	Name    string `json:"name,omitempty"`
	Players int    `json:"players,omitempty"`
}

// WelcomeMsg is sent to a player after joining, before the first snapshot
type WelcomeMsg struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"r"`
	Color    string  `json:"color"`
}

// PlayerJoinMsg is broadcast when a tank enters the arena
type PlayerJoinMsg struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"r"`
	Color    string  `json:"color"`
	Health   int     `json:"hp"`
	Score    int     `json:"sc"`
}

// PlayerLeaveMsg is broadcast when a tank is removed
type PlayerLeaveMsg struct {
	ID string `json:"id"`
}

// MapUpdateMsg is emitted exactly once per destructible wall, first hit only
type MapUpdateMsg struct {
	ObjectID  string `json:"oid"`
	Destroyed bool   `json:"destroyed"`
}

// HealthUpdateMsg is emitted when a player's rounded health changes
type HealthUpdateMsg struct {
	ID     string `json:"id"`
	Health int    `json:"hp"`
}

// ScoreUpdateMsg is emitted when a player's score changes
type ScoreUpdateMsg struct {
	ID    string `json:"id"`
	Score int    `json:"sc"`
}

// KillMsg is broadcast on a kill
type KillMsg struct {
	KillerID string `json:"kid"`
	VictimID string `json:"vid"`
}

// SessionInfo is used in the arena list
type SessionInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Players int    `json:"players"`
}

// ErrorMsg sends an error to the client
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// SnapshotPlayer is the per-tick compact view of one tank. Positions are
// rounded; rotation is scaled by 100 to keep the payload integral.
type SnapshotPlayer struct {
	ID     string `json:"id" msgpack:"id"`
	X      int    `json:"x" msgpack:"x"`
	Y      int    `json:"y" msgpack:"y"`
	R      int    `json:"r" msgpack:"r"` // round(rotation * 100)
	Health int    `json:"hp" msgpack:"hp"`
	Score  int    `json:"sc" msgpack:"sc"`
	Seq    uint32 `json:"seq" msgpack:"seq"` // last confirmed input sequence
	Forced bool   `json:"f,omitempty" msgpack:"f"`
}

// SnapshotBullet is the per-tick compact view of one bullet
type SnapshotBullet struct {
	ID string `json:"id" msgpack:"id"`
	X  int    `json:"x" msgpack:"x"`
	Y  int    `json:"y" msgpack:"y"`
}

// Snapshot is the full per-tick broadcast
type Snapshot struct {
	Tick    uint64           `json:"tick" msgpack:"tick"`
	Players []SnapshotPlayer `json:"p" msgpack:"p"`
	Bullets []SnapshotBullet `json:"b" msgpack:"b"`
}
