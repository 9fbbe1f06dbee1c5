package main

import (
	"math"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshotPlayer builds the compact wire view of one tank
func snapshotPlayer(p *Player) SnapshotPlayer {
	return SnapshotPlayer{
		ID:     p.ID,
		X:      int(math.Round(p.X)),
		Y:      int(math.Round(p.Y)),
		R:      int(math.Round(p.Rotation * 100)),
		Health: p.HealthInt(),
		Score:  p.Score,
		Seq:    p.LastSeq,
		Forced: p.ForceCorrect,
	}
}

// snapshotBullet builds the compact wire view of one bullet
func snapshotBullet(b *Bullet) SnapshotBullet {
	return SnapshotBullet{
		ID: b.ID,
		X:  int(math.Round(b.X)),
		Y:  int(math.Round(b.Y)),
	}
}

// EncodeSnapshot marshals a snapshot for binary broadcast
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	return msgpack.Marshal(s)
}

// DecodeSnapshot unmarshals a binary snapshot frame
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	err := msgpack.Unmarshal(data, &s)
	return s, err
}
