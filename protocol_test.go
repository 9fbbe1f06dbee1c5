package main

import "testing"

func TestBinaryInputRoundtrip(t *testing.T) {
	in := ClientInput{Seq: 70000, Up: true, Right: true, Shoot: true}

	frame := EncodeBinaryInput(in)
	if len(frame) != 6 {
		t.Fatalf("expected 6-byte frame, got %d", len(frame))
	}

	got, ok := DecodeBinaryInput(frame)
	if !ok {
		t.Fatal("frame should decode")
	}
	if got != in {
		t.Errorf("roundtrip mismatch: %+v vs %+v", got, in)
	}
}

func TestBinaryInputRejectsMalformed(t *testing.T) {
	if _, ok := DecodeBinaryInput([]byte{0x01, 0x00}); ok {
		t.Error("short frame should be rejected")
	}
	if _, ok := DecodeBinaryInput([]byte{0x02, 0, 0, 0, 0, 1}); ok {
		t.Error("unknown frame marker should be rejected")
	}
	if _, ok := DecodeBinaryInput(nil); ok {
		t.Error("empty frame should be rejected")
	}
}

func TestSnapshotEncodeDecode(t *testing.T) {
	snap := Snapshot{
		Tick: 99,
		Players: []SnapshotPlayer{
			{ID: "p1", X: 100, Y: 200, R: 314, Health: 80, Score: 20, Seq: 7, Forced: true},
		},
		Bullets: []SnapshotBullet{{ID: "p1-1", X: 100, Y: 150}},
	}

	data, err := EncodeSnapshot(snap)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Tick != 99 || len(got.Players) != 1 || len(got.Bullets) != 1 {
		t.Fatalf("shape mismatch: %+v", got)
	}
	if got.Players[0] != snap.Players[0] {
		t.Errorf("player mismatch: %+v vs %+v", got.Players[0], snap.Players[0])
	}
	if got.Bullets[0] != snap.Bullets[0] {
		t.Errorf("bullet mismatch: %+v vs %+v", got.Bullets[0], snap.Bullets[0])
	}
}
