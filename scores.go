package main

import (
	"database/sql"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const (
	scoreFlushInterval = 2 * time.Second
	scoreFlushBatch    = 32
	scoreBufferSize    = 256
)

// ScoreEntry is one leaderboard row
type ScoreEntry struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"id"`
	Score    int    `json:"score"`
}

// SQLScoreStore persists the highest known score per player id in
// SQLite. Writes go through a buffered channel and a background batch
// writer so the tick loop never touches the database.
type SQLScoreStore struct {
	conn    *sql.DB
	updates chan scoreUpdate
	stop    chan struct{}
	wg      sync.WaitGroup
}

type scoreUpdate struct {
	PlayerID string
	Score    int
}

// OpenScoreStore opens (or creates) the score database
func OpenScoreStore(path string) (*SQLScoreStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL keeps the background writer from stalling readers
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS scores (
		player_id TEXT PRIMARY KEY,
		score INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_scores_score ON scores(score);
	`
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, err
	}

	s := &SQLScoreStore{
		conn:    conn,
		updates: make(chan scoreUpdate, scoreBufferSize),
		stop:    make(chan struct{}),
	}
	s.wg.Add(1)
	go s.writer()
	return s, nil
}

// Save enqueues a score upsert without blocking. If the buffer is full
// the update is dropped; the next score change retries naturally.
func (s *SQLScoreStore) Save(playerID string, score int) {
	select {
	case s.updates <- scoreUpdate{PlayerID: playerID, Score: score}:
	default:
	}
}

// Leaderboard returns the top scores in descending order
func (s *SQLScoreStore) Leaderboard(limit int) ([]ScoreEntry, error) {
	rows, err := s.conn.Query(
		"SELECT player_id, score FROM scores ORDER BY score DESC, player_id LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ScoreEntry
	rank := 1
	for rows.Next() {
		var e ScoreEntry
		if err := rows.Scan(&e.PlayerID, &e.Score); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		result = append(result, e)
	}
	return result, rows.Err()
}

// Get returns the stored score for a player id
func (s *SQLScoreStore) Get(playerID string) (int, bool, error) {
	var score int
	err := s.conn.QueryRow("SELECT score FROM scores WHERE player_id = ?", playerID).Scan(&score)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	return score, err == nil, err
}

// Close flushes pending updates and closes the database
func (s *SQLScoreStore) Close() error {
	close(s.stop)
	s.wg.Wait()
	return s.conn.Close()
}

// writer batches score updates off the hot path
func (s *SQLScoreStore) writer() {
	defer s.wg.Done()

	batch := make([]scoreUpdate, 0, scoreFlushBatch)
	ticker := time.NewTicker(scoreFlushInterval)
	defer ticker.Stop()

	for {
		select {
		case u := <-s.updates:
			batch = append(batch, u)
			if len(batch) >= scoreFlushBatch {
				s.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flush(batch)
				batch = batch[:0]
			}
		case <-s.stop:
			for {
				select {
				case u := <-s.updates:
					batch = append(batch, u)
					continue
				default:
				}
				break
			}
			if len(batch) > 0 {
				s.flush(batch)
			}
			return
		}
	}
}

// flush upserts a batch, keeping the highest score per id. Errors are
// logged and never surfaced to gameplay.
func (s *SQLScoreStore) flush(batch []scoreUpdate) {
	tx, err := s.conn.Begin()
	if err != nil {
		log.Printf("scores: begin tx error: %v", err)
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO scores (player_id, score, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(player_id) DO UPDATE SET
			score = MAX(score, excluded.score),
			updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		log.Printf("scores: prepare error: %v", err)
		return
	}
	defer stmt.Close()

	for _, u := range batch {
		if _, err := stmt.Exec(u.PlayerID, u.Score); err != nil {
			log.Printf("scores: upsert error: %v", err)
		}
	}
	tx.Commit()
}
