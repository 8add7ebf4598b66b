package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/scoutlens/scoutlens/internal/db"
)

// ErrNotFound is returned when a stored report does not exist.
var ErrNotFound = errors.New("report not found")

// Record is a persisted report with its identifying metadata.
type Record struct {
	ID          string         `json:"id"`
	PlayerID    string         `json:"player_id"`
	PlayerName  string         `json:"player_name"`
	Club        string         `json:"club"`
	Report      map[string]any `json:"report"`
	GeneratedAt string         `json:"generated_at"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Store persists generated reports in SQLite.
type Store struct {
	db *db.DB
}

func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

// Save stores the report document and returns its assigned id.
func (s *Store) Save(ctx context.Context, rep map[string]any) (string, error) {
	doc, err := json.Marshal(rep)
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	name, club := playerIdentity(rep)
	playerID := ""
	if info, ok := rep["player_info"].(map[string]any); ok {
		playerID, _ = info["id"].(string)
	}
	generatedAt, _ := rep["generated_at"].(string)

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, player_id, player_name, club, document, generated_at, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, playerID, name, club, string(doc), generatedAt, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("inserting report: %w", err)
	}
	return id, nil
}

// Get loads one report by id.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, player_id, player_name, club, document, generated_at, created_at FROM reports WHERE id = ?`, id)
	return scanRecord(row)
}

// Latest loads the most recently created report for a player name.
func (s *Store) Latest(ctx context.Context, playerName string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, player_id, player_name, club, document, generated_at, created_at
		 FROM reports WHERE player_name = ? ORDER BY created_at DESC, id DESC LIMIT 1`, playerName)
	return scanRecord(row)
}

// List returns report metadata, newest first. The documents are loaded
// too; callers that only need headers ignore them.
func (s *Store) List(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player_id, player_name, club, document, generated_at, created_at
		 FROM reports ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes a report by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var rec Record
	var doc string
	err := row.Scan(&rec.ID, &rec.PlayerID, &rec.PlayerName, &rec.Club, &doc, &rec.GeneratedAt, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning report: %w", err)
	}
	if err := json.Unmarshal([]byte(doc), &rec.Report); err != nil {
		return nil, fmt.Errorf("decoding report document: %w", err)
	}
	return &rec, nil
}
