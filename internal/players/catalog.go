// Package players serves the player catalog: a CSV of basic player facts
// plus one pre-built JSON document per player with the full model data.
package players

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNotFound is returned for unknown player ids.
var ErrNotFound = errors.New("player not found")

// ErrNoDocument is returned when a player exists in the catalog but has
// no model data document.
var ErrNoDocument = errors.New("player has no model data document")

// Player is one row of the catalog CSV.
type Player struct {
	ID                    int      `json:"player_id"`
	Name                  string   `json:"name"`
	FirstName             string   `json:"first_name"`
	LastName              string   `json:"last_name"`
	Position              string   `json:"position"`
	SubPosition           string   `json:"sub_position,omitempty"`
	Club                  string   `json:"current_club_name"`
	Nationality           string   `json:"nationality"`
	DateOfBirth           string   `json:"date_of_birth"`
	HeightCM              *float64 `json:"height_in_cm,omitempty"`
	Foot                  string   `json:"foot,omitempty"`
	MarketValueEUR        *float64 `json:"market_value_in_eur"`
	HighestMarketValueEUR *float64 `json:"highest_market_value_in_eur,omitempty"`
	ImageURL              string   `json:"image_url,omitempty"`
}

// Catalog is the in-memory player index. It is loaded once at startup and
// read-only afterwards.
type Catalog struct {
	players []Player
	byID    map[int]int
	docsDir string
}

// Load reads players.csv from dataDir and indexes it. Player documents
// are expected under dataDir/players/<id>.json.
func Load(dataDir string) (*Catalog, error) {
	f, err := os.Open(filepath.Join(dataDir, "players.csv"))
	if err != nil {
		return nil, fmt.Errorf("opening players csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading players csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	if _, ok := col["player_id"]; !ok {
		return nil, fmt.Errorf("players csv has no player_id column")
	}

	c := &Catalog{byID: make(map[int]int), docsDir: filepath.Join(dataDir, "players")}
	for {
		record, err := r.Read()
		if err != nil {
			break
		}
		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		id, err := strconv.Atoi(field("player_id"))
		if err != nil {
			continue
		}
		p := Player{
			ID:                    id,
			Name:                  field("name"),
			FirstName:             field("first_name"),
			LastName:              field("last_name"),
			Position:              field("position"),
			SubPosition:           field("sub_position"),
			Club:                  field("current_club_name"),
			Nationality:           field("country_of_citizenship"),
			DateOfBirth:           field("date_of_birth"),
			Foot:                  field("foot"),
			ImageURL:              field("image_url"),
			HeightCM:              parseFloat(field("height_in_cm")),
			MarketValueEUR:        parseFloat(field("market_value_in_eur")),
			HighestMarketValueEUR: parseFloat(field("highest_market_value_in_eur")),
		}
		c.byID[id] = len(c.players)
		c.players = append(c.players, p)
	}

	return c, nil
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Len returns the number of players in the catalog.
func (c *Catalog) Len() int {
	return len(c.players)
}

// Get returns the catalog row for a player id.
func (c *Catalog) Get(id int) (Player, error) {
	i, ok := c.byID[id]
	if !ok {
		return Player{}, ErrNotFound
	}
	return c.players[i], nil
}

// Search matches players by id or by case-insensitive substring against
// the full, first and last names. Results are capped at limit.
func (c *Catalog) Search(query string, limit int) []Player {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	if id, err := strconv.Atoi(query); err == nil {
		if p, err := c.Get(id); err == nil {
			return []Player{p}
		}
		return nil
	}

	q := strings.ToLower(query)
	var out []Player
	for _, p := range c.players {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.FirstName), q) ||
			strings.Contains(strings.ToLower(p.LastName), q) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Document loads the full model data document for a player.
func (c *Catalog) Document(id int) (map[string]any, error) {
	if _, ok := c.byID[id]; !ok {
		return nil, ErrNotFound
	}

	path := filepath.Join(c.docsDir, strconv.Itoa(id)+".json")
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("reading player document: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding player document: %w", err)
	}
	return doc, nil
}

// HasDocument reports whether a player has a model data document.
func (c *Catalog) HasDocument(id int) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	_, err := os.Stat(filepath.Join(c.docsDir, strconv.Itoa(id)+".json"))
	return err == nil
}
