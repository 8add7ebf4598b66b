package players

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testCSV = `player_id,name,first_name,last_name,position,current_club_name,country_of_citizenship,date_of_birth,height_in_cm,market_value_in_eur
10,Jude Bellingham,Jude,Bellingham,Midfield,Real Madrid,England,2003-06-29,186,180000000
11,Jamal Musiala,Jamal,Musiala,Midfield,Bayern Munich,Germany,2003-02-26,184,140000000
12,Lamine Yamal,Lamine,Yamal,Attack,FC Barcelona,Spain,2007-07-13,180,
`

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "players.csv"), []byte(testCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	docsDir := filepath.Join(dir, "players")
	if err := os.MkdirAll(docsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	doc := `{"player_info": {"id": "10", "name": "Jude Bellingham"}, "scores": {"growth": 0.91}}`
	if err := os.WriteFile(filepath.Join(docsDir, "10.json"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return c
}

func TestCatalogLoad(t *testing.T) {
	c := newTestCatalog(t)
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}

	p, err := c.Get(10)
	if err != nil {
		t.Fatalf("Get(10) error: %v", err)
	}
	if p.Name != "Jude Bellingham" || p.Club != "Real Madrid" {
		t.Errorf("player = %+v", p)
	}
	if p.MarketValueEUR == nil || *p.MarketValueEUR != 180000000 {
		t.Errorf("MarketValueEUR = %v", p.MarketValueEUR)
	}

	// Missing numeric cells stay nil rather than zero.
	p, err = c.Get(12)
	if err != nil {
		t.Fatalf("Get(12) error: %v", err)
	}
	if p.MarketValueEUR != nil {
		t.Errorf("empty market value should be nil, got %v", *p.MarketValueEUR)
	}

	if _, err := c.Get(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(99) error = %v, want ErrNotFound", err)
	}
}

func TestCatalogSearch(t *testing.T) {
	c := newTestCatalog(t)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"full name", "Jude Bellingham", 1},
		{"partial lowercase", "musia", 1},
		{"last name", "Yamal", 1},
		{"by id", "11", 1},
		{"shared position term", "ja", 1},
		{"no match", "Haaland", 0},
		{"unknown id", "999", 0},
		{"empty", "  ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Search(tt.query, 10)
			if len(got) != tt.want {
				t.Errorf("Search(%q) returned %d players, want %d", tt.query, len(got), tt.want)
			}
		})
	}
}

func TestCatalogSearchLimit(t *testing.T) {
	c := newTestCatalog(t)
	// "a" matches all three names.
	if got := c.Search("a", 2); len(got) != 2 {
		t.Errorf("Search with limit 2 returned %d players", len(got))
	}
}

func TestCatalogDocument(t *testing.T) {
	c := newTestCatalog(t)

	doc, err := c.Document(10)
	if err != nil {
		t.Fatalf("Document(10) error: %v", err)
	}
	scores, _ := doc["scores"].(map[string]any)
	if scores["growth"] != 0.91 {
		t.Errorf("document not decoded: %v", doc)
	}
	if !c.HasDocument(10) {
		t.Error("HasDocument(10) = false")
	}

	if _, err := c.Document(11); !errors.Is(err, ErrNoDocument) {
		t.Errorf("Document(11) error = %v, want ErrNoDocument", err)
	}
	if c.HasDocument(11) {
		t.Error("HasDocument(11) = true")
	}
	if _, err := c.Document(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Document(99) error = %v, want ErrNotFound", err)
	}
}
