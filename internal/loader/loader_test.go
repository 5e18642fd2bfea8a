package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/napolitain/clicker-sim/internal/formulas"
	"github.com/napolitain/clicker-sim/internal/models"
)

const sampleDoc = `{
  "buildings": [
    {"id": "cursor", "name": "Cursor", "base_price": 15, "base_cps": 0.1},
    {"id": "grandma", "name": "Grandma", "base_price": 100, "base_cps": 1, "price_growth": 1.2}
  ],
  "upgrades": [
    {
      "id": "forwards_from_grandma",
      "name": "Forwards from grandma",
      "price": 1000,
      "effect": "building_multiplier",
      "magnitude": 1.0,
      "target": "grandma",
      "unlock": {"building": "grandma", "building_count": 1}
    },
    {
      "id": "arcane_sugar",
      "name": "Arcane sugar",
      "price": 1e9,
      "effect": "production_multiplier",
      "magnitude": 0.05,
      "unlock": {"earned_total": 3e8}
    }
  ]
}`

func TestParseDefinitions(t *testing.T) {
	defs, err := ParseDefinitions([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("ParseDefinitions failed: %v", err)
	}

	if len(defs.Buildings) != 2 || len(defs.Upgrades) != 2 {
		t.Fatalf("got %d buildings, %d upgrades; want 2, 2",
			len(defs.Buildings), len(defs.Upgrades))
	}

	cursor, _ := defs.Building(models.Cursor)
	if cursor.PriceGrowth != formulas.PriceGrowthFactor {
		t.Errorf("omitted price_growth = %v, want default %v",
			cursor.PriceGrowth, formulas.PriceGrowthFactor)
	}
	grandma, _ := defs.Building(models.Grandma)
	if grandma.PriceGrowth != 1.2 {
		t.Errorf("explicit price_growth = %v, want 1.2", grandma.PriceGrowth)
	}

	u, ok := defs.Upgrade("forwards_from_grandma")
	if !ok || u.Kind != models.BuildingMultiplier || u.Target != models.Grandma {
		t.Errorf("upgrade decoded wrong: %+v", u)
	}
	if u.Unlock.Building != models.Grandma || u.Unlock.BuildingCount != 1 {
		t.Errorf("unlock decoded wrong: %+v", u.Unlock)
	}
}

func TestParseDefinitionsRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"invalid json", `{`},
		{"no buildings", `{"buildings": [], "upgrades": []}`},
		{"unknown effect", `{
			"buildings": [{"id": "cursor", "base_price": 15, "base_cps": 0.1}],
			"upgrades": [{"id": "x", "price": 10, "effect": "warp_drive"}]
		}`},
		{"zero price", `{
			"buildings": [{"id": "cursor", "base_price": 0, "base_cps": 0.1}]
		}`},
		{"bad target", `{
			"buildings": [{"id": "cursor", "base_price": 15, "base_cps": 0.1}],
			"upgrades": [{"id": "x", "price": 10, "effect": "building_multiplier", "target": "portal"}]
		}`},
	}

	for _, c := range cases {
		if _, err := ParseDefinitions([]byte(c.doc)); err == nil {
			t.Errorf("%s: parsed without error", c.name)
		}
	}
}

func TestLoadDefinitionsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defs.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	defs, err := LoadDefinitions(path)
	if err != nil {
		t.Fatalf("LoadDefinitions failed: %v", err)
	}
	if len(defs.Buildings) != 2 {
		t.Errorf("got %d buildings, want 2", len(defs.Buildings))
	}

	if _, err := LoadDefinitions(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file loaded without error")
	}
}

func TestDefaultDefinitions(t *testing.T) {
	defs := DefaultDefinitions()

	if len(defs.Buildings) != 16 {
		t.Fatalf("built-in table has %d buildings, want 16", len(defs.Buildings))
	}
	if len(defs.Upgrades) == 0 {
		t.Fatal("built-in table has no upgrades")
	}

	// Index order matches the classic progression.
	if defs.Buildings[0].ID != models.Cursor || defs.Buildings[15].ID != models.FractalEngine {
		t.Errorf("table order wrong: first %s, last %s",
			defs.Buildings[0].ID, defs.Buildings[15].ID)
	}

	for i := 1; i < len(defs.Buildings); i++ {
		if defs.Buildings[i].BasePrice <= defs.Buildings[i-1].BasePrice {
			t.Errorf("prices not increasing at index %d", i)
		}
	}

	// Each call hands out an independent table.
	other := DefaultDefinitions()
	other.Buildings[0].BasePrice = 1
	if defs.Buildings[0].BasePrice == 1 {
		t.Error("DefaultDefinitions shares backing arrays between calls")
	}
}

func TestGeneratedBuilding(t *testing.T) {
	b := GeneratedBuilding(20)
	if b.BasePrice != formulas.GeneratedBasePrice(20) || b.BaseCPS != formulas.GeneratedBaseCPS(20) {
		t.Errorf("generated building stats diverge from the curves: %+v", b)
	}
	if b.PriceGrowth != formulas.PriceGrowthFactor {
		t.Errorf("generated growth = %v, want %v", b.PriceGrowth, formulas.PriceGrowthFactor)
	}
}
