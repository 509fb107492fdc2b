package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/platform/errors"
)

func testCatalog() *Catalog {
	return New([]Definition{
		{ID: "sword_tier1", Name: "Rusty Sword", MaxStack: 1},
		{ID: "bat_bone", Name: "Bat Bone", MaxStack: 99},
		{ID: "Slime_residue", Name: "Slime Residue", MaxStack: 99},
		{ID: "Item_SkullBone", Name: "Skull Bone", MaxStack: 99},
	}, map[string]string{
		"weapon_tier1": "sword_tier1",
	})
}

func TestResolve_ExactMatch(t *testing.T) {
	c := testCatalog()
	d, err := c.Resolve("bat_bone")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.Name != "Bat Bone" {
		t.Fatalf("name = %q, want %q", d.Name, "Bat Bone")
	}
}

func TestResolve_AliasTable(t *testing.T) {
	c := testCatalog()
	d, err := c.Resolve("weapon_tier1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.ID != "sword_tier1" {
		t.Fatalf("id = %q, want %q", d.ID, "sword_tier1")
	}
}

func TestResolve_CapitalizedFallback(t *testing.T) {
	c := testCatalog()
	d, err := c.Resolve("slime_residue")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.ID != "Slime_residue" {
		t.Fatalf("id = %q, want %q", d.ID, "Slime_residue")
	}
}

func TestResolve_LegacyPascalFallback(t *testing.T) {
	c := testCatalog()
	d, err := c.Resolve("skull_bone")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.ID != "Item_SkullBone" {
		t.Fatalf("id = %q, want %q", d.ID, "Item_SkullBone")
	}
}

func TestResolve_UnknownID(t *testing.T) {
	c := testCatalog()
	_, err := c.Resolve("no_such_item")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, apperrors.New(apperrors.CodeItemUnresolved, "")) {
		t.Fatalf("error code = %v, want %s", err, apperrors.CodeItemUnresolved)
	}
}

func TestLoadLua(t *testing.T) {
	script := `
return {
    items = {
        { id = "sword_tier1", name = "Rusty Sword", max_stack = 1 },
        { id = "bat_bone", name = "Bat Bone", max_stack = 99 },
    },
    aliases = {
        weapon_tier1 = "sword_tier1",
    },
}
`
	path := filepath.Join(t.TempDir(), "items.lua")
	if err := os.WriteFile(path, []byte(script), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}

	c, err := LoadLua(path)
	if err != nil {
		t.Fatalf("load lua catalog: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("definitions = %d, want 2", c.Len())
	}
	d, err := c.Resolve("weapon_tier1")
	if err != nil {
		t.Fatalf("resolve aliased id: %v", err)
	}
	if d.Name != "Rusty Sword" {
		t.Fatalf("name = %q, want %q", d.Name, "Rusty Sword")
	}
}

func TestLoadLua_MissingItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.lua")
	if err := os.WriteFile(path, []byte("return {}"), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}
	if _, err := LoadLua(path); err == nil {
		t.Fatal("expected error for script without items table")
	}
}
