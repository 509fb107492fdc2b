// Package catalog resolves item ids from save data to item definitions.
//
// Saves written by older builds may reference renamed items; resolution
// walks an explicit alias table plus the two legacy naming conventions
// before giving up, so a rename never invalidates a whole save file.
package catalog

import (
	"strings"

	apperrors "github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/platform/errors"
)

// Definition describes one item kind.
type Definition struct {
	ID       string
	Name     string
	MaxStack int
}

// Catalog is an immutable item lookup with legacy-id aliasing.
type Catalog struct {
	defs    map[string]Definition
	aliases map[string]string
}

// New builds a catalog from definitions and an alias table mapping legacy
// ids to current ones.
func New(defs []Definition, aliases map[string]string) *Catalog {
	byID := make(map[string]Definition, len(defs))
	for _, d := range defs {
		if d.MaxStack < 1 {
			d.MaxStack = 1
		}
		byID[d.ID] = d
	}
	copied := make(map[string]string, len(aliases))
	for legacy, current := range aliases {
		copied[legacy] = current
	}
	return &Catalog{defs: byID, aliases: copied}
}

// Resolve returns the definition for an item id, trying in order: the id
// itself, the alias table, first-letter capitalization, and the legacy
// "Item_" PascalCase convention.
func (c *Catalog) Resolve(id string) (Definition, error) {
	if id == "" {
		return Definition{}, apperrors.New(apperrors.CodeItemUnresolved, "empty item id")
	}

	candidates := []string{id}
	if aliased, ok := c.aliases[id]; ok {
		candidates = append(candidates, aliased)
	}
	candidates = append(candidates, capitalizeFirst(id), legacyPascalID(id))

	for _, candidate := range candidates {
		if d, ok := c.defs[candidate]; ok {
			return d, nil
		}
	}
	return Definition{}, apperrors.WithMetadata(apperrors.CodeItemUnresolved,
		"item id has no catalog mapping", map[string]string{"item_id": id})
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// capitalizeFirst maps sword_tier1 to Sword_tier1.
func capitalizeFirst(id string) string {
	if id == "" {
		return id
	}
	return strings.ToUpper(id[:1]) + id[1:]
}

// legacyPascalID maps sword_tier1 to Item_SwordTier1.
func legacyPascalID(id string) string {
	if id == "" {
		return id
	}
	var b strings.Builder
	b.WriteString("Item_")
	for _, part := range strings.Split(id, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
