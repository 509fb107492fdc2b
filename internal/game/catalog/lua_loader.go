package catalog

import (
	"fmt"

	lua "github.com/Shopify/go-lua"
)

// LoadLua builds a catalog from a Lua data script. The script returns one
// table:
//
//	return {
//	    items = {
//	        { id = "sword_tier1", name = "Rusty Sword", max_stack = 1 },
//	    },
//	    aliases = {
//	        weapon_tier1 = "sword_tier1",
//	    },
//	}
//
// Content authors extend the alias table when renaming items so old saves
// keep loading; the restore logic never changes.
func LoadLua(path string) (*Catalog, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.DoFile(state, path); err != nil {
		return nil, fmt.Errorf("run catalog script: %w", err)
	}
	if !state.IsTable(-1) {
		return nil, fmt.Errorf("catalog script must return a table")
	}

	defs, err := readItems(state)
	if err != nil {
		return nil, err
	}
	aliases, err := readAliases(state)
	if err != nil {
		return nil, err
	}
	return New(defs, aliases), nil
}

// readItems reads the items array from the table at the top of the stack.
func readItems(state *lua.State) ([]Definition, error) {
	state.Field(-1, "items")
	defer state.Pop(1)
	if !state.IsTable(-1) {
		return nil, fmt.Errorf("catalog script: items table is required")
	}

	var defs []Definition
	state.PushNil()
	for state.Next(-2) {
		if !state.IsTable(-1) {
			state.Pop(1)
			return nil, fmt.Errorf("catalog script: item entries must be tables")
		}

		var d Definition
		state.Field(-1, "id")
		id, ok := state.ToString(-1)
		state.Pop(1)
		if !ok || id == "" {
			state.Pop(1)
			return nil, fmt.Errorf("catalog script: item entry missing id")
		}
		d.ID = id

		state.Field(-1, "name")
		if name, ok := state.ToString(-1); ok {
			d.Name = name
		}
		state.Pop(1)

		state.Field(-1, "max_stack")
		if maxStack, ok := state.ToInteger(-1); ok {
			d.MaxStack = maxStack
		}
		state.Pop(1)

		defs = append(defs, d)
		state.Pop(1)
	}
	return defs, nil
}

// readAliases reads the optional aliases table from the table at the top
// of the stack.
func readAliases(state *lua.State) (map[string]string, error) {
	state.Field(-1, "aliases")
	defer state.Pop(1)
	if state.IsNil(-1) {
		return nil, nil
	}
	if !state.IsTable(-1) {
		return nil, fmt.Errorf("catalog script: aliases must be a table")
	}

	aliases := make(map[string]string)
	state.PushNil()
	for state.Next(-2) {
		// Converting a non-string key in place would corrupt the Next
		// traversal, so reject anything but string keys outright.
		if state.TypeOf(-2) != lua.TypeString || state.TypeOf(-1) != lua.TypeString {
			state.Pop(2)
			return nil, fmt.Errorf("catalog script: alias entries must map string to string")
		}
		legacy, _ := state.ToString(-2)
		current, _ := state.ToString(-1)
		state.Pop(1)
		aliases[legacy] = current
	}
	return aliases, nil
}
