// Package attribute holds the built-in attribute modules that contribute
// descriptors to the registry.
package attribute

import (
	"fmt"
	"strings"

	"profile-registry/internal/registry"
)

// Builtin returns every built-in module in registration order.
func Builtin() []registry.Contributor {
	return []registry.Contributor{Xmit{}, Sound{}}
}

// Names lists the built-in module names.
func Names() []string {
	mods := Builtin()
	out := make([]string, 0, len(mods))
	for _, m := range mods {
		out = append(out, m.Name())
	}
	return out
}

// Select returns the built-in modules named in names, keeping the order of
// names. An empty list selects all of them.
func Select(names []string) ([]registry.Contributor, error) {
	if len(names) == 0 {
		return Builtin(), nil
	}
	byName := make(map[string]registry.Contributor)
	for _, m := range Builtin() {
		byName[m.Name()] = m
	}
	out := make([]registry.Contributor, 0, len(names))
	seen := make(map[string]bool)
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		m, ok := byName[key]
		if !ok {
			return nil, fmt.Errorf("unknown attribute module %q (known: %s)", n, strings.Join(Names(), ", "))
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out, nil
}
