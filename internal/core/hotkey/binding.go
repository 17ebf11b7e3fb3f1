// Package hotkey parses and normalizes global hotkey bindings. A binding is
// configuration data supplied at startup and immutable from the engine's
// perspective except on an explicit rebind.
package hotkey

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// Modifiers the OS hook layer understands, in canonical display order.
var modifierOrder = []string{"cmd", "ctrl", "alt", "shift"}

// Binding describes a parsed global hotkey: a modifier set plus a single key.
// Construct only via Parse so the normalized form stays consistent.
type Binding struct {
	modifiers []string
	key       string
}

// Parse parses a binding spec such as "ctrl+shift+r" or "cmd+shift+r".
// Modifier aliases: "command"/"super"/"meta" -> cmd, "control" -> ctrl,
// "option" -> alt. Exactly one non-modifier key is required.
func Parse(spec string) (Binding, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(spec)), "+")

	seen := make(map[string]bool)
	var mods []string
	var key string

	for _, raw := range parts {
		part := strings.TrimSpace(raw)
		if part == "" {
			return Binding{}, fmt.Errorf("invalid hotkey %q: empty component", spec)
		}

		if canonical, ok := canonicalModifier(part); ok {
			if !seen[canonical] {
				seen[canonical] = true
				mods = append(mods, canonical)
			}
			continue
		}

		if key != "" {
			return Binding{}, fmt.Errorf("invalid hotkey %q: multiple keys (%s, %s)", spec, key, part)
		}
		key = part
	}

	if key == "" {
		return Binding{}, fmt.Errorf("invalid hotkey %q: no key", spec)
	}
	if len(mods) == 0 {
		return Binding{}, fmt.Errorf("invalid hotkey %q: global hotkeys require at least one modifier", spec)
	}

	sort.Slice(mods, func(i, j int) bool {
		return modifierRank(mods[i]) < modifierRank(mods[j])
	})

	return Binding{modifiers: mods, key: key}, nil
}

// Default returns the platform default binding: Cmd+Shift+R on macOS,
// Ctrl+Shift+R elsewhere.
func Default() Binding {
	if runtime.GOOS == "darwin" {
		b, _ := Parse("cmd+shift+r")
		return b
	}
	b, _ := Parse("ctrl+shift+r")
	return b
}

// Key returns the non-modifier key.
func (b Binding) Key() string {
	return b.key
}

// Modifiers returns the modifier set in canonical order.
func (b Binding) Modifiers() []string {
	mods := make([]string, len(b.modifiers))
	copy(mods, b.modifiers)
	return mods
}

// HookSpec returns the binding in the shape the OS hook layer registers:
// the key followed by its modifiers.
func (b Binding) HookSpec() []string {
	return append([]string{b.key}, b.modifiers...)
}

// String returns the normalized display form, e.g. "ctrl+shift+r".
func (b Binding) String() string {
	if b.key == "" {
		return ""
	}
	return strings.Join(append(b.Modifiers(), b.key), "+")
}

// IsZero reports whether the binding is unset.
func (b Binding) IsZero() bool {
	return b.key == ""
}

// Equal reports whether two bindings normalize to the same combo.
func (b Binding) Equal(other Binding) bool {
	return b.String() == other.String()
}

func canonicalModifier(part string) (string, bool) {
	switch part {
	case "cmd", "command", "super", "meta", "win":
		return "cmd", true
	case "ctrl", "control":
		return "ctrl", true
	case "alt", "option", "opt":
		return "alt", true
	case "shift":
		return "shift", true
	}
	return "", false
}

func modifierRank(mod string) int {
	for i, m := range modifierOrder {
		if m == mod {
			return i
		}
	}
	return len(modifierOrder)
}
