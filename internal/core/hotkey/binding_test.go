package hotkey

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		spec     string
		expected string
		wantErr  bool
	}{
		{name: "simple", spec: "ctrl+shift+r", expected: "ctrl+shift+r"},
		{name: "reordered_modifiers", spec: "shift+ctrl+r", expected: "ctrl+shift+r"},
		{name: "uppercase", spec: "CTRL+Shift+R", expected: "ctrl+shift+r"},
		{name: "command_alias", spec: "command+shift+r", expected: "cmd+shift+r"},
		{name: "meta_alias", spec: "meta+shift+space", expected: "cmd+shift+space"},
		{name: "option_alias", spec: "option+p", expected: "alt+p"},
		{name: "duplicate_modifier", spec: "ctrl+ctrl+r", expected: "ctrl+r"},
		{name: "surrounding_space", spec: " ctrl+shift+r ", expected: "ctrl+shift+r"},
		{name: "no_key", spec: "ctrl+shift", wantErr: true},
		{name: "no_modifier", spec: "r", wantErr: true},
		{name: "two_keys", spec: "ctrl+r+s", wantErr: true},
		{name: "empty", spec: "", wantErr: true},
		{name: "empty_component", spec: "ctrl++r", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Parse(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, b.String())
		})
	}
}

func TestBindingHookSpec(t *testing.T) {
	b, err := Parse("shift+ctrl+r")
	require.NoError(t, err)

	// Key first, then modifiers, matching the hook registration shape.
	assert.Equal(t, []string{"r", "ctrl", "shift"}, b.HookSpec())
}

func TestDefault(t *testing.T) {
	b := Default()
	require.False(t, b.IsZero())
	assert.Equal(t, "r", b.Key())

	if runtime.GOOS == "darwin" {
		assert.Equal(t, "cmd+shift+r", b.String())
	} else {
		assert.Equal(t, "ctrl+shift+r", b.String())
	}
}

func TestBindingEqual(t *testing.T) {
	a, err := Parse("ctrl+shift+r")
	require.NoError(t, err)
	b, err := Parse("shift+control+r")
	require.NoError(t, err)
	c, err := Parse("ctrl+shift+s")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestBindingZero(t *testing.T) {
	var b Binding
	assert.True(t, b.IsZero())
	assert.Equal(t, "", b.String())
}
