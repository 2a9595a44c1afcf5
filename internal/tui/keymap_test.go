package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap_QuitKeys(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()

	for _, k := range []string{"q", "esc"} {
		msg := tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(k)})
		if k == "esc" {
			msg = tea.KeyMsg(tea.Key{Type: tea.KeyEsc})
		}
		if !key.Matches(msg, km.Quit) {
			t.Errorf("key %q does not match Quit binding", k)
		}
	}

	ctrlC := tea.KeyMsg(tea.Key{Type: tea.KeyCtrlC})
	if !key.Matches(ctrlC, km.Quit) {
		t.Error("ctrl+c does not match Quit binding")
	}
}

func TestDefaultKeyMap_Restart(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()

	r := tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune("r")})
	if !key.Matches(r, km.Restart) {
		t.Error("'r' does not match Restart binding")
	}
	if key.Matches(r, km.Quit) {
		t.Error("'r' must not match Quit binding")
	}
}

func TestKeyMap_Help(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()

	if got := len(km.ShortHelp()); got != 2 {
		t.Errorf("ShortHelp() returned %d bindings, want 2", got)
	}
	full := km.FullHelp()
	if len(full) != 1 || len(full[0]) != 2 {
		t.Errorf("FullHelp() layout = %v, want one column of two bindings", full)
	}
}
