// Package tuitest provides testing utilities for TUI components.
package tuitest

import (
	"strings"
	"unicode"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes and trailing whitespace for cleaner golden files.
// This makes golden files human-readable and less fragile to style changes.
func StripANSI(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	var result []string
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " ")
		result = append(result, trimmed)
	}
	return strings.TrimRight(strings.Join(result, "\n"), "\n")
}

// KeyPress creates a key press message for a single rune. Printable runes
// carry their text so text inputs insert them.
func KeyPress(key rune) tea.Msg {
	k := tea.Key{Code: key}
	if unicode.IsPrint(key) && key != ' ' {
		k.Text = string(key)
	}
	if unicode.IsUpper(key) {
		k.Code = unicode.ToLower(key)
		k.ShiftedCode = key
		k.Mod = tea.ModShift
	}
	return tea.KeyPressMsg(k)
}

// Type returns one key press per rune of s, as if typed.
func Type(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		if r == ' ' {
			msgs = append(msgs, KeySpace())
			continue
		}
		msgs = append(msgs, KeyPress(r))
	}
	return msgs
}

// KeyDown creates a down arrow key press message.
func KeyDown() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyDown})
}

// KeyUp creates an up arrow key press message.
func KeyUp() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyUp})
}

// KeyEnter creates an enter key press message.
func KeyEnter() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter})
}

// KeyTab creates a tab key press message.
func KeyTab() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyTab})
}

// KeyEsc creates an escape key press message.
func KeyEsc() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})
}

// KeySpace creates a space key press message.
func KeySpace() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeySpace, Text: " "})
}

// KeyDelete creates a delete key press message.
func KeyDelete() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyDelete})
}

// KeyCtrlC creates a ctrl+c key press message.
func KeyCtrlC() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: 'c', Mod: tea.ModCtrl})
}

// WindowSize creates a window size message.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}
