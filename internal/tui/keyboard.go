package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"keydrill/internal/keyboard"
	"keydrill/internal/layout"
)

var (
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	activeKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#C89A3A")).Bold(true)
	fingerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	activeFinger   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// renderKeyboard draws the on-screen keyboard with the expected key
// highlighted. Shifted characters also highlight the shift key on the
// opposite hand. Unmapped means nothing is highlighted.
func renderKeyboard(active keyboard.Key, shifted bool) string {
	shiftKey := keyboard.Unmapped
	if shifted {
		shiftKey = shiftKeyFor(active)
	}
	var lines []string
	for _, row := range keyboard.VisualRows {
		labels := make([]string, 0, len(row))
		for _, key := range row {
			label := keyLabel(key)
			if key == active || (shiftKey != keyboard.Unmapped && key == shiftKey) {
				labels = append(labels, activeKeyStyle.Render(" "+label+" "))
			} else {
				labels = append(labels, keyStyle.Render(" "+label+" "))
			}
		}
		lines = append(lines, strings.Join(labels, " "))
	}
	return strings.Join(lines, "\n")
}

// shiftKeyFor picks the shift key opposite the hand that strikes the key.
func shiftKeyFor(active keyboard.Key) keyboard.Key {
	switch keyboard.FingerMap[active] {
	case keyboard.FingerL1, keyboard.FingerL2, keyboard.FingerL3, keyboard.FingerL4:
		return keyboard.KeyShiftRight
	case keyboard.FingerR1, keyboard.FingerR2, keyboard.FingerR3, keyboard.FingerR4:
		return keyboard.KeyShiftLeft
	}
	return keyboard.Unmapped
}

func keyLabel(key keyboard.Key) string {
	if label, ok := keyboard.DisplayMap[key]; ok {
		return label
	}
	if ch, ok := keyChar(key); ok {
		return strings.ToUpper(string(ch))
	}
	return "?"
}

// keyChar labels letter and symbol keys by their unshifted character on
// the reference layout.
func keyChar(key keyboard.Key) (rune, bool) {
	return layout.Fallback().Resolve(key, layout.Modifiers{})
}

// renderFingerGuide draws the finger strip with the striking finger for
// the expected key highlighted.
func renderFingerGuide(active keyboard.Key) string {
	fingers := []keyboard.Finger{
		keyboard.FingerL1, keyboard.FingerL2, keyboard.FingerL3, keyboard.FingerL4,
		keyboard.FingerThumb,
		keyboard.FingerR1, keyboard.FingerR2, keyboard.FingerR3, keyboard.FingerR4,
	}
	want := keyboard.FingerMap[active]
	labels := make([]string, 0, len(fingers))
	for _, f := range fingers {
		if active != keyboard.Unmapped && f == want {
			labels = append(labels, activeFinger.Render("["+string(f)+"]"))
		} else {
			labels = append(labels, fingerStyle.Render(" "+string(f)+" "))
		}
	}
	return strings.Join(labels, " ")
}
