package tui

import (
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/tick/internal/core/styles"
)

// Modal is a yes/no confirmation dialog.
type Modal struct {
	title           string
	message         string
	visible         bool
	confirmSelected bool
}

// NewModal creates a visible modal with the confirm button selected.
func NewModal(title, message string) Modal {
	return Modal{
		title:           title,
		message:         message,
		visible:         true,
		confirmSelected: true,
	}
}

// ToggleSelection switches the selected button.
func (m *Modal) ToggleSelection() {
	m.confirmSelected = !m.confirmSelected
}

// ConfirmSelected returns true if the confirm button is selected.
func (m Modal) ConfirmSelected() bool {
	return m.confirmSelected
}

// Visible returns whether the modal should be displayed.
func (m Modal) Visible() bool {
	return m.visible
}

// View renders the dialog box alone.
func (m Modal) View() string {
	var confirmBtn, cancelBtn string
	if m.confirmSelected {
		confirmBtn = styles.ModalButtonSelectedStyle.Render("Confirm")
		cancelBtn = styles.ModalButtonStyle.Render("Cancel")
	} else {
		confirmBtn = styles.ModalButtonStyle.Render("Confirm")
		cancelBtn = styles.ModalButtonSelectedStyle.Render("Cancel")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, confirmBtn, "  ", cancelBtn)
	buttonRow := lipgloss.NewStyle().MarginTop(1).Render(buttons)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		"",
		m.message,
		buttonRow,
		styles.ModalHelpStyle.Render("←/→ select  enter confirm  esc cancel"),
	)

	return styles.ModalStyle.Render(content)
}

// Overlay renders the modal centered over the background.
func (m Modal) Overlay(background string, width, height int) string {
	if !m.visible {
		return background
	}

	modal := m.View()

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)

	centerX := max((width-lipgloss.Width(modal))/2, 0)
	centerY := max((height-lipgloss.Height(modal))/2, 0)
	modalLayer.X(centerX).Y(centerY).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}
