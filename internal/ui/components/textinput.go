package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/estudos/internal/ui/theme"
)

// TextInput is a labelled form field wrapping bubbles/textinput, with an
// inline validation message.
type TextInput struct {
	Label string
	Model textinput.Model
	Error string
}

// NewTextInput creates a blurred field. Password fields echo bullets.
func NewTextInput(label, placeholder string, password bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.SetWidth(40)
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	if password {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return TextInput{Label: label, Model: ti}
}

// Focus focuses the field.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the field has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label, the input and any error below it.
func (t TextInput) View() string {
	label := theme.Subtitle.Render(t.Label)
	if t.Focused() {
		label = theme.Selected.Render(t.Label)
	}
	view := label + "\n" + t.Model.View()
	if t.Error != "" {
		view += "\n" + theme.ErrorText.Render(t.Error)
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
}
