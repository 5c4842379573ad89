package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/estudos/internal/ui/theme"
)

// Form is a column of text fields followed by action buttons. Focus
// cycles through fields then buttons with tab and shift+tab.
type Form struct {
	Fields  []TextInput
	Buttons []Button
	focus   int
}

// NewForm creates a form with the first field focused.
func NewForm(fields []TextInput, buttons ...Button) Form {
	f := Form{Fields: fields, Buttons: buttons}
	f.apply()
	return f
}

// Focus returns the focused position: field indexes first, then buttons.
func (f Form) Focus() int {
	return f.focus
}

// FocusedField returns the focused field index, or -1 on a button.
func (f Form) FocusedField() int {
	if f.focus < len(f.Fields) {
		return f.focus
	}
	return -1
}

// FocusedButton returns the focused button index, or -1 on a field.
func (f Form) FocusedButton() int {
	if f.focus >= len(f.Fields) {
		return f.focus - len(f.Fields)
	}
	return -1
}

// OnLastField reports whether the last field has focus.
func (f Form) OnLastField() bool {
	return f.focus == len(f.Fields)-1
}

func (f Form) size() int {
	return len(f.Fields) + len(f.Buttons)
}

// Next moves focus forward, wrapping around.
func (f *Form) Next() tea.Cmd {
	if f.size() == 0 {
		return nil
	}
	f.focus = (f.focus + 1) % f.size()
	return f.apply()
}

// Prev moves focus backward, wrapping around.
func (f *Form) Prev() tea.Cmd {
	if f.size() == 0 {
		return nil
	}
	f.focus = (f.focus - 1 + f.size()) % f.size()
	return f.apply()
}

// SetFocus moves focus to position i.
func (f *Form) SetFocus(i int) tea.Cmd {
	if i < 0 || i >= f.size() {
		return nil
	}
	f.focus = i
	return f.apply()
}

func (f *Form) apply() tea.Cmd {
	var cmd tea.Cmd
	for i := range f.Fields {
		if i == f.focus {
			cmd = f.Fields[i].Focus()
		} else {
			f.Fields[i].Blur()
		}
	}
	for i := range f.Buttons {
		f.Buttons[i].Focused = len(f.Fields)+i == f.focus
	}
	return cmd
}

// Update forwards a message to the focused field. Buttons are triggered
// by the owning screen, which decides what enter means.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	i := f.FocusedField()
	if i < 0 {
		return f, nil
	}
	var cmd tea.Cmd
	f.Fields[i], cmd = f.Fields[i].Update(msg)
	return f, cmd
}

// Value returns the value of field i.
func (f Form) Value(i int) string {
	return f.Fields[i].Value()
}

// ClearErrors removes every field message.
func (f *Form) ClearErrors() {
	for i := range f.Fields {
		f.Fields[i].Error = ""
	}
}

// SetError attaches msg to field i.
func (f *Form) SetError(i int, msg string) {
	f.Fields[i].Error = msg
}

// View renders the fields, then the buttons on one row.
func (f Form) View() string {
	parts := make([]string, 0, len(f.Fields)+1)
	for _, fld := range f.Fields {
		parts = append(parts, fld.View())
	}
	if len(f.Buttons) > 0 {
		btns := make([]string, 0, len(f.Buttons))
		for _, b := range f.Buttons {
			btns = append(btns, b.View())
		}
		parts = append(parts, strings.Join(btns, "  "))
	}
	return strings.Join(parts, "\n\n")
}

// Notice renders a form-level message above the fields: errors in rose,
// everything else in green.
func Notice(msg string, isError bool) string {
	if msg == "" {
		return ""
	}
	if isError {
		return theme.ErrorText.Render("✗ " + msg)
	}
	return theme.SuccessText.Render("✓ " + msg)
}
