package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/estudos/internal/ui/theme"
)

// Choice is a single-answer selector. The cursor moves with up/down and
// enter or space picks the highlighted option.
type Choice struct {
	Options  []string
	Selected int
	Chosen   int // -1 when nothing is chosen
}

// NewChoice creates a selector with nothing chosen.
func NewChoice(options []string) Choice {
	return Choice{Options: options, Chosen: -1}
}

// Update handles keyboard navigation and selection.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter", "space":
		if len(c.Options) > 0 {
			c.Chosen = c.Selected
		}
	}
	return c, nil
}

// Value returns the chosen option, or "".
func (c Choice) Value() string {
	if c.Chosen < 0 || c.Chosen >= len(c.Options) {
		return ""
	}
	return c.Options[c.Chosen]
}

// SetValue marks the option equal to v as chosen and moves the cursor to
// it. Unknown values clear the choice.
func (c *Choice) SetValue(v string) {
	c.Chosen = -1
	for i, o := range c.Options {
		if o == v {
			c.Chosen = i
			c.Selected = i
			return
		}
	}
}

// View renders the options with letter labels.
func (c Choice) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		mark := "○"
		if i == c.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s) %s", prefix, mark, optionLabel(i), opt)

		switch {
		case i == c.Selected:
			b.WriteString(theme.Selected.Render(line))
		case i == c.Chosen:
			b.WriteString(theme.Correct.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func optionLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprint(i + 1)
}
