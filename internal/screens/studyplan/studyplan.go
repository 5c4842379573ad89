package studyplan

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/estudos/internal/dashboard"
	"github.com/abhisek/estudos/internal/domain"
	"github.com/abhisek/estudos/internal/router"
	"github.com/abhisek/estudos/internal/screen"
	"github.com/abhisek/estudos/internal/state"
	"github.com/abhisek/estudos/internal/ui/components"
	"github.com/abhisek/estudos/internal/ui/layout"
	"github.com/abhisek/estudos/internal/ui/theme"
)

// StudyPlanScreen shows one plan and its quizzes.
type StudyPlanScreen struct {
	store *state.Store
	id    string

	plan         *domain.StudyPlan
	menu         components.Menu
	showOriginal bool
	offset       int
}

var (
	_ screen.Screen          = (*StudyPlanScreen)(nil)
	_ screen.KeyHintProvider = (*StudyPlanScreen)(nil)
)

// New creates the page for the plan with the given id, or for the
// current plan when id is empty. A numeric id that matches no plan id is
// taken as a position in the plan list.
func New(st *state.Store, id string) *StudyPlanScreen {
	return &StudyPlanScreen{store: st, id: id}
}

// Init selects the plan, making it current when it was opened by id.
func (s *StudyPlanScreen) Init() tea.Cmd {
	st := s.store.State()
	if s.id == "" {
		s.plan = st.CurrentStudyPlan
	} else if p, ok := resolve(st, s.id); ok {
		s.plan = &p
		if st.CurrentStudyPlan == nil || st.CurrentStudyPlan.ID != p.ID || st.SessionID != p.SessionID {
			s.store.DispatchAll(
				state.SetCurrentStudyPlan{Plan: &p},
				state.SetQuizzes{Quizzes: p.Quizzes},
				state.SetSessionID{SessionID: p.SessionID},
			)
		}
	}
	s.buildMenu()
	return nil
}

func resolve(st state.State, id string) (domain.StudyPlan, bool) {
	if p, ok := st.FindStudyPlan(id); ok {
		return p, true
	}
	if i, err := strconv.Atoi(id); err == nil && i >= 0 && i < len(st.StudyPlans) {
		return st.StudyPlans[i], true
	}
	return domain.StudyPlan{}, false
}

// Plan returns the plan on display, or nil.
func (s *StudyPlanScreen) Plan() *domain.StudyPlan {
	return s.plan
}

func (s *StudyPlanScreen) buildMenu() {
	if s.plan == nil {
		s.menu = components.NewMenu(nil)
		return
	}
	results := s.store.State().QuizResults
	items := make([]components.MenuItem, 0, len(s.plan.Quizzes))
	for _, q := range s.plan.Quizzes {
		path := router.QuizPath(q.ID)
		label := quizTitle(q)
		desc := fmt.Sprintf("%d questions", len(q.Questions))
		if dashboard.Answered(results, q.ID) {
			label += "  ✓"
			desc += " · answered, enter to retake"
		}
		items = append(items, components.MenuItem{
			Label:       label,
			Description: desc,
			Action:      func() tea.Cmd { return router.Navigate(path, router.ModePush) },
		})
	}
	selected := s.menu.Selected
	s.menu = components.NewMenu(items)
	if selected < len(items) {
		s.menu.Selected = selected
	}
}

func quizTitle(q domain.Quiz) string {
	if q.Title != "" {
		return q.Title
	}
	return fmt.Sprintf("Quiz %d", q.ID)
}

func (s *StudyPlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "o":
		s.showOriginal = !s.showOriginal
		return s, nil
	case "pgdown", "ctrl+d":
		s.offset += 5
		return s, nil
	case "pgup", "ctrl+u":
		s.offset = max(0, s.offset-5)
		return s, nil
	case "n":
		if s.plan == nil {
			return s, router.Navigate(router.PathUpload, router.ModeReplace)
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(kmsg)
	return s, cmd
}

func (s *StudyPlanScreen) View(width, height int) string {
	if s.plan == nil {
		heading := "No study plan selected"
		if s.id != "" {
			heading = "Study plan " + s.id + " not found"
		}
		body := theme.Title.Render(heading) + "\n\n" +
			theme.Hint.Render("Press n to upload material, or esc to go back.")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
	}

	s.buildMenu()
	p := s.plan
	w := components.ContentWidth(width)
	inner := w - 4

	var sections []string
	title := p.Title
	if title == "" {
		title = "Study plan"
	}
	sections = append(sections, theme.Title.Render(title))
	if p.EstimatedTime != "" {
		sections = append(sections, theme.Subtitle.Render("Estimated time: "+p.EstimatedTime))
	}
	sections = append(sections, "")

	if p.Summary != "" {
		sections = append(sections, components.Card("Summary", layout.Wrap(p.Summary, inner), w), "")
	}

	quizzes := theme.Hint.Render("This plan has no quizzes.")
	if len(p.Quizzes) > 0 {
		quizzes = s.menu.View()
	}
	sections = append(sections, components.Card("Quizzes", quizzes, w), "")

	if len(p.Topics) > 0 {
		sections = append(sections, components.Card("Topics", layout.Wrap(components.Bullets(p.Topics), inner), w), "")
	}
	if len(p.KeyConcepts) > 0 {
		sections = append(sections, components.Card("Key concepts", layout.Wrap(components.Bullets(p.KeyConcepts), inner), w), "")
	}
	if sched := schedule(p.StudySchedule); sched != "" {
		sections = append(sections, components.Card("Schedule", layout.Wrap(sched, inner), w), "")
	}

	if p.OriginalContent != "" {
		if s.showOriginal {
			sections = append(sections, components.Card("Original material", layout.Wrap(p.OriginalContent, inner), w))
		} else {
			sections = append(sections, theme.Hint.Render("Press o to show the original material."))
		}
	}

	content := strings.Join(sections, "\n")
	maxOffset := max(0, lipgloss.Height(content)-height)
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(layout.Clip(content, s.offset, height))
}

// schedule renders the period → activities map with periods sorted.
func schedule(m map[string][]string) string {
	if len(m) == 0 {
		return ""
	}
	periods := make([]string, 0, len(m))
	for k := range m {
		periods = append(periods, k)
	}
	sort.Strings(periods)

	var b strings.Builder
	for i, period := range periods {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(theme.Heading.Render(period))
		b.WriteString("\n")
		b.WriteString(components.Bullets(m[period]))
	}
	return b.String()
}

func (s *StudyPlanScreen) Title() string {
	return "Study plan"
}

func (s *StudyPlanScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select quiz"},
		{Key: "enter", Description: "Start quiz"},
		{Key: "o", Description: "Original"},
		{Key: "pgup/pgdn", Description: "Scroll"},
		{Key: "esc", Description: "Back"},
	}
}
