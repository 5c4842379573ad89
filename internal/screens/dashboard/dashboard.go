package dashboard

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/estudos/internal/auth"
	stats "github.com/abhisek/estudos/internal/dashboard"
	"github.com/abhisek/estudos/internal/domain"
	"github.com/abhisek/estudos/internal/router"
	"github.com/abhisek/estudos/internal/screen"
	"github.com/abhisek/estudos/internal/state"
	"github.com/abhisek/estudos/internal/ui/components"
	"github.com/abhisek/estudos/internal/ui/layout"
	"github.com/abhisek/estudos/internal/ui/theme"
)

// PlanCache lists the study plans saved for a user.
type PlanCache interface {
	List(ctx context.Context, owner string) ([]domain.StudyPlan, error)
}

type plansLoadedMsg struct {
	plans []domain.StudyPlan
	err   error
}

type loggedOutMsg struct{}

// DashboardScreen summarises plans and quiz results.
type DashboardScreen struct {
	store   *state.Store
	session *auth.Session
	cache   PlanCache

	menu      components.Menu
	planCount int
	offset    int
}

var (
	_ screen.Screen          = (*DashboardScreen)(nil)
	_ screen.KeyHintProvider = (*DashboardScreen)(nil)
)

// New creates the dashboard. cache may be nil.
func New(st *state.Store, sess *auth.Session, cache PlanCache) *DashboardScreen {
	d := &DashboardScreen{store: st, session: sess, cache: cache}
	d.buildMenu()
	return d
}

func (d *DashboardScreen) Init() tea.Cmd {
	s := d.store.State()
	if len(s.StudyPlans) > 0 || s.User == nil || d.cache == nil {
		return nil
	}
	cache, owner := d.cache, s.User.Username
	return func() tea.Msg {
		plans, err := cache.List(context.Background(), owner)
		return plansLoadedMsg{plans: plans, err: err}
	}
}

func (d *DashboardScreen) buildMenu() {
	s := d.store.State()
	d.planCount = len(s.StudyPlans)
	items := []components.MenuItem{{
		Label:       "+ New study plan",
		Description: "Upload PDF or PPTX material",
		Action:      func() tea.Cmd { return router.Navigate(router.PathUpload, router.ModePush) },
	}}
	st := stats.Compute(s)
	for i, p := range st.RecentPlans {
		path := planPath(p, len(s.StudyPlans)-1-i)
		items = append(items, components.MenuItem{
			Label:       planTitle(p),
			Description: planCaption(p),
			Action:      func() tea.Cmd { return router.Navigate(path, router.ModePush) },
		})
	}
	selected := d.menu.Selected
	d.menu = components.NewMenu(items)
	if selected < len(items) {
		d.menu.Selected = selected
	}
}

// planPath addresses a plan by id, or by its position when the backend
// sent none.
func planPath(p domain.StudyPlan, index int) string {
	if id := p.ID.String(); id != "" {
		return router.StudyPlanPath(id)
	}
	return router.StudyPlanPath(strconv.Itoa(index))
}

func planTitle(p domain.StudyPlan) string {
	if p.Title != "" {
		return p.Title
	}
	return "Untitled plan"
}

func planCaption(p domain.StudyPlan) string {
	parts := []string{fmt.Sprintf("%d quizzes", len(p.Quizzes))}
	if p.EstimatedTime != "" {
		parts = append(parts, p.EstimatedTime)
	}
	return strings.Join(parts, " · ")
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if len(d.store.State().StudyPlans) != d.planCount {
		d.buildMenu()
	}

	switch msg := msg.(type) {
	case plansLoadedMsg:
		if msg.err != nil {
			log.Printf("dashboard: load cached plans: %v", msg.err)
			return d, nil
		}
		if len(msg.plans) > 0 && len(d.store.State().StudyPlans) == 0 {
			d.store.Dispatch(state.SetAllStudyPlans{Plans: msg.plans})
			d.buildMenu()
		}
		return d, nil

	case loggedOutMsg:
		return d, router.Navigate(router.PathLogin, router.ModeReset)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "n":
			return d, router.Navigate(router.PathUpload, router.ModePush)
		case "l":
			return d, d.logout()
		case "pgdown", "ctrl+d":
			d.offset += 5
			return d, nil
		case "pgup", "ctrl+u":
			d.offset = max(0, d.offset-5)
			return d, nil
		}
	}

	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) logout() tea.Cmd {
	sess := d.session
	return func() tea.Msg {
		if err := sess.Logout(context.Background()); err != nil {
			log.Printf("dashboard: logout: %v", err)
		}
		return loggedOutMsg{}
	}
}

func (d *DashboardScreen) View(width, height int) string {
	s := d.store.State()
	st := stats.Compute(s)
	w := components.ContentWidth(width)

	name := "there"
	if s.User != nil && s.User.Username != "" {
		name = s.User.Username
	}

	var sections []string
	sections = append(sections,
		theme.Title.Render("Hello, "+name+"!"),
		theme.Subtitle.Render("Here is how your studies are going."),
		"",
		d.statRow(st, w),
		"",
		d.chart(st, w),
		"",
		components.Card("Study plans", d.menu.View(), w),
	)
	if len(st.RecentResults) > 0 {
		sections = append(sections, "", components.Card("Recent results", recentResults(st.RecentResults), w))
	}

	content := strings.Join(sections, "\n")
	maxOffset := max(0, lipgloss.Height(content)-height)
	if d.offset > maxOffset {
		d.offset = maxOffset
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(layout.Clip(content, d.offset, height))
}

func (d *DashboardScreen) statRow(st stats.Stats, width int) string {
	cardW := (width - 2) / 3
	avg := "-"
	if st.TotalResults > 0 {
		avg = theme.Score(st.AveragePercent).Render(fmt.Sprintf("%.1f%%", st.AveragePercent))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		components.StatCard("Study plans", strconv.Itoa(st.TotalPlans), "generated", cardW),
		" ",
		components.StatCard("Quizzes taken", strconv.Itoa(st.TotalResults), "submitted", cardW),
		" ",
		components.StatCard("Average", avg, "across evaluations", cardW),
	)
}

func (d *DashboardScreen) chart(st stats.Stats, width int) string {
	if len(st.Chart) == 0 {
		return components.Card("Recent performance", theme.Hint.Render("Take a quiz to see your progress here."), width)
	}
	rows := make([]components.ChartRow, 0, len(st.Chart))
	for _, b := range st.Chart {
		rows = append(rows, components.ChartRow{Label: b.Label, Value: b.Percent})
	}
	return components.Card("Recent performance", components.BarChart(rows, width-4), width)
}

func recentResults(results []stats.RecentResult) string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		line := fmt.Sprintf("%-4s Quiz %-3d %s", r.Label, r.QuizID,
			theme.Score(r.Percent).Render(fmt.Sprintf("%5.1f%% %s", r.Percent, r.Band)))
		if r.Summary != "" {
			line += "\n     " + theme.Hint.Render(r.Summary)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "enter", Description: "Open"},
		{Key: "n", Description: "New plan"},
		{Key: "l", Description: "Log out"},
		{Key: "ctrl+c", Description: "Quit"},
	}
}
