package upload

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/estudos/internal/api"
	"github.com/abhisek/estudos/internal/auth"
	"github.com/abhisek/estudos/internal/domain"
	"github.com/abhisek/estudos/internal/materials"
	"github.com/abhisek/estudos/internal/router"
	"github.com/abhisek/estudos/internal/screen"
	"github.com/abhisek/estudos/internal/screens/common"
	"github.com/abhisek/estudos/internal/state"
	"github.com/abhisek/estudos/internal/ui/components"
	"github.com/abhisek/estudos/internal/ui/layout"
	"github.com/abhisek/estudos/internal/ui/theme"
)

// RedirectDelay is how long the success notice stays before the new plan
// opens.
const RedirectDelay = 2 * time.Second

// SuccessMessage is shown once the backend has produced a plan.
const SuccessMessage = "Study plan generated! Opening it..."

// EmptySelectionMessage is shown when submitting without files.
const EmptySelectionMessage = "Add at least one PDF or PPTX file."

// PlanSaver caches a generated plan for a user.
type PlanSaver interface {
	Save(ctx context.Context, owner string, plan domain.StudyPlan) error
}

// uploadedMsg reports an upload whose store-side effects have already
// been applied.
type uploadedMsg struct {
	plan         domain.StudyPlan
	err          error
	message      string
	unauthorized bool
}

type redirectMsg struct{}

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// UploadScreen collects material files and uploads them.
type UploadScreen struct {
	store   *state.Store
	session *auth.Session
	gateway api.Gateway
	saver   PlanSaver

	input    components.TextInput
	files    []materials.File
	cursor   int
	focus    focusArea
	warning  string
	rejected []materials.Rejection

	uploading bool
	done      bool
	message   string
}

var (
	_ screen.Screen          = (*UploadScreen)(nil)
	_ screen.KeyHintProvider = (*UploadScreen)(nil)
	_ screen.Busy            = (*UploadScreen)(nil)
)

// New creates the upload screen. saver may be nil.
func New(st *state.Store, sess *auth.Session, gw api.Gateway, saver PlanSaver) *UploadScreen {
	return &UploadScreen{
		store:   st,
		session: sess,
		gateway: gw,
		saver:   saver,
		input:   components.NewTextInput("Add files", "~/notes/aula-1.pdf or ~/notes/*.pptx", false, 1024),
	}
}

func (s *UploadScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *UploadScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case uploadedMsg:
		return s, s.handleUploaded(msg)

	case redirectMsg:
		return s, router.Navigate(router.PathStudyPlan, router.ModeReplace)

	case tea.KeyPressMsg:
		if s.uploading || s.done {
			return s, nil
		}
		switch msg.String() {
		case "ctrl+s":
			return s, s.submit()
		case "tab", "shift+tab":
			return s, s.toggleFocus()
		}
		if s.focus == focusList {
			return s, s.updateList(msg)
		}
		if msg.String() == "enter" {
			s.addFromInput()
			return s, nil
		}
	}

	if s.focus == focusInput {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *UploadScreen) toggleFocus() tea.Cmd {
	if s.focus == focusInput && len(s.files) > 0 {
		s.focus = focusList
		s.input.Blur()
		return nil
	}
	s.focus = focusInput
	return s.input.Focus()
}

func (s *UploadScreen) updateList(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.files)-1 {
			s.cursor++
		}
	case "delete", "backspace", "x":
		s.Remove(s.cursor)
		if len(s.files) == 0 {
			s.focus = focusInput
			return s.input.Focus()
		}
	case "enter":
		return s.submit()
	}
	return nil
}

// addFromInput resolves the typed path, expanding globs, and adds the
// matches.
func (s *UploadScreen) addFromInput() {
	raw := strings.TrimSpace(s.input.Value())
	if raw == "" {
		return
	}
	paths, err := expand(raw)
	if err == nil {
		err = s.AddPaths(paths)
	}
	if err != nil {
		s.input.Error = err.Error()
		return
	}
	s.input.Error = ""
	s.input.SetValue("")
}

func expand(pattern string) ([]string, error) {
	if strings.HasPrefix(pattern, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			pattern = filepath.Join(home, pattern[2:])
		}
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return []string{pattern}, nil
	}
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	// Directories matched by a glob are skipped, not errors.
	files := matches[:0]
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files match %q", pattern)
	}
	return files, nil
}

// AddPaths stats paths and adds those that pass the pre-filter. Files
// already listed are skipped. The warning reflects the latest addition.
func (s *UploadScreen) AddPaths(paths []string) error {
	found, err := materials.Stat(paths)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(s.files))
	for _, f := range s.files {
		seen[f.Path] = true
	}
	var fresh []materials.File
	for _, f := range found {
		if !seen[f.Path] {
			seen[f.Path] = true
			fresh = append(fresh, f)
		}
	}
	sel := materials.Filter(fresh)
	s.files = append(s.files, sel.Accepted...)
	s.rejected = sel.Rejected
	s.warning = sel.Warning()
	return nil
}

// Remove drops the file at index i.
func (s *UploadScreen) Remove(i int) {
	if i < 0 || i >= len(s.files) {
		return
	}
	s.files = append(s.files[:i:i], s.files[i+1:]...)
	if s.cursor >= len(s.files) && s.cursor > 0 {
		s.cursor--
	}
}

// Files returns the accepted files, in the order they were added.
func (s *UploadScreen) Files() []materials.File {
	return s.files
}

func (s *UploadScreen) submit() tea.Cmd {
	if s.uploading {
		return nil
	}
	if len(s.files) == 0 {
		s.message = EmptySelectionMessage
		return nil
	}

	s.uploading = true
	s.message = ""
	common.Begin(s.store)

	files := append([]materials.File(nil), s.files...)
	st, sess, gw, saver := s.store, s.session, s.gateway, s.saver
	owner := ""
	if u := st.State().User; u != nil {
		owner = u.Username
	}
	return func() tea.Msg {
		plan, err := materials.Upload(context.Background(), gw, files)
		if err == nil && saver != nil && owner != "" {
			if saveErr := saver.Save(context.Background(), owner, plan); saveErr != nil {
				log.Printf("upload: cache plan: %v", saveErr)
			}
		}
		return settleUpload(st, sess, plan, err)
	}
}

// settleUpload applies an upload's outcome to the store: the new plan,
// its quizzes and session id on success, the error otherwise. The store
// is never left loading.
func settleUpload(st *state.Store, sess *auth.Session, plan domain.StudyPlan, err error) uploadedMsg {
	msg := uploadedMsg{plan: plan, err: err}
	var pathErr *fs.PathError
	switch {
	case errors.As(err, &pathErr):
		common.End(st)
		msg.message = err.Error()
	case err != nil:
		msg.message, msg.unauthorized = common.Settle(st, sess, err)
	default:
		st.DispatchAll(
			state.AddStudyPlan{Plan: plan},
			state.SetQuizzes{Quizzes: plan.Quizzes},
			state.SetSessionID{SessionID: plan.SessionID},
		)
		common.End(st)
	}
	return msg
}

func (s *UploadScreen) handleUploaded(msg uploadedMsg) tea.Cmd {
	s.uploading = false
	if msg.unauthorized {
		return common.ToLogin()
	}
	if msg.err != nil {
		s.message = msg.message
		return nil
	}
	s.done = true
	s.message = SuccessMessage
	return tea.Tick(RedirectDelay, func(time.Time) tea.Msg { return redirectMsg{} })
}

// Busy reports an upload in flight.
func (s *UploadScreen) Busy() bool {
	return s.uploading
}

func (s *UploadScreen) View(width, height int) string {
	w := components.ContentWidth(width)

	var sections []string
	sections = append(sections,
		theme.Title.Render("New study plan"),
		theme.Subtitle.Render("Upload class material and get a summary, a schedule and quizzes."),
		"",
		s.input.View(),
		"",
		components.Card(fmt.Sprintf("Selected files (%d)", len(s.files)), s.fileList(), w),
	)
	if s.warning != "" {
		var why []string
		for _, r := range s.rejected {
			why = append(why, fmt.Sprintf("%s: %s", r.File.Name, r.Reason))
		}
		sections = append(sections, "", theme.WarningText.Render("! "+s.warning))
		if len(why) > 0 {
			sections = append(sections, theme.Hint.Render(strings.Join(why, "\n")))
		}
	}

	switch {
	case s.uploading:
		sections = append(sections, "", theme.Hint.Render("Uploading and generating your plan. This can take a minute..."))
	case s.message != "":
		sections = append(sections, "", components.Notice(s.message, !s.done))
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(layout.Clip(strings.Join(sections, "\n"), 0, height))
}

func (s *UploadScreen) fileList() string {
	if len(s.files) == 0 {
		return theme.Hint.Render("No files yet. Type a path above and press enter.")
	}
	lines := make([]string, 0, len(s.files)+2)
	for i, f := range s.files {
		line := fmt.Sprintf("%s  %s", f.Name, theme.Subtitle.Render(materials.HumanSize(f.Size)))
		if s.focus == focusList && i == s.cursor {
			lines = append(lines, theme.Selected.Render("▸ ")+line)
		} else {
			lines = append(lines, "  "+line)
		}
	}
	lines = append(lines, "", theme.Hint.Render("Total "+materials.HumanSize(materials.TotalSize(s.files))))
	return strings.Join(lines, "\n")
}

func (s *UploadScreen) Title() string {
	return "Upload"
}

func (s *UploadScreen) KeyHints() []layout.KeyHint {
	if s.focus == focusList {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Select"},
			{Key: "x", Description: "Remove"},
			{Key: "tab", Description: "Add more"},
			{Key: "ctrl+s", Description: "Upload"},
			{Key: "esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "enter", Description: "Add"},
		{Key: "tab", Description: "File list"},
		{Key: "ctrl+s", Description: "Upload"},
		{Key: "esc", Description: "Back"},
	}
}
