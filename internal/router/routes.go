package router

import (
	"net/url"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
)

// Paths
const (
	PathRoot          = "/"
	PathLogin         = "/login"
	PathRegister      = "/register"
	PathDashboard     = "/dashboard"
	PathUpload        = "/upload"
	PathStudyPlan     = "/study-plan"
	PathStudyPlanByID = "/study-plan/:id"
	PathQuiz          = "/quiz/:id"
)

// Name identifies a page.
type Name string

const (
	Login     Name = "login"
	Register  Name = "register"
	Dashboard Name = "dashboard"
	Upload    Name = "upload"
	StudyPlan Name = "study-plan"
	Quiz      Name = "quiz"
	NotFound  Name = "not-found"
)

// Route is one entry of the route table.
type Route struct {
	Name      Name
	Pattern   string
	Protected bool
}

// Routes is the route table, in match order.
var Routes = []Route{
	{Name: Login, Pattern: PathLogin},
	{Name: Register, Pattern: PathRegister},
	{Name: Dashboard, Pattern: PathDashboard, Protected: true},
	{Name: Upload, Pattern: PathUpload, Protected: true},
	{Name: StudyPlan, Pattern: PathStudyPlan, Protected: true},
	{Name: StudyPlan, Pattern: PathStudyPlanByID, Protected: true},
	{Name: Quiz, Pattern: PathQuiz, Protected: true},
}

// StudyPlanPath returns the page path of the plan with the given id.
func StudyPlanPath(id string) string {
	return PathStudyPlan + "/" + url.PathEscape(id)
}

// QuizPath returns the page path of a quiz.
func QuizPath(id int) string {
	return "/quiz/" + strconv.Itoa(id)
}

// Params holds the named path segments of a match.
type Params map[string]string

// Match resolves path against the route table. The root path redirects to
// the dashboard. Unknown paths return the NotFound route with ok=false.
func Match(path string) (Route, Params, bool) {
	path = normalize(path)
	if path == PathRoot {
		path = PathDashboard
	}
	for _, r := range Routes {
		if params, ok := matchPattern(r.Pattern, path); ok {
			return r, params, true
		}
	}
	return Route{Name: NotFound, Pattern: path}, nil, false
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

func matchPattern(pattern, path string) (Params, bool) {
	pp := strings.Split(strings.Trim(pattern, "/"), "/")
	sp := strings.Split(strings.Trim(path, "/"), "/")
	if len(pp) != len(sp) {
		return nil, false
	}
	params := Params{}
	for i, seg := range pp {
		if strings.HasPrefix(seg, ":") {
			if sp[i] == "" {
				return nil, false
			}
			v, err := url.PathUnescape(sp[i])
			if err != nil {
				v = sp[i]
			}
			params[seg[1:]] = v
			continue
		}
		if seg != sp[i] {
			return nil, false
		}
	}
	return params, true
}

// Mode selects how a navigation changes the screen stack.
type Mode int

const (
	// ModePush keeps the current page underneath, so esc goes back.
	ModePush Mode = iota
	// ModeReplace swaps the current page.
	ModeReplace
	// ModeReset clears the history.
	ModeReset
)

// NavigateMsg requests navigation to a path. The app resolves it to a
// screen, wrapping protected pages in the route guard.
type NavigateMsg struct {
	Path string
	Mode Mode

	// Flash is a one-off notice for the destination page.
	Flash string
}

// Navigate returns a command that emits a NavigateMsg.
func Navigate(path string, mode Mode) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Path: path, Mode: mode}
	}
}

// NavigateWithFlash is Navigate with a notice for the destination page.
func NavigateWithFlash(path string, mode Mode, flash string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Path: path, Mode: mode, Flash: flash}
	}
}
