package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		path      string
		name      Name
		protected bool
		params    Params
		ok        bool
	}{
		{"/", Dashboard, true, Params{}, true},
		{"", Dashboard, true, Params{}, true},
		{"/login", Login, false, Params{}, true},
		{"/register/", Register, false, Params{}, true},
		{"/dashboard", Dashboard, true, Params{}, true},
		{"/upload", Upload, true, Params{}, true},
		{"/study-plan", StudyPlan, true, Params{}, true},
		{"/study-plan/7", StudyPlan, true, Params{"id": "7"}, true},
		{"/quiz/3?from=plan", Quiz, true, Params{"id": "3"}, true},
		{"/quiz", NotFound, false, nil, false},
		{"/nope", NotFound, false, nil, false},
		{"/study-plan/1/extra", NotFound, false, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r, params, ok := Match(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, r.Name)
			assert.Equal(t, tt.protected, r.Protected)
			assert.Equal(t, tt.params, params)
		})
	}
}

func TestEveryPageButAuthIsProtected(t *testing.T) {
	for _, r := range Routes {
		public := r.Name == Login || r.Name == Register
		assert.Equal(t, !public, r.Protected, r.Pattern)
	}
}

func TestNavigateCmd(t *testing.T) {
	msg := Navigate("/upload", ModeReplace)()
	assert.Equal(t, NavigateMsg{Path: "/upload", Mode: ModeReplace}, msg)
}

func TestNavigateWithFlash(t *testing.T) {
	msg := NavigateWithFlash(PathLogin, ModeReset, "Account created")()
	assert.Equal(t, NavigateMsg{Path: PathLogin, Mode: ModeReset, Flash: "Account created"}, msg)
}

func TestPathBuilders(t *testing.T) {
	assert.Equal(t, "/study-plan/7", StudyPlanPath("7"))
	assert.Equal(t, "/quiz/3", QuizPath(3))

	r, params, ok := Match(StudyPlanPath("a b"))
	assert.True(t, ok)
	assert.Equal(t, StudyPlan, r.Name)
	assert.Equal(t, "a b", params["id"])
}
