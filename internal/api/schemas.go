package api

var questionDef = map[string]any{
	"type":     "object",
	"required": []string{"id", "question"},
	"properties": map[string]any{
		"id":       map[string]any{"type": "integer"},
		"type":     map[string]any{"type": []string{"string", "null"}},
		"question": map[string]any{"type": "string"},
		"options":  map[string]any{"type": []string{"array", "null"}, "items": map[string]any{"type": "string"}},
	},
}

var quizDef = map[string]any{
	"type":     "object",
	"required": []string{"id", "questions"},
	"properties": map[string]any{
		"id":        map[string]any{"type": "integer"},
		"title":     map[string]any{"type": []string{"string", "null"}},
		"questions": map[string]any{"type": "array", "items": questionDef},
	},
}

// UploadSchema is the shape of POST /upload-materials.
var UploadSchema = &Schema{
	Name: "upload-response",
	Definition: map[string]any{
		"type":     "object",
		"required": []string{"study_plan", "quizzes", "session_id"},
		"properties": map[string]any{
			"study_plan": map[string]any{"type": "object"},
			"quizzes":    map[string]any{"type": "array", "items": quizDef},
			"session_id": map[string]any{"type": []string{"string", "integer"}},
		},
	},
}

// SubmitSchema is the shape of POST /submit-answers.
var SubmitSchema = &Schema{
	Name: "submit-response",
	Definition: map[string]any{
		"type":     "object",
		"required": []string{"feedback"},
		"properties": map[string]any{
			"feedback": map[string]any{"type": "object"},
		},
	},
}

// LoginSchema is the shape of POST /auth/login.
var LoginSchema = &Schema{
	Name: "login-response",
	Definition: map[string]any{
		"type":     "object",
		"required": []string{"token"},
		"properties": map[string]any{
			"token": map[string]any{"type": "string", "minLength": 1},
		},
	},
}

// ProfileSchema is the shape of GET /auth/me and POST /auth/register.
var ProfileSchema = &Schema{
	Name: "profile-response",
	Definition: map[string]any{
		"type":     "object",
		"required": []string{"username", "email"},
		"properties": map[string]any{
			"username": map[string]any{"type": "string"},
			"email":    map[string]any{"type": "string"},
		},
	},
}
