package domain

// Feedback is the backend's evaluation of a quiz submission. The client
// only reads it; every accessor below has a defined zero default.
type Feedback struct {
	OverallPerformance  string               `json:"overall_performance"`
	QuizEvaluations     []QuizEvaluation     `json:"quiz_evaluations"`
	PerformanceAnalysis *PerformanceAnalysis `json:"performance_analysis,omitempty"`
}

// QuizEvaluation scores one quiz. Older backends send score, newer ones
// send percentage; both are optional.
type QuizEvaluation struct {
	Score               *float64             `json:"score,omitempty"`
	Percentage          *float64             `json:"percentage,omitempty"`
	QuestionEvaluations []QuestionEvaluation `json:"question_evaluations"`
}

// QuestionEvaluation is the verdict on a single answer.
type QuestionEvaluation struct {
	QuestionID int    `json:"question_id"`
	UserAnswer string `json:"user_answer"`
	IsCorrect  bool   `json:"is_correct"`
	Feedback   string `json:"feedback"`
}

// PerformanceAnalysis lists strengths and weaknesses found by the backend.
type PerformanceAnalysis struct {
	StrongAreas            []string `json:"strong_areas"`
	WeakAreas              []string `json:"weak_areas"`
	ImprovementSuggestions []string `json:"improvement_suggestions"`
}

// Percent returns the percentage, falling back to score, then 0.
func (e QuizEvaluation) Percent() float64 {
	if e.Percentage != nil {
		return *e.Percentage
	}
	if e.Score != nil {
		return *e.Score
	}
	return 0
}

// FirstPercent returns the percent of the first evaluation, or 0.
func (f Feedback) FirstPercent() float64 {
	if len(f.QuizEvaluations) == 0 {
		return 0
	}
	return f.QuizEvaluations[0].Percent()
}

// Analysis never returns nil.
func (f Feedback) Analysis() PerformanceAnalysis {
	if f.PerformanceAnalysis == nil {
		return PerformanceAnalysis{}
	}
	return *f.PerformanceAnalysis
}

// CorrectCount counts correct answers across all evaluations.
func (f Feedback) CorrectCount() (correct, total int) {
	for _, e := range f.QuizEvaluations {
		for _, q := range e.QuestionEvaluations {
			total++
			if q.IsCorrect {
				correct++
			}
		}
	}
	return correct, total
}
