// Package dashboard aggregates study plans and quiz feedback into the
// figures shown on the dashboard.
package dashboard

import (
	"fmt"

	"github.com/abhisek/estudos/internal/domain"
	"github.com/abhisek/estudos/internal/state"
)

// RecentLimit caps the chart, recent plans and recent results.
const RecentLimit = 5

// SummaryLength caps the overall performance excerpt, in runes.
const SummaryLength = 100

// Band grades a percentage.
type Band int

const (
	BandPoor Band = iota
	BandFair
	BandGood
)

func (b Band) String() string {
	switch b {
	case BandGood:
		return "good"
	case BandFair:
		return "fair"
	default:
		return "poor"
	}
}

// BandFor returns good for >= 70, fair for >= 50, poor otherwise.
func BandFor(percent float64) Band {
	switch {
	case percent >= 70:
		return BandGood
	case percent >= 50:
		return BandFair
	default:
		return BandPoor
	}
}

// Bar is one chart column.
type Bar struct {
	Label   string
	Percent float64
}

// RecentResult is one row of the recent results list.
type RecentResult struct {
	Label   string // "#N", N counting from the oldest result
	QuizID  int
	Percent float64
	Band    Band
	Summary string
}

// Stats is everything the dashboard renders.
type Stats struct {
	TotalPlans     int
	TotalResults   int
	AveragePercent float64
	Chart          []Bar
	RecentPlans    []domain.StudyPlan
	RecentResults  []RecentResult
}

// Compute derives Stats from s.
//
// The average is taken over every quiz evaluation of every result,
// flattened, using each evaluation's percentage (score as a fallback).
func Compute(s state.State) Stats {
	st := Stats{
		TotalPlans:     len(s.StudyPlans),
		TotalResults:   len(s.QuizResults),
		AveragePercent: averagePercent(s.QuizResults),
	}

	results := lastN(s.QuizResults, RecentLimit)
	for i, r := range results {
		st.Chart = append(st.Chart, Bar{
			Label:   fmt.Sprintf("Test %d", i+1),
			Percent: r.Feedback.FirstPercent(),
		})
	}

	for i := len(results) - 1; i >= 0; i-- {
		r := results[i]
		pct := r.Feedback.FirstPercent()
		st.RecentResults = append(st.RecentResults, RecentResult{
			Label:   fmt.Sprintf("#%d", len(s.QuizResults)-(len(results)-1-i)),
			QuizID:  r.QuizID,
			Percent: pct,
			Band:    BandFor(pct),
			Summary: Truncate(r.Feedback.OverallPerformance, SummaryLength),
		})
	}

	plans := lastN(s.StudyPlans, RecentLimit)
	for i := len(plans) - 1; i >= 0; i-- {
		st.RecentPlans = append(st.RecentPlans, plans[i])
	}
	return st
}

func averagePercent(results []domain.QuizResult) float64 {
	var sum float64
	n := 0
	for _, r := range results {
		for _, e := range r.Feedback.QuizEvaluations {
			sum += e.Percent()
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Answered reports whether any result belongs to quizID.
func Answered(results []domain.QuizResult, quizID int) bool {
	for _, r := range results {
		if r.QuizID == quizID {
			return true
		}
	}
	return false
}

// Truncate shortens s to max runes, appending "..." when cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

func lastN[T any](xs []T, n int) []T {
	if len(xs) <= n {
		return xs
	}
	return xs[len(xs)-n:]
}
