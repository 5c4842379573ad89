package quiz

import "github.com/abhisek/estudos/internal/domain"

// submittedMsg carries the evaluation of a submitted attempt. The result
// is already in the store when it arrives.
type submittedMsg struct {
	Feedback     domain.Feedback
	Err          error
	Message      string
	Unauthorized bool
}
