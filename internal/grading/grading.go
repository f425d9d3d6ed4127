// Package grading scores answer submissions against stored solution keys.
package grading

import (
	"math"

	"github.com/mind-engage/mindengage-quiz/internal/apperr"
)

var ErrNoAnswers = apperr.Invalid("at least one answer is required")

// Answer is one submitted choice for a task.
type Answer struct {
	TaskID int64
	Choice int
}

// Outcome is the result of scoring one submission.
type Outcome struct {
	Correct int
	Total   int
	Rate    float64 // percentage in [0, 100], two decimals
}

// Correct reports whether choice matches the stored solution exactly.
func Correct(solution, choice int) bool { return solution == choice }

// SuccessRate returns 100*correct/total rounded to two decimal places.
func SuccessRate(correct, total int) (float64, error) {
	if total <= 0 {
		return 0, ErrNoAnswers
	}
	return math.Round(float64(correct)/float64(total)*10000) / 100, nil
}

// Score compares every answer with solutions, keyed by task id. Callers must
// have verified that every answered task has a solution.
func Score(solutions map[int64]int, answers []Answer) (Outcome, error) {
	out := Outcome{Total: len(answers)}
	for _, a := range answers {
		if Correct(solutions[a.TaskID], a.Choice) {
			out.Correct++
		}
	}
	rate, err := SuccessRate(out.Correct, out.Total)
	if err != nil {
		return Outcome{}, err
	}
	out.Rate = rate
	return out, nil
}
