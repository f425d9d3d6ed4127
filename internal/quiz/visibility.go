package quiz

import (
	"fmt"
	"strings"

	"github.com/mind-engage/mindengage-quiz/internal/db"
)

// ApplyVisibility strips solution and feedback from every task when the quiz
// runs in exam mode. Other modes return the tasks unchanged.
func ApplyVisibility(modeID int64, tasks []TaskView) []TaskView {
	if modeID != db.ModeExam {
		return tasks
	}
	for i := range tasks {
		tasks[i].Solution = nil
		tasks[i].Feedback = nil
	}
	return tasks
}

// LinkSegment picks the student view a share link opens.
func LinkSegment(modeID int64) string {
	if modeID == db.ModeExam {
		return "pruefung"
	}
	return "uebung"
}

func AccessLink(baseURL string, modeID, quizID int64) string {
	return fmt.Sprintf("%s/%s.html?quizID=%d", strings.TrimSuffix(baseURL, "/"), LinkSegment(modeID), quizID)
}
