package achievement

import (
	"strings"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
	"github.com/osse101/QuestAcademy_Go/internal/world"
)

// Evaluate reports whether the snapshot satisfies the criteria. Unknown
// criteria types never match.
func Evaluate(criteria domain.UnlockCriteria, snapshot domain.ActivitySnapshot) bool {
	switch criteria.Type {
	case domain.CriteriaLessonsCompleted:
		return len(snapshot.Responses) >= criteria.Count

	case domain.CriteriaSubjectCorrectAnswers:
		correct := 0
		for _, r := range snapshot.Responses {
			if r.Correct && matchesSubject(criteria.Subject, r.SubjectID, r.SubjectName) {
				correct++
			}
		}
		return correct >= criteria.Count

	case domain.CriteriaSubjectLessons:
		for _, p := range snapshot.Progress {
			if matchesSubject(criteria.Subject, p.SubjectID, p.SubjectName) {
				return p.QuestionsAnswered >= criteria.Count
			}
		}
		return false

	case domain.CriteriaFastAnswers:
		fast := 0
		for _, r := range snapshot.Responses {
			if r.ResponseTime <= criteria.TimeLimit {
				fast++
			}
		}
		return fast >= criteria.Count

	case domain.CriteriaAccuracyStreak:
		// Accuracy is carried on the criteria but only the run length is checked
		return LongestCorrectRun(snapshot.Responses) >= criteria.Count

	case domain.CriteriaDailyStreak:
		best := 0
		for _, p := range snapshot.Progress {
			if p.BestStreak > best {
				best = p.BestStreak
			}
		}
		return best >= criteria.Count

	case domain.CriteriaCharacterLevel:
		return snapshot.Character != nil && snapshot.Character.Level >= criteria.Level
	}
	return false
}

// LongestCorrectRun returns the longest run of consecutive correct responses.
// Responses must be in chronological order.
func LongestCorrectRun(responses []domain.QuestionResponse) int {
	longest, current := 0, 0
	for _, r := range responses {
		if !r.Correct {
			current = 0
			continue
		}
		current++
		if current > longest {
			longest = current
		}
	}
	return longest
}

// matchesSubject accepts either a subject id or a display name on the criteria side
func matchesSubject(subject, subjectID, subjectName string) bool {
	if subject == "" {
		return false
	}
	if subject == subjectID || strings.EqualFold(subject, subjectName) {
		return true
	}
	return subjectID != "" && world.SubjectSlug(subject) == subjectID
}
