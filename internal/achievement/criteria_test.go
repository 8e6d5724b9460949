package achievement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

func responses(pattern string, subjectID, subjectName string, responseTime float64) []domain.QuestionResponse {
	out := make([]domain.QuestionResponse, 0, len(pattern))
	for _, c := range pattern {
		out = append(out, domain.QuestionResponse{
			SubjectID:    subjectID,
			SubjectName:  subjectName,
			Correct:      c == 'y',
			ResponseTime: responseTime,
		})
	}
	return out
}

func TestEvaluate(t *testing.T) {
	maths := responses("yyyyy", "mathematics", "Mathematics", 4)
	mixed := append(responses("yynyyyn", "science", "Science", 12), responses("yy", "history", "History", 2)...)

	tests := []struct {
		name     string
		criteria domain.UnlockCriteria
		snapshot domain.ActivitySnapshot
		expected bool
	}{
		{
			name:     "lessons completed met",
			criteria: domain.UnlockCriteria{Type: domain.CriteriaLessonsCompleted, Count: 1},
			snapshot: domain.ActivitySnapshot{Responses: maths[:1]},
			expected: true,
		},
		{
			name:     "lessons completed with no responses",
			criteria: domain.UnlockCriteria{Type: domain.CriteriaLessonsCompleted, Count: 1},
			snapshot: domain.ActivitySnapshot{},
			expected: false,
		},
		{
			name:     "subject correct answers by display name",
			criteria: domain.UnlockCriteria{Type: domain.CriteriaSubjectCorrectAnswers, Subject: "Mathematics", Count: 5},
			snapshot: domain.ActivitySnapshot{Responses: maths},
			expected: true,
		},
		{
			name:     "subject correct answers by id",
			criteria: domain.UnlockCriteria{Type: domain.CriteriaSubjectCorrectAnswers, Subject: "mathematics", Count: 5},
			snapshot: domain.ActivitySnapshot{Responses: maths},
			expected: true,
		},
		{
			name:     "subject correct answers one short",
			criteria: domain.UnlockCriteria{Type: domain.CriteriaSubjectCorrectAnswers, Subject: "Mathematics", Count: 6},
			snapshot: domain.ActivitySnapshot{Responses: maths},
			expected: false,
		},
		{
			name:     "subject correct answers other subject",
			criteria: domain.UnlockCriteria{Type: domain.CriteriaSubjectCorrectAnswers, Subject: "Science", Count: 5},
			snapshot: domain.ActivitySnapshot{Responses: maths},
			expected: false,
		},
		{
			name:     "subject lessons",
			criteria: domain.UnlockCriteria{Type: domain.CriteriaSubjectLessons, Subject: "Language Arts", Count: 10},
			snapshot: domain.ActivitySnapshot{Progress: []domain.SubjectProgress{
				{SubjectID: "language-arts", SubjectName: "Language Arts", QuestionsAnswered: 10},
			}},
			expected: true,
		},
		{
			name:     "subject lessons missing subject",
			criteria: domain.UnlockCriteria{Type: domain.CriteriaSubjectLessons, Subject: "Art", Count: 1},
			snapshot: domain.ActivitySnapshot{Progress: []domain.SubjectProgress{{SubjectID: "science", QuestionsAnswered: 40}}},
			expected: false,
		},
		{
			name:     "fast answers counts inclusive limit",
			criteria: domain.UnlockCriteria{Type: domain.CriteriaFastAnswers, TimeLimit: 4, Count: 5},
			snapshot: domain.ActivitySnapshot{Responses: maths},
			expected: true,
		},
		{
			name:     "fast answers too slow",
			criteria: domain.UnlockCriteria{Type: domain.CriteriaFastAnswers, TimeLimit: 5, Count: 3},
			snapshot: domain.ActivitySnapshot{Responses: mixed},
			expected: false,
		},
		{
			name:     "accuracy streak spans subjects",
			criteria: domain.UnlockCriteria{Type: domain.CriteriaAccuracyStreak, Accuracy: 100, Count: 3},
			snapshot: domain.ActivitySnapshot{Responses: mixed},
			expected: true,
		},
		{
			name:     "accuracy streak broken",
			criteria: domain.UnlockCriteria{Type: domain.CriteriaAccuracyStreak, Accuracy: 100, Count: 4},
			snapshot: domain.ActivitySnapshot{Responses: mixed},
			expected: false,
		},
		{
			name:     "daily streak uses best across subjects",
			criteria: domain.UnlockCriteria{Type: domain.CriteriaDailyStreak, Count: 7},
			snapshot: domain.ActivitySnapshot{Progress: []domain.SubjectProgress{{BestStreak: 3}, {BestStreak: 7}}},
			expected: true,
		},
		{
			name:     "character level",
			criteria: domain.UnlockCriteria{Type: domain.CriteriaCharacterLevel, Level: 5},
			snapshot: domain.ActivitySnapshot{Character: &domain.Character{Level: 5}},
			expected: true,
		},
		{
			name:     "character level without character",
			criteria: domain.UnlockCriteria{Type: domain.CriteriaCharacterLevel, Level: 1},
			snapshot: domain.ActivitySnapshot{},
			expected: false,
		},
		{
			name:     "unknown type",
			criteria: domain.UnlockCriteria{Type: "moon_phase", Count: 0},
			snapshot: domain.ActivitySnapshot{Responses: maths},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Evaluate(tt.criteria, tt.snapshot))
		})
	}
}

func TestLongestCorrectRun(t *testing.T) {
	assert.Equal(t, 0, LongestCorrectRun(nil))
	assert.Equal(t, 0, LongestCorrectRun(responses("nnn", "", "", 1)))
	assert.Equal(t, 3, LongestCorrectRun(responses("yynyyyn", "", "", 1)))
	assert.Equal(t, 4, LongestCorrectRun(responses("nyyyy", "", "", 1)))
}
