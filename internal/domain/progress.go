package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subject is a learning subject keyed by a stable slug
type Subject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SubjectProgress aggregates a user's activity in one subject
type SubjectProgress struct {
	UserID            string    `json:"user_id"`
	SubjectID         string    `json:"subject_id"`
	SubjectName       string    `json:"subject_name"`
	TotalXP           int64     `json:"total_xp"`
	QuestionsAnswered int       `json:"questions_answered"`
	CorrectAnswers    int       `json:"correct_answers"`
	CurrentStreak     int       `json:"current_streak"`
	BestStreak        int       `json:"best_streak"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// QuestionResponse is a single answered question
type QuestionResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       string    `json:"user_id"`
	SubjectID    string    `json:"subject_id"`
	SubjectName  string    `json:"subject_name"`
	QuestionID   string    `json:"question_id"`
	Correct      bool      `json:"correct"`
	ResponseTime float64   `json:"response_time"` // seconds
	AnsweredAt   time.Time `json:"answered_at"`
}

// AnswerSubmission is the input for recording an answered question
type AnswerSubmission struct {
	UserID       string
	SubjectID    string
	SubjectName  string
	QuestionID   string
	Correct      bool
	ResponseTime float64
}

// AnswerResult is returned after an answer has been recorded
type AnswerResult struct {
	Response  QuestionResponse `json:"response"`
	Progress  SubjectProgress  `json:"progress"`
	XPGained  int64            `json:"xp_gained"`
	Character *LevelResult     `json:"character,omitempty"`
}
