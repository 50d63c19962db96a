package main

import (
	"time"
)

// --- Question types ---

const (
	TypeSingleChoice = "single_choice"
	TypeMultiChoice  = "multi_choice"
	TypeFreeText     = "free_text"
)

// --- Taxonomy ---

type Exam struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	CreatedAt time.Time `json:"-"`
}

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ExamID    uint      `gorm:"index;not null" json:"examId"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"-"`
}

type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:50;not null" json:"name"`
}

// --- Questions ---

// Question keeps its cumulative attempt counters on the row itself.
// solved_count == correct_count + incorrect_count at every commit point;
// all three move only inside QuestionStore.RecordAttempt.
type Question struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Type           string    `gorm:"size:16;not null;default:single_choice" json:"type"`
	ExamID         *uint     `gorm:"index" json:"examId,omitempty"`
	CategoryID     *uint     `gorm:"index" json:"categoryId,omitempty"`
	Tags           []Tag     `gorm:"many2many:question_tags" json:"tags,omitempty"`
	Content        string    `gorm:"not null" json:"content"`
	Passage        *string   `json:"passage,omitempty"`
	SolvedCount    int       `gorm:"not null;default:0" json:"solvedCount"`
	CorrectCount   int       `gorm:"not null;default:0" json:"correctCount"`
	IncorrectCount int       `gorm:"not null;default:0" json:"incorrectCount"`
	CorrectAnswer  string    `gorm:"size:200;not null" json:"-"` // comma-joined for multi_choice
	Options        string    `json:"options"`                    // comma-separated option texts (choice types only)
	Explanation    *string   `json:"explanation,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AnswerRecord is append-only; rows are never updated after creation.
type AnswerRecord struct {
	ID              uint      `gorm:"primaryKey"`
	QuestionID      uint      `gorm:"index;not null"`
	SubmittedAnswer string    `gorm:"size:200;not null"`
	IsCorrect       bool      `gorm:"not null"`
	SubmittedAt     time.Time `gorm:"index;not null"`
	QuizMode        bool      `gorm:"not null;default:true"` // false for practice single-question submissions
}
