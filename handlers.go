package main

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

/*** DTOs shared across handlers ***/

type OptionDTO struct {
	Label string `json:"label"` // "a","b","c",...
	Text  string `json:"text"`
}

type QuestionDTO struct {
	ID      uint        `json:"id"`
	Type    string      `json:"type"`
	Content string      `json:"content"`
	Passage *string     `json:"passage,omitempty"`
	Options []OptionDTO `json:"options,omitempty"`
}

const optionLabels = "abcdefghijklmnopqrstuvwxyz"

// labeledOptions shuffles the stored option texts and assigns presentation
// labels. Grading never sees labels; submissions carry the option text.
func labeledOptions(csv string, r *rand.Rand) []OptionDTO {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	var texts []string
	for _, part := range strings.Split(csv, ",") {
		if t := strings.TrimSpace(part); t != "" {
			texts = append(texts, t)
		}
	}
	r.Shuffle(len(texts), func(i, j int) { texts[i], texts[j] = texts[j], texts[i] })
	out := make([]OptionDTO, 0, len(texts))
	for i, t := range texts {
		label := "?"
		if i < len(optionLabels) {
			label = string(optionLabels[i])
		}
		out = append(out, OptionDTO{Label: label, Text: t})
	}
	return out
}

func questionDTO(q *Question, r *rand.Rand) QuestionDTO {
	dto := QuestionDTO{
		ID:      q.ID,
		Type:    q.Type,
		Content: q.Content,
		Passage: q.Passage,
	}
	if q.Type == TypeSingleChoice || q.Type == TypeMultiChoice {
		dto.Options = labeledOptions(q.Options, r)
	}
	return dto
}

/*** Quiz token middleware ***/

const quizCookieName = "mn_quiz"

// EnsureQuizToken issues an opaque token cookie that keys the session store.
func EnsureQuizToken(secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(quizCookieName)
		if err != nil || token == "" {
			token = NewSessionToken()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     quizCookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   24 * 3600,
				HttpOnly: true,
				Secure:   secureCookies,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Set("quizToken", token)
		c.Next()
	}
}

func quizToken(c *gin.Context) string {
	v, _ := c.Get("quizToken")
	token, _ := v.(string)
	return token
}

/*** Quiz session flow ***/

type StartQuizReq struct {
	Mode  string `json:"mode"`
	Exam  string `json:"exam"`
	Count int    `json:"count"`
	Seed  *int64 `json:"seed"` // optional, for reproducibility
}

func StartQuiz(db *gorm.DB, sessions *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StartQuizReq
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		if req.Mode == "" {
			req.Mode = ModeAll
		}

		ids, err := SelectQuestions(db, req.Mode, req.Exam, req.Count, req.Seed)
		switch {
		case errors.Is(err, ErrInvalidSelectionCount), errors.Is(err, ErrInvalidSelectionMode):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}

		session := NewQuizSession(ids)
		sessions.Put(quizToken(c), session)

		c.JSON(http.StatusOK, gin.H{
			"total":    len(ids),
			"finished": session.Exhausted(),
		})
	}
}

func QuizCurrent(db *gorm.DB, sessions *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			qid    uint
			index  int
			total  int
			curErr error
		)
		err := sessions.View(quizToken(c), func(s *QuizSession) {
			index = s.CurrentIndex
			total = len(s.QuestionIDs)
			qid, curErr = s.Current()
		})
		if errors.Is(err, ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active quiz"})
			return
		}
		if errors.Is(curErr, ErrSessionExhausted) {
			c.JSON(http.StatusConflict, gin.H{"error": curErr.Error()})
			return
		}

		var q Question
		if err := db.First(&q, "id = ?", qid).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"question":       questionDTO(&q, nil),
			"currentIndex":   index,
			"total":          total,
			"isLastQuestion": index+1 >= total,
		})
	}
}

type QuizAnswerReq struct {
	Answer string `json:"answer"`
}

func QuizSubmit(qstore *QuestionStore, sessions *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req QuizAnswerReq
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}

		var res SubmitResult
		err := sessions.Update(quizToken(c), func(s *QuizSession) error {
			var err error
			res, err = s.Submit(qstore, req.Answer)
			return err
		})
		switch {
		case errors.Is(err, ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "no active quiz"})
			return
		case errors.Is(err, ErrNoCurrentQuestion):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		case errors.Is(err, ErrQuestionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		case errors.Is(err, ErrInvalidQuestionType):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func QuizSummary(db *gorm.DB, sessions *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var summary SessionSummary
		err := sessions.View(quizToken(c), func(s *QuizSession) {
			summary = s.Summary()
		})
		if errors.Is(err, ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active quiz"})
			return
		}

		// Detail rows for review of the questions that went wrong.
		type IncorrectRow struct {
			Question        QuestionDTO `json:"question"`
			SubmittedAnswer string      `json:"submittedAnswer"`
			CorrectAnswer   string      `json:"correctAnswer"`
			Explanation     *string     `json:"explanation,omitempty"`
		}
		incorrect := []IncorrectRow{}
		for _, entry := range summary.Log {
			if entry.IsCorrect {
				continue
			}
			var q Question
			if err := db.First(&q, "id = ?", entry.QuestionID).Error; err != nil {
				continue
			}
			incorrect = append(incorrect, IncorrectRow{
				Question:        questionDTO(&q, nil),
				SubmittedAnswer: entry.SubmittedAnswer,
				CorrectAnswer:   q.CorrectAnswer,
				Explanation:     q.Explanation,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"score":     summary.Score,
			"total":     summary.Total,
			"log":       summary.Log,
			"incorrect": incorrect,
		})
	}
}

/*** Questions: list, detail, count, practice answer ***/

func ListQuestions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var qs []Question
		if err := db.Preload("Tags").Order("created_at DESC, id DESC").Find(&qs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		c.JSON(http.StatusOK, qs)
	}
}

func GetQuestion(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q Question
		if err := db.Preload("Tags").First(&q, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrQuestionNotFound.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"question":       questionDTO(&q, nil),
			"solvedCount":    q.SolvedCount,
			"correctCount":   q.CorrectCount,
			"incorrectCount": q.IncorrectCount,
		})
	}
}

// QuestionCount previews the candidate pool for the selection form.
// Query params: ?mode=wrong&exam=AWS
func QuestionCount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := CountCandidates(db, c.Query("mode"), c.Query("exam"))
		if errors.Is(err, ErrInvalidSelectionMode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}

func parseUintParam(s string, out *uint) error {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return err
	}
	*out = uint(v)
	return nil
}

// PracticeAnswer grades a one-off submission outside any quiz session.
func PracticeAnswer(qstore *QuestionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var id uint
		if err := parseUintParam(c.Param("id"), &id); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad question id"})
			return
		}
		var req QuizAnswerReq
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}

		res, err := qstore.RecordAttempt(id, req.Answer, false)
		switch {
		case errors.Is(err, ErrQuestionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		case errors.Is(err, ErrInvalidQuestionType):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
