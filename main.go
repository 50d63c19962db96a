package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, qstore *QuestionStore, sessions *SessionStore, reviewer *Reviewer, secureCookies bool) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			// allow any http://localhost:PORT during development
			return strings.HasPrefix(origin, "http://localhost:")
		},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(EnsureQuizToken(secureCookies))

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })

	api := r.Group("/api/v1")
	{
		// Quiz session flow
		api.POST("/quiz", StartQuiz(db, sessions))
		api.GET("/quiz/current", QuizCurrent(db, sessions))
		api.POST("/quiz/answer", QuizSubmit(qstore, sessions))
		api.GET("/quiz/summary", QuizSummary(db, sessions))

		// Questions
		api.GET("/questions", ListQuestions(db))
		api.GET("/questions/count", QuestionCount(db))
		api.GET("/questions/:id", GetQuestion(db))
		api.POST("/questions/:id/answer", PracticeAnswer(qstore))
		api.POST("/questions/import", ImportQuestions(db))
		api.POST("/questions/review", ReviewQuestion(reviewer))

		// Dashboard
		api.GET("/stats", Dashboard(db))
	}

	return r
}

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "mistake_note.db"
	}
	db, err := OpenDB(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if isEmpty, _ := IsQuestionTableEmpty(db); isEmpty {
		path := os.Getenv("SEED_FILE")
		if path == "" {
			path = "data/questions.tsv"
		}
		if _, err := os.Stat(path); err == nil {
			n, err := SeedFromTSV(db, path)
			if err != nil {
				log.Fatalf("seed: %v", err)
			}
			log.Printf("Seeded %d questions from %s", n, path)
		} else {
			log.Printf("No seed file at %s; running with empty DB", path)
		}
	}

	reviewer, err := NewReviewerFromEnv(context.Background())
	if err != nil {
		log.Fatalf("reviewer: %v", err)
	}
	if reviewer == nil {
		log.Printf("GEMINI_API_KEY not set; question review disabled")
	}

	qstore := NewQuestionStore(db)
	sessions := NewSessionStore(DefaultSessionTTL)
	secureCookies := os.Getenv("SECURE_COOKIES") == "true"

	r := NewRouter(db, qstore, sessions, reviewer, secureCookies)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Listening on :%s (SecureCookies=%v)", port, secureCookies)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("run: %v", err)
	}
}
