package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter mounts the REST API, the websocket submit endpoint and health checks.
func NewRouter(h *Handlers, ws *WSHandler, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ws", ws.ServeWS)

	r.Route("/api/quizzes", func(r chi.Router) {
		r.Get("/", h.ListQuizzes)
		r.Post("/", h.CreateQuiz)
		r.Get("/stats", h.QuizStats)
		r.Get("/{quizId}", h.GetQuiz)
		r.Post("/{quizId}/questions/submit", h.SubmitAnswers)
	})
	r.Route("/api/questions", func(r chi.Router) {
		r.Post("/", h.CreateQuestion)
		r.Get("/quiz/{quizId}", h.QuestionsByQuiz)
		r.Post("/quiz/{quizId}/submit", h.SubmitAnswers)
		r.Get("/{id}", h.GetQuestion)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, http.StatusNotFound, "route "+r.URL.Path+" not found")
	})
	return r
}
