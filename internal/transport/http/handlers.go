package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"quiz-grading-service/internal/app"
	"quiz-grading-service/internal/domain"
)

// Handlers serves the quiz and question REST API.
type Handlers struct {
	quizzes   *app.QuizService
	questions *app.QuestionService
}

func NewHandlers(quizzes *app.QuizService, questions *app.QuestionService) *Handlers {
	return &Handlers{quizzes: quizzes, questions: questions}
}

type submitRequest struct {
	Answers []domain.SubmittedAnswer `json:"answers"`
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// GET /api/quizzes?page=&limit=&fields=&sort=
func (h *Handlers) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := domain.QuizListOptions{
		Page:   1,
		Limit:  50,
		Fields: app.ParseFields(q.Get("fields")),
		Sort:   app.ParseSort(q.Get("sort")),
	}
	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			writeFailure(w, http.StatusBadRequest, "page must be a number")
			return
		}
		opts.Page = page
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeFailure(w, http.StatusBadRequest, "limit must be a number")
			return
		}
		opts.Limit = limit
	}

	quizzes, err := h.quizzes.ListQuizzes(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, "Quizzes retrieved successfully", quizzes)
}

// GET /api/quizzes/{quizId}
func (h *Handlers) GetQuiz(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "quizId")
	if !validID(id) {
		writeFailure(w, http.StatusBadRequest, "invalid quiz ID format")
		return
	}
	quiz, err := h.quizzes.GetQuiz(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Quiz retrieved successfully", quiz)
}

// POST /api/quizzes
func (h *Handlers) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var in app.CreateQuizInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	quiz, err := h.quizzes.CreateQuiz(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Quiz created successfully", quiz)
}

// GET /api/quizzes/stats
func (h *Handlers) QuizStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.quizzes.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Quiz stats retrieved successfully", stats)
}

// POST /api/questions
func (h *Handlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var in app.CreateQuestionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	question, err := h.questions.CreateQuestion(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Question created successfully", question)
}

// GET /api/questions/{id}
func (h *Handlers) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validID(id) {
		writeFailure(w, http.StatusBadRequest, "invalid question ID format")
		return
	}
	question, err := h.questions.GetQuestion(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Question retrieved successfully", question)
}

// GET /api/questions/quiz/{quizId}?includeAnswers=true
func (h *Handlers) QuestionsByQuiz(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizId")
	if !validID(quizID) {
		writeFailure(w, http.StatusBadRequest, "invalid quiz ID format")
		return
	}
	includeAnswers := r.URL.Query().Get("includeAnswers") == "true"
	questions, err := h.questions.QuestionsByQuiz(r.Context(), quizID, includeAnswers)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, "Questions retrieved successfully", questions)
}

// POST /api/questions/quiz/{quizId}/submit and /api/quizzes/{quizId}/questions/submit
func (h *Handlers) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizId")
	if !validID(quizID) {
		writeFailure(w, http.StatusBadRequest, "invalid quiz ID format")
		return
	}
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.questions.SubmitAnswers(r.Context(), quizID, req.Answers)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Quiz submitted successfully", result)
}
