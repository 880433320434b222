package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qflow/qflow-api/internal/adapter"
	"github.com/qflow/qflow-api/internal/api"
	"github.com/qflow/qflow-api/internal/domain/jobmodel"
	"github.com/qflow/qflow-api/internal/domain/qna"
	"github.com/qflow/qflow-api/internal/middleware"
	"github.com/qflow/qflow-api/internal/review"
)

// CreateProject creates a questionnaire project from parsed questions.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req api.CreateProjectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Questions) == 0 {
		writeError(w, http.StatusBadRequest, "questions are required")
		return
	}

	questions := make([]review.QuestionInput, 0, len(req.Questions))
	for _, q := range req.Questions {
		questions = append(questions, review.QuestionInput{
			RowIndex:     q.RowIndex,
			QuestionText: q.QuestionText,
		})
	}

	projectID, created, err := h.Review.CreateFromQuestions(r.Context(), middleware.UserID(r.Context()), req.OriginalName, questions)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.CreateProjectResponse{
		ProjectID:        projectID,
		CreatedQuestions: created,
	})
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit < 1 || limit > 100 {
		limit = 50
	}
	summaries, err := h.Review.ListProjects(r.Context(), middleware.UserID(r.Context()), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adapter.ToProjectsResponse(summaries))
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	details, err := h.Review.GetProjectDetails(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adapter.ToProjectDetailsResponse(details))
}

func (h *Handler) GetProjectQuestions(w http.ResponseWriter, r *http.Request) {
	status := qna.QuestionStatus(r.URL.Query().Get("status"))
	questions, err := h.Review.ListQuestions(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"), status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adapter.ToQuestionsResponse(questions))
}

// StartDraft validates the project and enqueues its draft batch job.
func (h *Handler) StartDraft(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserID(r.Context())
	project, err := h.Review.ValidateDraftStart(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	jobID, err := h.Jobs.Enqueue(r.Context(), jobmodel.JobTypeDraftQuestions, jobmodel.Payload{
		OwnerID:   ownerID,
		ProjectID: project.ID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, adapter.ToInitJobResponse(jobID))
}

func (h *Handler) GetReviewQueue(w http.ResponseWriter, r *http.Request) {
	queue, err := h.Review.GetReviewQueue(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adapter.ToReviewQueueResponse(queue))
}

// SubmitReview applies a human decision to one question.
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req api.ReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.Review.SubmitReview(
		r.Context(),
		middleware.UserID(r.Context()),
		chi.URLParam(r, "questionId"),
		qna.ReviewAction(req.Action),
		req.HumanAnswer,
		req.Notes,
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adapter.ToReviewActionResponse(result))
}

// ExportProject returns the finalized questionnaire once the review gate
// is clear.
func (h *Handler) ExportProject(w http.ResponseWriter, r *http.Request) {
	export, err := h.Review.ExportProject(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adapter.ToExportResponse(export))
}
