// Package review owns the questionnaire project lifecycle: creating
// projects from parsed questions, the review queue, human decisions and
// the export gate.
package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qflow/qflow-api/internal/config"
	"github.com/qflow/qflow-api/internal/domain/qna"
	"github.com/qflow/qflow-api/pkg/logging"
)

// QuestionInput is one raw question row from an uploaded questionnaire.
type QuestionInput struct {
	RowIndex     int    `json:"rowIndex"`
	QuestionText string `json:"questionText"`
}

// ProjectSummary is one project in a listing, with its per-status counts.
type ProjectSummary struct {
	Project qna.Project
	Counts  map[qna.QuestionStatus]int
}

// ProjectDetails is the aggregate view of one project.
type ProjectDetails struct {
	Project        qna.Project
	Counts         map[qna.QuestionStatus]int
	TotalQuestions int
}

// ReviewQueueItem is a question awaiting review together with its
// citations, best-scoring citation first.
type ReviewQueueItem struct {
	Question  qna.QuestionItem
	Citations []qna.AnswerCitation
}

// ReviewResult reports the applied review decision.
type ReviewResult struct {
	QuestionID string
	Status     qna.QuestionStatus
	Action     qna.ReviewAction
	Message    string
}

// ExportItem is one finalized row of an exported questionnaire.
type ExportItem struct {
	RowIndex     int    `json:"rowIndex"`
	QuestionText string `json:"questionText"`
	FinalAnswer  string `json:"finalAnswer"`
}

// Export is the finalized questionnaire, rows in ascending order.
type Export struct {
	ProjectID   string       `json:"projectId"`
	ProjectName string       `json:"projectName"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Items       []ExportItem `json:"items"`
}

type Service struct {
	projects  qna.ProjectStore
	questions qna.QuestionStore
	citations qna.CitationStore
	events    qna.ReviewEventStore
	logger    *logging.Logger
}

func NewService(
	projects qna.ProjectStore,
	questions qna.QuestionStore,
	citations qna.CitationStore,
	events qna.ReviewEventStore,
) *Service {
	return &Service{
		projects:  projects,
		questions: questions,
		citations: citations,
		events:    events,
		logger:    logging.NewLogger("review"),
	}
}

// CreateFromQuestions creates a project and its question items. Rows are
// normalized first: whitespace-trimmed text, rowIndex >= 1; rows failing
// either check are dropped, not rejected. Returns the project id and the
// number of questions actually created.
func (s *Service) CreateFromQuestions(ctx context.Context, ownerID, name string, questions []QuestionInput) (string, int, error) {
	if name == "" {
		name = "questionnaire"
	}

	project := &qna.Project{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		Name:            name,
		Status:          qna.ProjectQueued,
		ReviewThreshold: config.DefaultReviewThreshold,
		AutoApprove:     config.DefaultAutoApprove,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return "", 0, fmt.Errorf("create project: %w", err)
	}

	items := make([]qna.QuestionItem, 0, len(questions))
	for _, q := range questions {
		text := strings.TrimSpace(q.QuestionText)
		if q.RowIndex < 1 || text == "" {
			continue
		}
		items = append(items, qna.QuestionItem{
			ID:           uuid.NewString(),
			ProjectID:    project.ID,
			RowIndex:     q.RowIndex,
			QuestionText: text,
			Status:       qna.StatusPending,
		})
	}
	if len(items) > 0 {
		if err := s.questions.CreateBatch(ctx, items); err != nil {
			return "", 0, fmt.Errorf("create questions: %w", err)
		}
	}

	if err := s.projects.UpdateStatus(ctx, project.ID, qna.ProjectProcessing); err != nil {
		return "", 0, fmt.Errorf("update project status: %w", err)
	}

	s.logger.Info("project created", "projectId", project.ID, "questions", len(items))
	return project.ID, len(items), nil
}

// ListProjects returns the owner's projects, newest first, each with its
// question counts.
func (s *Service) ListProjects(ctx context.Context, ownerID string, limit int) ([]ProjectSummary, error) {
	projects, err := s.projects.ListByOwner(ctx, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	summaries := make([]ProjectSummary, 0, len(projects))
	for _, project := range projects {
		counts, err := s.questions.CountByStatus(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("count questions for project %s: %w", project.ID, err)
		}
		summaries = append(summaries, ProjectSummary{Project: project, Counts: fillCounts(counts)})
	}
	return summaries, nil
}

// GetProjectDetails returns the project with per-status counts and the
// question total.
func (s *Service) GetProjectDetails(ctx context.Context, ownerID, projectID string) (*ProjectDetails, error) {
	project, err := s.loadOwnedProject(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	counts, err := s.questions.CountByStatus(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	counts = fillCounts(counts)

	total := 0
	for _, n := range counts {
		total += n
	}
	return &ProjectDetails{Project: *project, Counts: counts, TotalQuestions: total}, nil
}

// ListQuestions returns the project's questions in row order, optionally
// filtered to one status.
func (s *Service) ListQuestions(ctx context.Context, ownerID, projectID string, status qna.QuestionStatus) ([]qna.QuestionItem, error) {
	if _, err := s.loadOwnedProject(ctx, ownerID, projectID); err != nil {
		return nil, err
	}
	if status != "" && !validStatus(status) {
		return nil, fmt.Errorf("%w: unknown status filter %q", qna.ErrValidation, status)
	}
	return s.questions.ListByProject(ctx, projectID, status)
}

// ValidateDraftStart checks that a draft batch may be started for the
// project and returns it. Drafting is idempotent, so QUEUED and
// PROCESSING are both acceptable starting states.
func (s *Service) ValidateDraftStart(ctx context.Context, ownerID, projectID string) (*qna.Project, error) {
	project, err := s.loadOwnedProject(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	if project.Status != qna.ProjectProcessing && project.Status != qna.ProjectQueued {
		return nil, fmt.Errorf("%w: project status must be PROCESSING or QUEUED, but is %s",
			qna.ErrValidation, project.Status)
	}
	return project, nil
}

// GetReviewQueue returns the NEEDS_REVIEW questions of the project in row
// order, each with its citations sorted by descending score.
func (s *Service) GetReviewQueue(ctx context.Context, ownerID, projectID string) ([]ReviewQueueItem, error) {
	if _, err := s.loadOwnedProject(ctx, ownerID, projectID); err != nil {
		return nil, err
	}

	questions, err := s.questions.ListByProject(ctx, projectID, qna.StatusNeedsReview)
	if err != nil {
		return nil, fmt.Errorf("list review queue: %w", err)
	}

	queue := make([]ReviewQueueItem, 0, len(questions))
	for _, question := range questions {
		citations, err := s.citations.ListByQuestion(ctx, question.ID)
		if err != nil {
			return nil, fmt.Errorf("list citations for question %s: %w", question.ID, err)
		}
		queue = append(queue, ReviewQueueItem{Question: question, Citations: citations})
	}
	return queue, nil
}

// SubmitReview applies a human decision to a question in NEEDS_REVIEW.
// Preconditions are checked in a fixed order so the caller always gets
// the same error for the same broken state: existence, ownership, status,
// then action-specific requirements.
func (s *Service) SubmitReview(ctx context.Context, reviewerID, questionID string, action qna.ReviewAction, humanAnswer, notes *string) (*ReviewResult, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("%w: invalid review action: %s", qna.ErrValidation, action)
	}

	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("load question: %w", err)
	}
	if question == nil {
		return nil, fmt.Errorf("%w: question not found", qna.ErrNotFound)
	}

	project, err := s.projects.GetByID(ctx, question.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	if project == nil || project.OwnerID != reviewerID {
		return nil, fmt.Errorf("%w: you do not have access to this question", qna.ErrForbidden)
	}

	if question.Status != qna.StatusNeedsReview {
		return nil, qna.ErrWrongStatus(question.Status)
	}

	if action == qna.ActionEditApprove && (humanAnswer == nil || strings.TrimSpace(*humanAnswer) == "") {
		return nil, fmt.Errorf("%w: humanAnswer is required for EDIT_APPROVE action", qna.ErrValidation)
	}
	if action == qna.ActionApprove && (question.AIAnswer == nil || strings.TrimSpace(*question.AIAnswer) == "") {
		return nil, fmt.Errorf("%w: cannot APPROVE: aiAnswer is missing", qna.ErrValidation)
	}

	var newStatus qna.QuestionStatus
	var savedAnswer *string
	var message string
	switch action {
	case qna.ActionApprove:
		// The AI answer becomes final untouched.
		newStatus = qna.StatusApproved
		message = "Question approved successfully"
	case qna.ActionEditApprove:
		// The human answer is recorded alongside; AIAnswer is preserved.
		newStatus = qna.StatusApproved
		savedAnswer = humanAnswer
		message = "Question edited and approved successfully"
	case qna.ActionReject:
		newStatus = qna.StatusRejected
		message = "Question rejected successfully"
	}

	if err := s.questions.SaveReview(ctx, questionID, newStatus, savedAnswer); err != nil {
		return nil, fmt.Errorf("save review: %w", err)
	}

	event := &qna.ReviewEvent{
		ID:             uuid.NewString(),
		QuestionItemID: questionID,
		ReviewerID:     reviewerID,
		Action:         action,
		Notes:          notes,
	}
	if err := s.events.Append(ctx, event); err != nil {
		return nil, fmt.Errorf("append review event: %w", err)
	}

	s.logger.Info("review applied", "questionId", questionID, "action", action, "status", newStatus)
	return &ReviewResult{
		QuestionID: questionID,
		Status:     newStatus,
		Action:     action,
		Message:    message,
	}, nil
}

// ExportProject finalizes the questionnaire. The export gate: any
// question still in NEEDS_REVIEW blocks the export with a conflict. The
// final answer per row prefers the human answer over the AI answer, and
// falls back to empty.
func (s *Service) ExportProject(ctx context.Context, ownerID, projectID string) (*Export, error) {
	project, err := s.loadOwnedProject(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	counts, err := s.questions.CountByStatus(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	if counts[qna.StatusNeedsReview] > 0 {
		return nil, fmt.Errorf("%w: project has questions that need review; complete review before export",
			qna.ErrConflict)
	}

	questions, err := s.questions.ListByProject(ctx, projectID, "")
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	items := make([]ExportItem, 0, len(questions))
	for _, question := range questions {
		items = append(items, ExportItem{
			RowIndex:     question.RowIndex,
			QuestionText: question.QuestionText,
			FinalAnswer:  finalAnswer(question),
		})
	}

	s.logger.Info("project exported", "projectId", projectID, "rows", len(items))
	return &Export{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		GeneratedAt: time.Now(),
		Items:       items,
	}, nil
}

// loadOwnedProject fetches a project and enforces ownership. Existence is
// checked before ownership so a missing project is a 404, not a 403.
func (s *Service) loadOwnedProject(ctx context.Context, ownerID, projectID string) (*qna.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	if project == nil {
		return nil, fmt.Errorf("%w: project not found", qna.ErrNotFound)
	}
	if project.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: you do not have access to this project", qna.ErrForbidden)
	}
	return project, nil
}

func finalAnswer(question qna.QuestionItem) string {
	if question.HumanAnswer != nil {
		return *question.HumanAnswer
	}
	if question.AIAnswer != nil {
		return *question.AIAnswer
	}
	return ""
}

// fillCounts guarantees every status key is present, zero or not.
func fillCounts(counts map[qna.QuestionStatus]int) map[qna.QuestionStatus]int {
	if counts == nil {
		counts = make(map[qna.QuestionStatus]int, len(qna.AllQuestionStatuses))
	}
	for _, status := range qna.AllQuestionStatuses {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}
	return counts
}

func validStatus(status qna.QuestionStatus) bool {
	for _, s := range qna.AllQuestionStatuses {
		if s == status {
			return true
		}
	}
	return false
}
