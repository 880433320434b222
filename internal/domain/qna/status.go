package qna

import (
	"errors"
	"fmt"
)

type ProjectStatus string

const (
	ProjectQueued     ProjectStatus = "QUEUED"
	ProjectProcessing ProjectStatus = "PROCESSING"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectFailed     ProjectStatus = "FAILED"
)

// QuestionStatus is the closed set of question lifecycle states. Illegal
// transitions are rejected by CanTransition rather than compared as raw
// strings at call sites.
type QuestionStatus string

const (
	StatusPending     QuestionStatus = "PENDING"
	StatusDrafted     QuestionStatus = "DRAFTED"
	StatusNeedsReview QuestionStatus = "NEEDS_REVIEW"
	StatusApproved    QuestionStatus = "APPROVED"
	StatusRejected    QuestionStatus = "REJECTED"
	StatusFailed      QuestionStatus = "FAILED"
	StatusExported    QuestionStatus = "EXPORTED"
)

// AllQuestionStatuses lists every state once, for groupBy count maps.
var AllQuestionStatuses = []QuestionStatus{
	StatusPending,
	StatusDrafted,
	StatusNeedsReview,
	StatusApproved,
	StatusRejected,
	StatusFailed,
	StatusExported,
}

// questionTransitions is the single source of truth for the lifecycle.
// PENDING moves only via the draft engine; NEEDS_REVIEW only via the
// review workflow; EXPORTED only via the export path. DRAFTED has no
// outbound transition here: the reviewed behavior never promotes it, so
// none is invented.
var questionTransitions = map[QuestionStatus][]QuestionStatus{
	StatusPending:     {StatusDrafted, StatusNeedsReview, StatusApproved, StatusFailed},
	StatusNeedsReview: {StatusApproved, StatusRejected},
	StatusApproved:    {StatusExported},
	StatusRejected:    {StatusExported},
	StatusDrafted:     {},
	StatusFailed:      {},
	StatusExported:    {},
}

// CanTransition reports whether from -> to is a legal lifecycle move.
func CanTransition(from, to QuestionStatus) bool {
	for _, next := range questionTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type ReviewAction string

const (
	ActionApprove     ReviewAction = "APPROVE"
	ActionEditApprove ReviewAction = "EDIT_APPROVE"
	ActionReject      ReviewAction = "REJECT"
)

// Valid reports whether the action is one of the three review verbs.
func (a ReviewAction) Valid() bool {
	switch a {
	case ActionApprove, ActionEditApprove, ActionReject:
		return true
	}
	return false
}

// Error taxonomy. Handlers map these to HTTP status codes; services wrap
// them with context via fmt.Errorf("%w").
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

// ErrWrongStatus builds the conflict error for a review submitted against
// a question outside NEEDS_REVIEW.
func ErrWrongStatus(current QuestionStatus) error {
	return fmt.Errorf("%w: not in NEEDS_REVIEW status, current status: %s", ErrConflict, current)
}
