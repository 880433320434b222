package qna

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from QuestionStatus
		to   QuestionStatus
		want bool
	}{
		{"Pending_To_Drafted", StatusPending, StatusDrafted, true},
		{"Pending_To_NeedsReview", StatusPending, StatusNeedsReview, true},
		{"Pending_To_Approved", StatusPending, StatusApproved, true},
		{"Pending_To_Failed", StatusPending, StatusFailed, true},
		{"Pending_To_Exported", StatusPending, StatusExported, false},
		{"NeedsReview_To_Approved", StatusNeedsReview, StatusApproved, true},
		{"NeedsReview_To_Rejected", StatusNeedsReview, StatusRejected, true},
		{"NeedsReview_To_Drafted", StatusNeedsReview, StatusDrafted, false},
		{"Approved_To_Exported", StatusApproved, StatusExported, true},
		{"Rejected_To_Exported", StatusRejected, StatusExported, true},
		{"Drafted_Is_Terminal", StatusDrafted, StatusApproved, false},
		{"Failed_Is_Terminal", StatusFailed, StatusPending, false},
		{"Exported_Is_Terminal", StatusExported, StatusApproved, false},
		{"Unknown_Status", QuestionStatus("BOGUS"), StatusApproved, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestReviewActionValid(t *testing.T) {
	for _, action := range []ReviewAction{ActionApprove, ActionEditApprove, ActionReject} {
		if !action.Valid() {
			t.Errorf("%s should be valid", action)
		}
	}
	for _, action := range []ReviewAction{"", "approve", "ESCALATE"} {
		if action.Valid() {
			t.Errorf("%q should be invalid", action)
		}
	}
}

func TestErrWrongStatus(t *testing.T) {
	err := ErrWrongStatus(StatusDrafted)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("ErrWrongStatus must wrap ErrConflict, got %v", err)
	}
	want := "conflict: not in NEEDS_REVIEW status, current status: DRAFTED"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}
