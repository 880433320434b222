// Package adapter maps domain types onto the API contracts.
package adapter

import (
	"fmt"

	"github.com/qflow/qflow-api/internal/api"
	"github.com/qflow/qflow-api/internal/domain/jobmodel"
	"github.com/qflow/qflow-api/internal/domain/qna"
	"github.com/qflow/qflow-api/internal/review"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		ID:        id,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToJobResponse(job jobmodel.Job) api.JobResponse {
	var errorPtr *api.JobErrorView
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobErrorView{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	var resultPtr *api.JobResultView
	if job.Result != nil {
		resultPtr = &api.JobResultView{
			DocumentsCreated: job.Result.DocumentsCreated,
			TotalChunks:      job.Result.TotalChunks,
			TotalEmbeddings:  job.Result.TotalEmbeddings,
			Processed:        job.Result.Processed,
			Drafted:          job.Result.Drafted,
			NeedsReview:      job.Result.NeedsReview,
			Approved:         job.Result.Approved,
			Failed:           job.Result.Failed,
		}
	}

	return api.JobResponse{
		ID:        job.ID,
		JobType:   string(job.JobType),
		Status:    string(job.Status),
		Progress:  job.Progress,
		Result:    resultPtr,
		Error:     errorPtr,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
	}
}

func ToDocumentsResponse(docs []qna.Document, total int64, page, limit int) api.DocumentsResponse {
	views := make([]api.DocumentView, 0, len(docs))
	for _, doc := range docs {
		views = append(views, api.DocumentView{
			ID:          doc.ID,
			Filename:    doc.Filename,
			ContentHash: doc.ContentHash,
			UploadDate:  doc.UploadDate,
			CreatedAt:   doc.CreatedAt,
			UpdatedAt:   doc.UpdatedAt,
		})
	}
	return api.DocumentsResponse{Data: views, Total: total, Page: page, Limit: limit}
}

func ToProjectsResponse(summaries []review.ProjectSummary) api.ProjectsResponse {
	items := make([]api.ProjectView, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, api.ProjectView{
			ID:           s.Project.ID,
			OriginalName: s.Project.Name,
			Status:       string(s.Project.Status),
			Counts:       toCountsView(s.Counts),
			CreatedAt:    s.Project.CreatedAt,
			UpdatedAt:    s.Project.UpdatedAt,
		})
	}
	return api.ProjectsResponse{Items: items}
}

func ToProjectDetailsResponse(details *review.ProjectDetails) api.ProjectDetailsResponse {
	return api.ProjectDetailsResponse{
		ID:             details.Project.ID,
		Status:         string(details.Project.Status),
		Counts:         toCountsView(details.Counts),
		TotalQuestions: details.TotalQuestions,
	}
}

func ToQuestionsResponse(questions []qna.QuestionItem) api.QuestionsResponse {
	views := make([]api.QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, api.QuestionView{
			ID:              q.ID,
			RowIndex:        q.RowIndex,
			QuestionText:    q.QuestionText,
			AIAnswer:        q.AIAnswer,
			HumanAnswer:     q.HumanAnswer,
			ConfidenceScore: q.ConfidenceScore,
			Status:          string(q.Status),
			CreatedAt:       q.CreatedAt,
			UpdatedAt:       q.UpdatedAt,
		})
	}
	return api.QuestionsResponse{Questions: views}
}

func ToReviewQueueResponse(queue []review.ReviewQueueItem) api.ReviewQueueResponse {
	views := make([]api.ReviewQueueItemView, 0, len(queue))
	for _, item := range queue {
		citations := make([]api.CitationView, 0, len(item.Citations))
		for _, c := range item.Citations {
			citations = append(citations, api.CitationView{
				ChunkID: c.ChunkID,
				Score:   c.Score,
				Snippet: c.Snippet,
			})
		}
		views = append(views, api.ReviewQueueItemView{
			ID:              item.Question.ID,
			RowIndex:        item.Question.RowIndex,
			QuestionText:    item.Question.QuestionText,
			AIAnswer:        item.Question.AIAnswer,
			ConfidenceScore: item.Question.ConfidenceScore,
			Citations:       citations,
			CreatedAt:       item.Question.CreatedAt,
			UpdatedAt:       item.Question.UpdatedAt,
		})
	}
	return api.ReviewQueueResponse{Questions: views}
}

func ToReviewActionResponse(result *review.ReviewResult) api.ReviewActionResponse {
	return api.ReviewActionResponse{
		QuestionID: result.QuestionID,
		Status:     string(result.Status),
		Action:     string(result.Action),
		Message:    result.Message,
	}
}

func ToExportResponse(export *review.Export) api.ExportResponse {
	items := make([]api.ExportItemView, 0, len(export.Items))
	for _, item := range export.Items {
		items = append(items, api.ExportItemView{
			RowIndex:     item.RowIndex,
			QuestionText: item.QuestionText,
			FinalAnswer:  item.FinalAnswer,
		})
	}
	return api.ExportResponse{
		ProjectID:   export.ProjectID,
		ProjectName: export.ProjectName,
		GeneratedAt: export.GeneratedAt,
		Items:       items,
	}
}

func toCountsView(counts map[qna.QuestionStatus]int) map[string]int {
	view := make(map[string]int, len(counts))
	for status, n := range counts {
		view[string(status)] = n
	}
	return view
}
