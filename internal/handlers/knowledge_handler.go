package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/qflow/qflow-api/internal/adapter"
	"github.com/qflow/qflow-api/internal/api"
	"github.com/qflow/qflow-api/internal/domain/jobmodel"
	"github.com/qflow/qflow-api/internal/middleware"
)

const maxUploadSize = 32 << 20 // 32mb

// PostFeed accepts raw markdown text and enqueues a knowledge feed job.
func (h *Handler) PostFeed(w http.ResponseWriter, r *http.Request) {
	var req api.FeedRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	jobID, err := h.Jobs.Enqueue(r.Context(), jobmodel.JobTypeKnowledgeFeed, jobmodel.Payload{
		OwnerID:   middleware.UserID(r.Context()),
		Text:      req.Text,
		ChunkSize: req.ChunkSize,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, adapter.ToInitJobResponse(jobID))
}

// PostFeedUpload accepts a multipart document upload, stages it on disk
// and enqueues a knowledge feed job pointing at the file.
func (h *Handler) PostFeedUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not retrieve file")
		return
	}
	defer fileReader.Close()

	targetDir, err := stagingDirectory()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(fileMetadata.Filename))
	tempFilePath := filepath.Join(targetDir, filename)
	destination, err := os.Create(tempFilePath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	defer destination.Close()
	if _, err := io.Copy(destination, fileReader); err != nil {
		writeError(w, http.StatusInternalServerError, "write error")
		return
	}

	jobID, err := h.Jobs.Enqueue(r.Context(), jobmodel.JobTypeKnowledgeFeed, jobmodel.Payload{
		OwnerID:    middleware.UserID(r.Context()),
		SourcePath: tempFilePath,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, adapter.ToInitJobResponse(jobID))
}

// GetDocuments lists the caller's documents, newest upload first.
func (h *Handler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	docs, total, err := h.Documents.ListByOwner(r.Context(), middleware.UserID(r.Context()), limit, (page-1)*limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adapter.ToDocumentsResponse(docs, total, page, limit))
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func stagingDirectory() (string, error) {
	root, err := os.Getwd()
	if err != nil {
		return "", err
	}
	targetDir := filepath.Join(root, "temporary_data")
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return "", err
	}
	return targetDir, nil
}
