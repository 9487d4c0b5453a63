package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/dgallion1/docsift/internal/block"
	"github.com/dgallion1/docsift/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handleRank accepts a persona, a task and a set of documents, and
// queues an asynchronous collection ranking job.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 4*s.cfg.MaxUploadBytes)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	persona := r.FormValue("persona")
	if persona == "" {
		jsonError(w, "persona is required", http.StatusBadRequest)
		return
	}
	task := r.FormValue("task")
	if task == "" {
		jsonError(w, "task is required", http.StatusBadRequest)
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	var files []pipeline.NamedFile
	for _, header := range headers {
		filename := sanitizeFilename(header.Filename)
		if !block.IsSupportedExtension(filename) {
			jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
			return
		}
		f, err := header.Open()
		if err != nil {
			jsonError(w, "failed to open "+filename, http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil {
			jsonError(w, "failed to read "+filename, http.StatusInternalServerError)
			return
		}
		if int64(len(data)) > s.cfg.MaxUploadBytes {
			jsonError(w, fmt.Sprintf("%s exceeds max size (%d bytes)", filename, s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		files = append(files, pipeline.NamedFile{Name: filename, Data: data})
	}

	job := pipeline.NewJob(persona, task, files)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	// A worker may already be mutating the job; respond from a copy.
	snap := job.Snapshot()
	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":     snap.ID,
		"status":     snap.Status,
		"status_url": fmt.Sprintf("/api/rank/%s/status", snap.ID),
		"result_url": fmt.Sprintf("/api/rank/%s/result", snap.ID),
	})
}

func (s *Server) handleRankStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

func (s *Server) handleRankResult(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	result := job.Result()
	if result == nil {
		snap := job.Snapshot()
		writeJSON(w, http.StatusAccepted, map[string]any{
			"job_id": snap.ID,
			"status": snap.Status,
		})
		return
	}
	writeJSON(w, http.StatusOK, result)
}
