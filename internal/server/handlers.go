package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/stipsportal/docintel/internal/common"
	"github.com/stipsportal/docintel/internal/export"
	"github.com/stipsportal/docintel/internal/ingest"
	"github.com/stipsportal/docintel/internal/pipeline"
)

// maxUploadBytes caps a whole multipart batch. Scanned PDFs run a few MB
// each; 256MB leaves room for large batches without letting one request
// exhaust memory.
const maxUploadBytes = 256 << 20

type batchResponse struct {
	Summary []pipeline.SummaryEntry   `json:"summary"`
	Records map[string]map[string]any `json:"records"`
}

func (s *Server) handleProcessBatch(w http.ResponseWriter, r *http.Request) {
	files, err := s.readBatch(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(files) == 0 {
		s.respondError(w, http.StatusBadRequest, "no documents in request")
		return
	}

	results, summary := s.batch.Run(r.Context(), files)

	resp := batchResponse{
		Summary: summary,
		Records: make(map[string]map[string]any, len(results)),
	}
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		resp.Records[res.Result.JSONName] = res.Result.Record
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSummaryXLSX(w http.ResponseWriter, r *http.Request) {
	files, err := s.readBatch(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(files) == 0 {
		s.respondError(w, http.StatusBadRequest, "no documents in request")
		return
	}

	_, summary := s.batch.Run(r.Context(), files)

	book, err := export.SummaryXLSX(summary, s.logger)
	if err != nil {
		s.logger.Error("server.summary_xlsx.failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="Document_Summary.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(book)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readBatch extracts the uploaded documents from a multipart request, in
// wire order so batch output order matches what the client sent. Every file
// part is accepted regardless of field name; unsupported extensions are
// rejected up front so the caller learns about them before any processing.
func (s *Server) readBatch(r *http.Request) ([]pipeline.BatchFile, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("invalid multipart request: %w", err)
	}
	var files []pipeline.BatchFile
	var total int64
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read multipart request: %w", err)
		}
		if part.FileName() == "" {
			continue
		}
		name := filepath.Base(part.FileName())
		if !ingest.Allowed(name) {
			return nil, fmt.Errorf("%w: %s", common.ErrUnsupported, name)
		}
		data, err := io.ReadAll(io.LimitReader(part, maxUploadBytes-total+1))
		_ = part.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		total += int64(len(data))
		if total > maxUploadBytes {
			return nil, fmt.Errorf("batch exceeds %d bytes", int64(maxUploadBytes))
		}
		files = append(files, pipeline.BatchFile{Filename: name, Data: data})
	}
	return files, nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
