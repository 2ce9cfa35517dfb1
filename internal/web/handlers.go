package web

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claimboard/claimboard/internal/core"
	"github.com/claimboard/claimboard/internal/diff"
	"github.com/claimboard/claimboard/internal/logging"
	"github.com/claimboard/claimboard/internal/metrics"
	"github.com/claimboard/claimboard/internal/snapshot"
	"github.com/claimboard/claimboard/internal/tabular"
)

// UploadResponse summarizes one ingestion run for the user: the saved
// version (when any record survived), the row counts and the offending raw
// rows so the error summary can be re-displayed.
type UploadResponse struct {
	BatchID   string          `json:"batchId"`
	VersionID string          `json:"versionId,omitempty"`
	Rows      int             `json:"rows"`
	Errors    []core.RowError `json:"errors"`
	ErrorRows [][]string      `json:"errorRows"`
}

// handleUpload ingests a multipart spreadsheet upload (.xlsx/.xls/.csv/.tsv).
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)
	if err := r.ParseMultipartForm(s.cfg.Upload.MaxFileSize); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("parsing upload: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	matrix, err := tabular.FromFile(header.Filename, file)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, fmt.Sprintf("decoding %s: %v", header.Filename, err))
		return
	}

	s.ingest(w, r, matrix, "Upload "+header.Filename)
}

// handlePaste ingests tab/newline-delimited text pasted from a spreadsheet.
func (s *Server) handlePaste(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("reading body: %v", err))
		return
	}

	matrix := tabular.FromTSV(string(raw))
	s.ingest(w, r, matrix, "Pasted data "+time.Now().Format("2006-01-02 15:04"))
}

// ingest runs the pipeline over a raw matrix and saves a new version when
// at least one valid record came out. Malformed rows never fail the
// request; they are reported in the response summary.
func (s *Server) ingest(w http.ResponseWriter, r *http.Request, matrix [][]string, name string) {
	batchID := uuid.NewString()
	logger := logging.WithFields(r.Context(), "batch_id", batchID)

	res := core.Process(matrix)
	resp := UploadResponse{
		BatchID:   batchID,
		Rows:      len(res.Data),
		Errors:    res.Errors,
		ErrorRows: res.ErrorRows,
	}

	if len(res.Data) > 0 {
		v := s.store.SaveNewVersion(res.Data, snapshot.Metadata{
			Name: name,
			Rows: len(res.Data),
		})
		resp.VersionID = v.ID
	}

	logger.Info("ingestion finished",
		"rows", len(res.Data),
		"errors", len(res.Errors),
		"version_id", resp.VersionID,
	)
	writeJSON(w, resp)
}

// VersionSummary is the metadata-only view of a version used by the
// history listing.
type VersionSummary struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  snapshot.Metadata `json:"metadata"`
}

func (s *Server) handleListVersions(w http.ResponseWriter, r *http.Request) {
	history := s.store.History()
	out := make([]VersionSummary, 0, len(history))
	for _, v := range history {
		out = append(out, VersionSummary{ID: v.ID, Timestamp: v.Timestamp, Metadata: v.Metadata})
	}
	writeJSON(w, out)
}

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "versionID")
	v, err := s.store.Get(id)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, v)
}

// handleCompare diffs two explicitly named versions: ?current= is side A,
// ?previous= is side B. Defaults to the store's pointer pair when a
// parameter is omitted.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	curID := r.URL.Query().Get("current")
	prevID := r.URL.Query().Get("previous")

	if curID == "" {
		cur, ok := s.store.Current()
		if !ok {
			writeError(w, r, http.StatusNotFound, "no current version")
			return
		}
		curID = cur.ID
	}
	if prevID == "" {
		prev, ok := s.store.Previous()
		if !ok {
			writeError(w, r, http.StatusNotFound, "no previous version")
			return
		}
		prevID = prev.ID
	}

	cur, err := s.store.Get(curID)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}
	prev, err := s.store.Get(prevID)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, diff.Compare(cur.Data, prev.Data))
}

// currentAndPrevious returns the record sets behind the pointer pair.
// previous is nil when the store has no prior snapshot, which selects the
// metrics engine's self-comparison fallback.
func (s *Server) currentAndPrevious() ([]core.Claim, []core.Claim, bool) {
	cur, ok := s.store.Current()
	if !ok {
		return nil, nil, false
	}
	if prev, ok := s.store.Previous(); ok {
		return cur.Data, prev.Data, true
	}
	return cur.Data, nil, true
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	cur, prev, ok := s.currentAndPrevious()
	if !ok {
		writeError(w, r, http.StatusNotFound, "no current version")
		return
	}

	days := queryInt(r, "days", s.cfg.Metrics.WindowDays)
	writeJSON(w, metrics.KPIs(cur, prev, days, time.Now()))
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	cur, ok := s.store.Current()
	if !ok {
		writeError(w, r, http.StatusNotFound, "no current version")
		return
	}

	if month := r.URL.Query().Get("month"); month != "" {
		writeJSON(w, metrics.ClaimsInMonth(cur.Data, month))
		return
	}
	writeJSON(w, metrics.MonthlyAggregates(cur.Data))
}

func (s *Server) handleRecentlyModified(w http.ResponseWriter, r *http.Request) {
	cur, ok := s.store.Current()
	if !ok {
		writeError(w, r, http.StatusNotFound, "no current version")
		return
	}

	days := queryInt(r, "days", s.cfg.Metrics.WindowDays)
	writeJSON(w, metrics.RecentlyModified(cur.Data, days, time.Now()))
}

func (s *Server) handleTopClients(w http.ResponseWriter, r *http.Request) {
	cur, ok := s.store.Current()
	if !ok {
		writeError(w, r, http.StatusNotFound, "no current version")
		return
	}

	days := queryInt(r, "days", s.cfg.Metrics.WindowDays)
	limit := queryInt(r, "limit", s.cfg.Metrics.TopClientsLimit)
	writeJSON(w, metrics.TopClients(cur.Data, days, limit, time.Now()))
}

// queryInt reads a positive integer query parameter, falling back to def
// for missing or malformed values.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
