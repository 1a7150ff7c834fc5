package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/poiesic/talentscout/core"
	"github.com/poiesic/talentscout/search"
	"github.com/poiesic/talentscout/storage"
)

// userIDHeader identifies the caller. Searches without it are anonymous;
// history operations require it.
const userIDHeader = "X-User-ID"

type searchRequest struct {
	Query          string   `json:"query"`
	Role           string   `json:"role"`
	ContentType    string   `json:"contentType"`
	Subjects       []string `json:"subjects"`
	Styles         []string `json:"styles"`
	MaxBudget      *float64 `json:"maxBudget,omitempty"`
	HasDocuments   *bool    `json:"hasDocuments,omitempty"`
	DocumentsCount *int     `json:"documentsCount,omitempty"`
	Page           int      `json:"page"`
	Limit          int      `json:"limit"`
}

type creatorDTO struct {
	Id             uint64   `json:"id"`
	Name           string   `json:"name"`
	Role           string   `json:"role"`
	Location       string   `json:"location,omitempty"`
	DayRate        float64  `json:"day_rate"`
	Subjects       []string `json:"subjects,omitempty"`
	Styles         []string `json:"styles,omitempty"`
	DocumentsCount int      `json:"documents_count"`
}

type projectScoreDTO struct {
	ProjectId   uint64  `json:"project_id"`
	VectorScore float32 `json:"vector_score"`
	VideoScore  float32 `json:"video_score"`
	FinalScore  float32 `json:"final_score"`
}

type creatorResultDTO struct {
	Creator  creatorDTO        `json:"creator"`
	Score    float32           `json:"score"`
	Projects []projectScoreDTO `json:"projects"`
}

type searchResponseDTO struct {
	Results     []creatorResultDTO `json:"results"`
	Page        int                `json:"page"`
	Limit       int                `json:"limit"`
	Total       int                `json:"total"`
	Query       string             `json:"query"`
	ContentType string             `json:"content_type"`
	Degraded    bool               `json:"degraded,omitempty"`
}

type historyEntryDTO struct {
	Id           string    `json:"id"`
	Query        string    `json:"query"`
	ContentType  string    `json:"content_type"`
	ResultsCount int       `json:"results_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type popularClusterDTO struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

type popularMatchDTO struct {
	Query      string  `json:"query"`
	Count      int     `json:"count"`
	Similarity float32 `json:"similarity"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	query := &core.Query{
		Text:           req.Query,
		Role:           req.Role,
		ContentType:    core.ContentType(req.ContentType),
		Subjects:       req.Subjects,
		Styles:         req.Styles,
		MaxBudget:      req.MaxBudget,
		HasDocuments:   req.HasDocuments,
		DocumentsCount: req.DocumentsCount,
		Page:           req.Page,
		Limit:          req.Limit,
	}

	response, err := s.engine.Search(r.Context(), r.Header.Get(userIDHeader), query)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSearchResponseDTO(response))
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	userId, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	page := queryInt(r, "page", core.DefaultPage)
	limit := queryInt(r, "limit", core.DefaultLimit)

	entries, err := s.history.ListEntries(r.Context(), userId, page, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	dtos := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, historyEntryDTO{
			Id:           entry.Id,
			Query:        entry.Query,
			ContentType:  string(entry.ContentType),
			ResultsCount: entry.ResultsCount,
			CreatedAt:    entry.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": dtos, "page": page, "limit": limit})
}

func (s *Server) handleDeleteHistoryEntry(w http.ResponseWriter, r *http.Request) {
	userId, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	entryId := chi.URLParam(r, "id")
	if err := s.history.DeleteEntry(r.Context(), userId, entryId); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	userId, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	if err := s.history.ClearEntries(r.Context(), userId); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	var clusters []popularClusterDTO
	if s.clusterer != nil {
		for _, cluster := range s.clusterer.TopPopular(limit) {
			clusters = append(clusters, popularClusterDTO{Query: cluster.Query, Count: cluster.Count})
		}
	}
	if clusters == nil {
		clusters = []popularClusterDTO{}
	}

	body := map[string]any{"clusters": clusters}

	// ?q= probes the cluster set for the closest known query.
	if probe := r.URL.Query().Get("q"); probe != "" && s.clusterer != nil {
		var vector []float32
		if s.embedder != nil {
			// A failed embed degrades to the text-only probe.
			vector, _ = s.embedder.EmbedQuery(r.Context(), probe)
		}
		if match := s.clusterer.Match(probe, vector); match != nil {
			body["match"] = popularMatchDTO{
				Query:      match.Query,
				Count:      match.Count,
				Similarity: match.Similarity,
			}
		}
	}

	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requireUser extracts the caller identity, rejecting the request when the
// header is missing.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userId := r.Header.Get(userIDHeader)
	if userId == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "X-User-ID header required"})
		return "", false
	}
	return userId, true
}

// writeError maps domain errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrInvalidQuery):
		status = http.StatusBadRequest
	case errors.Is(err, storage.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, search.ErrRetrievalFailed):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func queryInt(r *http.Request, name string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func toSearchResponseDTO(response *core.SearchResponse) searchResponseDTO {
	results := make([]creatorResultDTO, 0, len(response.Results))
	for _, result := range response.Results {
		projects := make([]projectScoreDTO, 0, len(result.Projects))
		for _, ps := range result.Projects {
			projects = append(projects, projectScoreDTO{
				ProjectId:   uint64(ps.ProjectId),
				VectorScore: ps.VectorScore,
				VideoScore:  ps.VideoScore,
				FinalScore:  ps.FinalScore,
			})
		}
		results = append(results, creatorResultDTO{
			Creator: creatorDTO{
				Id:             uint64(result.Creator.Id),
				Name:           result.Creator.Name,
				Role:           result.Creator.Role,
				Location:       result.Creator.Location,
				DayRate:        result.Creator.DayRate,
				Subjects:       result.Creator.Subjects,
				Styles:         result.Creator.Styles,
				DocumentsCount: result.Creator.DocumentsCount,
			},
			Score:    result.Score,
			Projects: projects,
		})
	}

	return searchResponseDTO{
		Results:     results,
		Page:        response.Page,
		Limit:       response.Limit,
		Total:       response.Total,
		Query:       response.Query,
		ContentType: string(response.ContentType),
		Degraded:    response.Degraded,
	}
}
