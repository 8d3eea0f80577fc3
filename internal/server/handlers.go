package server

import (
	"cmp"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/muzamilsyed/aynstyn/internal/enrichment"
	"github.com/muzamilsyed/aynstyn/internal/language"
	"github.com/muzamilsyed/aynstyn/internal/pipeline"
	"github.com/muzamilsyed/aynstyn/internal/timeline"
	"github.com/muzamilsyed/aynstyn/internal/types"
)

// AssessRequest represents the request body for /assess
type AssessRequest struct {
	Subject     string `json:"subject" validate:"required,max=200"`
	Input       string `json:"input,omitempty" validate:"required_without=Audio,max=20000"`
	Audio       string `json:"audio,omitempty"` // base64-encoded audio bytes
	AudioFormat string `json:"audio_format,omitempty"`
	SessionID   string `json:"session_id,omitempty" validate:"omitempty,max=128"`
}

// AssessResponse represents the response for /assess
type AssessResponse struct {
	*types.AssessmentResult
	EnhancedFeedback string `json:"enhanced_feedback,omitempty"`
}

// ExplainTopicRequest represents the request body for /topics/explain
type ExplainTopicRequest struct {
	Subject  string         `json:"subject" validate:"required,max=200"`
	Topic    types.TopicRef `json:"topic"`
	Language string         `json:"language,omitempty"`
}

// TimelineResponse represents the response for /timeline
type TimelineResponse struct {
	Subject  string                `json:"subject"`
	Language string                `json:"language"`
	Events   []types.TimelineEvent `json:"events"`
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// handleAssess runs the full assessment pipeline for one submission
func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req AssessRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	assessment := types.AssessmentRequest{
		Subject: req.Subject,
		Input:   req.Input,
		Kind:    types.InputText,
	}
	if req.Audio != "" {
		if s.transcriber == nil {
			s.errorResponse(w, http.StatusServiceUnavailable, "audio submissions are not enabled")
			return
		}
		audio, err := base64.StdEncoding.DecodeString(req.Audio)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "audio must be base64-encoded")
			return
		}
		assessment.Audio = audio
		assessment.AudioFormat = req.AudioFormat
		assessment.Kind = types.InputAudio
	}

	outcome, err := pipeline.Assess(r.Context(), pipeline.Options{
		Client:      s.client,
		Transcriber: s.transcriber,
		Store:       s.db,
		Sessions:    s.sessions,
		SessionID:   req.SessionID,
	}, assessment)
	if err != nil {
		log.Printf("Assessment failed for subject %q: %v", req.Subject, err)
		s.errorResponse(w, HTTPStatus(err), UserMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, AssessResponse{
		AssessmentResult: outcome.Result,
		EnhancedFeedback: outcome.Summary.EnhancedFeedback,
	})
}

// handleExplainTopic returns an on-demand explanation for a single topic
func (s *Server) handleExplainTopic(w http.ResponseWriter, r *http.Request) {
	var req ExplainTopicRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	if req.Topic.Name == "" {
		s.errorResponse(w, http.StatusBadRequest, "topic.name is required")
		return
	}

	lang := language.Normalize(req.Language)
	enriched := enrichment.ExplainTopic(r.Context(), s.client, req.Subject, req.Topic, lang)
	s.jsonResponse(w, http.StatusOK, enriched)
}

// handleTimeline returns a six-event historical timeline for a subject.
// The response language resolves in order: explicit lang parameter, the
// session's last detected language, the Accept-Language header, English.
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	subject := strings.TrimSpace(r.URL.Query().Get("subject"))
	if subject == "" {
		s.errorResponse(w, http.StatusBadRequest, "subject is required")
		return
	}

	lang := s.resolveLanguage(r)
	events := timeline.Synthesize(r.Context(), s.client, subject, lang)
	s.jsonResponse(w, http.StatusOK, TimelineResponse{
		Subject:  subject,
		Language: lang,
		Events:   events,
	})
}

// resolveLanguage applies the timeline language cascade for a request.
func (s *Server) resolveLanguage(r *http.Request) string {
	query := r.URL.Query()
	if explicit := cmp.Or(query.Get("lang"), query.Get("language")); explicit != "" {
		return language.Normalize(explicit)
	}
	if sessionID := query.Get("session_id"); sessionID != "" {
		if lang, ok := s.sessions.LastLanguage(r.Context(), sessionID); ok {
			return language.Normalize(lang)
		}
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		if tag := firstLanguageTag(header); tag != "" {
			return language.Normalize(tag)
		}
	}
	return language.Default
}

// firstLanguageTag extracts the primary tag from an Accept-Language header.
// Quality values are ignored; the first listed language wins.
func firstLanguageTag(header string) string {
	first, _, _ := strings.Cut(header, ",")
	tag, _, _ := strings.Cut(strings.TrimSpace(first), ";")
	if tag == "*" {
		return ""
	}
	return tag
}

// handleGetAssessment returns a stored assessment by ID
func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		err := &ErrStoreUnavailable{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid assessment ID format")
		return
	}

	result, err := s.db.GetAssessment(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if result == nil {
		notFound := &ErrAssessmentNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleListAssessments returns recent stored assessments
func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		err := &ErrStoreUnavailable{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(parsed, 100)
	}

	results, err := s.db.ListAssessments(r.Context(), r.URL.Query().Get("subject"), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"assessments": results})
}
