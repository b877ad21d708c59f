package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/PabloGalante/career-companion/internal/app/conversation"
	"github.com/PabloGalante/career-companion/internal/domain"
	"github.com/PabloGalante/career-companion/internal/i18n"
)

// maxUploadBytes bounds audio and document uploads.
const maxUploadBytes = 20 << 20

type Server struct {
	svc *conversation.Service
}

// NewServer exposes the conversation to a local browser front-end.
func NewServer(svc *conversation.Service) http.Handler {
	s := &Server{svc: svc}

	r := chi.NewRouter()
	r.Use(withRequestID, withLogging, i18n.Middleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleGetState)
		r.Get("/languages", s.handleListLanguages)
		r.Get("/starters", s.handleGetStarters)
		r.Put("/language", s.handleSetLanguage)
		r.Post("/messages", s.handleSendMessage)
		r.Post("/messages/{id}/speech", s.handleToggleSpeech)
		r.Post("/audio", s.handleSubmitAudio)
		r.Post("/documents", s.handleSubmitDocument)
		r.Get("/events", s.handleEvents)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		methodNotAllowed(w)
	})

	return r
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type messageResponse struct {
	ID           string    `json:"id"`
	Sender       string    `json:"sender"`
	Text         string    `json:"text"`
	ImageURL     string    `json:"image_url,omitempty"`
	QuickReplies []string  `json:"quick_replies,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type stateResponse struct {
	Language              string            `json:"language"`
	HeaderTitle           string            `json:"header_title"`
	Messages              []messageResponse `json:"messages"`
	IsLoading             bool              `json:"is_loading"`
	IsTranscribing        bool              `json:"is_transcribing"`
	IsConversationStarted bool              `json:"is_conversation_started"`
	SpeakingMessageID     string            `json:"speaking_message_id,omitempty"`
	ShowTypingIndicator   bool              `json:"show_typing_indicator"`
	ShowStarters          bool              `json:"show_starters"`
	InputDisabled         bool              `json:"input_disabled"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

type setLanguageRequest struct {
	Language string `json:"language"`
}

type startersResponse struct {
	Language    string         `json:"language"`
	HeaderTitle string         `json:"header_title"`
	Starters    []i18n.Starter `json:"starters"`
}

func toStateResponse(st conversation.State) stateResponse {
	msgs := make([]messageResponse, 0, len(st.Messages))
	for _, m := range st.Messages {
		msgs = append(msgs, messageResponse{
			ID:           string(m.ID),
			Sender:       string(m.Sender),
			Text:         m.Text,
			ImageURL:     m.ImageURL,
			QuickReplies: m.QuickReplies,
			CreatedAt:    m.CreatedAt,
		})
	}
	return stateResponse{
		Language:              string(st.Language),
		HeaderTitle:           i18n.For(st.Language).HeaderTitle,
		Messages:              msgs,
		IsLoading:             st.IsLoading,
		IsTranscribing:        st.IsTranscribing,
		IsConversationStarted: st.IsConversationStarted,
		SpeakingMessageID:     string(st.SpeakingMessageID),
		ShowTypingIndicator:   st.ShowTypingIndicator(),
		ShowStarters:          st.ShowStarters(),
		InputDisabled:         st.InputDisabled(),
	}
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toStateResponse(s.svc.State()))
}

func (s *Server) handleListLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, i18n.Languages())
}

func (s *Server) handleGetStarters(w http.ResponseWriter, r *http.Request) {
	lang := s.svc.State().Language
	if q := r.URL.Query().Get("lang"); q != "" {
		code, ok := i18n.Normalize(q)
		if !ok {
			badRequest(w, "unsupported language")
			return
		}
		lang = code
	}

	tr := i18n.For(lang)
	writeJSON(w, http.StatusOK, startersResponse{
		Language:    string(lang),
		HeaderTitle: tr.HeaderTitle,
		Starters:    tr.Starters,
	})
}

// handleSetLanguage restarts the conversation. An empty language falls back
// to the request's Accept-Language.
func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	var req setLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, "invalid JSON body")
		return
	}

	lang := i18n.UserLanguage(r.Context())
	if req.Language != "" {
		code, ok := i18n.Normalize(req.Language)
		if !ok {
			badRequest(w, "unsupported language")
			return
		}
		lang = code
	}
	if lang == "" {
		lang = i18n.DefaultLanguage
	}

	s.svc.Start(detached(r), lang)
	writeJSON(w, http.StatusOK, toStateResponse(s.svc.State()))
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Text == "" {
		badRequest(w, "text is required")
		return
	}

	accepted := s.svc.SendText(detached(r), req.Text)
	writeOutcome(w, accepted, s.svc.State())
}

func (s *Server) handleToggleSpeech(w http.ResponseWriter, r *http.Request) {
	id := domain.MessageID(chi.URLParam(r, "id"))
	msg, ok := s.svc.Message(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "message not found"})
		return
	}

	s.svc.ToggleSpeech(msg.ID, msg.Text)
	writeJSON(w, http.StatusOK, toStateResponse(s.svc.State()))
}

func (s *Server) handleSubmitAudio(w http.ResponseWriter, r *http.Request) {
	data, mimeType, _, err := readUpload(w, r, "audio")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	accepted := s.svc.SubmitAudio(detached(r), domain.AudioClip{Data: data, MIMEType: mimeType})
	writeOutcome(w, accepted, s.svc.State())
}

func (s *Server) handleSubmitDocument(w http.ResponseWriter, r *http.Request) {
	data, mimeType, fileName, err := readUpload(w, r, "file")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	accepted := s.svc.SubmitDocument(detached(r), domain.Document{
		FileName: fileName,
		MIMEType: mimeType,
		Data:     data,
	})
	writeOutcome(w, accepted, s.svc.State())
}

// --- internal helpers --- //

// detached keeps request values (request id) but lets a started turn finish
// even if the client goes away.
func detached(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func readUpload(w http.ResponseWriter, r *http.Request, field string) ([]byte, string, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", "", errors.New("multipart field " + field + " is required")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", "", errors.New("could not read upload")
	}
	return data, header.Header.Get("Content-Type"), header.Filename, nil
}

func writeOutcome(w http.ResponseWriter, accepted bool, st conversation.State) {
	status := http.StatusOK
	if !accepted {
		status = http.StatusConflict
	}
	writeJSON(w, status, toStateResponse(st))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
