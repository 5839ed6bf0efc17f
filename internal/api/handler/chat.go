package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ecofinds/ecofinds-api/internal/api/response"
	"github.com/ecofinds/ecofinds-api/internal/assistant"
	"github.com/ecofinds/ecofinds-api/internal/service"
	"github.com/go-chi/chi/v5"
)

// ChatHandler exposes the assistant to the web client
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Query runs one assistant turn. A missing session_id starts a new
// conversation; the returned session_id must be echoed on later turns.
func (h *ChatHandler) Query(w http.ResponseWriter, r *http.Request) {
	var input struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message" validate:"required,max=2000"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationErrors(err))
		return
	}

	turn, err := h.chatService.ProcessQuery(r.Context(), input.SessionID, input.Message)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, turn)
}

// History returns the stored messages for a session
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chatService.History(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, map[string]any{"messages": messages})
}

// ClearSession drops a session and its moderation counters
func (h *ChatHandler) ClearSession(w http.ResponseWriter, r *http.Request) {
	if err := h.chatService.ClearSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.Success(w, http.StatusOK, "Session cleared successfully", nil)
}

// TimeRemaining formats a block countdown for the client to render.
// until is unix milliseconds, matching what Query returns in blocked_until.
func (h *ChatHandler) TimeRemaining(w http.ResponseWriter, r *http.Request) {
	untilMs, err := strconv.ParseInt(r.URL.Query().Get("until"), 10, 64)
	if err != nil {
		response.BadRequest(w, "until must be unix milliseconds")
		return
	}

	until := time.UnixMilli(untilMs)
	response.OK(w, map[string]string{
		"remaining": assistant.FormatTimeRemaining(until, time.Now()),
	})
}
