package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase/core"
)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// Chat routes one message through the conversation manager, generating a
// session id when the client did not supply one.
func (api *API) Chat(e *core.RequestEvent) error {
	var req chatRequest
	if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}
	if strings.TrimSpace(req.Message) == "" {
		return e.JSON(http.StatusBadRequest, map[string]string{
			"error": "message is required",
		})
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	response, err := api.Conversations.Process(e.Request.Context(), sessionID, req.Message)
	if err != nil {
		e.App.Logger().Error("chat processing failed", "error", err, "session", sessionID)
		return e.JSON(http.StatusInternalServerError, map[string]string{
			"error": fmt.Sprintf("error while processing the message: %s", err),
		})
	}

	return e.JSON(http.StatusOK, chatResponse{
		Response:  response,
		SessionID: sessionID,
	})
}

// ChatHistory returns the transcript for one session; unknown sessions get
// an empty history rather than an error.
func (api *API) ChatHistory(e *core.RequestEvent) error {
	sessionID := e.Request.PathValue("sessionId")
	return e.JSON(http.StatusOK, map[string]any{
		"history": api.Conversations.History(sessionID),
	})
}
