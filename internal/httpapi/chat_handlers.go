package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"faqhub.org/internal/chat"
)

type chatRequest struct {
	Message string `json:"message"`
}

type feedbackRequest struct {
	Question string `json:"question"`
	Feedback string `json:"feedback"`
}

func (a *API) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := a.chat.Answer(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			writeError(w, r, http.StatusBadRequest, "message is required")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (a *API) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req feedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	question := strings.ReplaceAll(req.Question, "\n", " ")
	if err := a.feedback.Append(question + " - " + req.Feedback); err != nil {
		writeError(w, r, http.StatusInternalServerError, "could not store feedback")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
