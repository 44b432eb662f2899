// README: Meeting intent interpretation handler.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"midway/internal/ai"
)

type IntentHandler struct {
	classifier ai.IntentClassifier
}

func NewIntentHandler(classifier ai.IntentClassifier) *IntentHandler {
	return &IntentHandler{classifier: classifier}
}

type intentReq struct {
	Text string `json:"text"`
}

// Interpret handles POST /api/interpret.
func (h *IntentHandler) Interpret(c *gin.Context) {
	var req intentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		writeError(c, http.StatusBadRequest, "missing text")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	intent, err := h.classifier.ClassifyIntent(ctx, req.Text)
	if err != nil {
		writeError(c, http.StatusBadGateway, "intent service unavailable")
		return
	}

	writeJSON(c, http.StatusOK, intent)
}
