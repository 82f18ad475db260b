package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"macro-news-bot/backend/ai"
	"macro-news-bot/backend/pkg/errors"
	"macro-news-bot/backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// AIHandler proxies user text to the generative-text provider under fixed
// prompt templates and relays the provider's raw response
type AIHandler struct {
	client *ai.Client
}

// NewAIHandler creates a new AI proxy handler
func NewAIHandler(client *ai.Client) *AIHandler {
	return &AIHandler{client: client}
}

type textRequest struct {
	Text string `json:"text"`
}

// SummarizeMacro asks the provider for a concise macroeconomic explanation
func (h *AIHandler) SummarizeMacro(c *gin.Context) {
	h.proxy(c, "macro", ai.MacroPrompt)
}

// RecommendInvestment asks the provider for beginner-investor recommendations
func (h *AIHandler) RecommendInvestment(c *gin.Context) {
	h.proxy(c, "recommendation", ai.RecommendationPrompt)
}

func (h *AIHandler) proxy(c *gin.Context, kind string, prompt func(string) string) {
	var req textRequest
	_ = c.ShouldBindJSON(&req)

	if req.Text == "" {
		c.Error(errors.NewBadRequestError("TEXT_REQUIRED", "text required"))
		return
	}

	metrics.AIRequests.WithLabelValues(kind).Inc()

	body, err := h.client.Generate(c.Request.Context(), prompt(req.Text))
	if err != nil {
		metrics.AIErrors.WithLabelValues(kind).Inc()

		upstream := errors.NewUpstreamError("AI_PROVIDER", "AI provider request failed")

		// Relay the provider's error payload, structured when it is JSON
		var provErr *ai.ProviderError
		if stderrors.As(err, &provErr) {
			if json.Valid(provErr.Body) {
				upstream.WithDetails(json.RawMessage(provErr.Body))
			} else {
				upstream.WithDetails(string(provErr.Body))
			}
		} else {
			upstream.WithDetails(err.Error())
		}

		c.Error(upstream)
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
