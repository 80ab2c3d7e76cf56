// Package server exposes the routing pipeline over HTTP. The transport stays
// dumb: decode the request, call the router, encode the result. All routing
// semantics live in internal/router and below.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studygate/partner-bot-go/internal/ctxutil"
	domerrors "github.com/studygate/partner-bot-go/internal/errors"
	"github.com/studygate/partner-bot-go/internal/faq"
	"github.com/studygate/partner-bot-go/internal/logger"
	"github.com/studygate/partner-bot-go/internal/metrics"
	"github.com/studygate/partner-bot-go/internal/query"
	"github.com/studygate/partner-bot-go/internal/router"
	"github.com/studygate/partner-bot-go/internal/sentry"
	"github.com/studygate/partner-bot-go/internal/slots"
)

// Number of FAQ entries attached to a general-intent response.
const faqTopN = 3

// TurnRouter routes one conversation turn. Implemented by router.Router.
type TurnRouter interface {
	Route(ctx context.Context, turns []slots.ConversationTurn, prev *slots.QueryState) (*router.Result, error)
}

// RouteRequest is the POST /api/v1/route payload: the transcript so far with
// the newest user message last, the state returned for the previous turn, and
// opaque partner/session identifiers.
type RouteRequest struct {
	PartnerID string                   `json:"partner_id"`
	SessionID string                   `json:"session_id"`
	Messages  []slots.ConversationTurn `json:"messages"`
	PrevState *slots.QueryState        `json:"prev_state"`
}

// FAQAnswer is one retrieved FAQ entry in the response.
type FAQAnswer struct {
	ID         string  `json:"id"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Confidence float32 `json:"confidence"`
}

// RouteResponse is the routing outcome. When NeedsClarification is set,
// Question holds what to ask the user and Params is absent. State is echoed
// back so the caller can resend it as prev_state on the next turn.
type RouteResponse struct {
	State              *slots.QueryState `json:"state,omitempty"`
	NeedsClarification bool              `json:"needs_clarification"`
	Question           string            `json:"question,omitempty"`
	Params             *query.Params     `json:"params,omitempty"`
	FAQ                []FAQAnswer       `json:"faq,omitempty"`
}

// ErrorResponse is the body for 4xx/5xx replies.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler serves the routing API.
type Handler struct {
	router       TurnRouter
	faq          *faq.Index
	metrics      *metrics.Metrics
	log          *logger.Logger
	routeTimeout time.Duration
}

// NewHandler creates the routing API handler. faqIndex and m may be nil.
func NewHandler(rt TurnRouter, faqIndex *faq.Index, m *metrics.Metrics, log *logger.Logger, routeTimeout time.Duration) *Handler {
	return &Handler{
		router:       rt,
		faq:          faqIndex,
		metrics:      m,
		log:          log.WithModule("server"),
		routeTimeout: routeTimeout,
	}
}

// HandleRoute processes one conversation turn.
func (h *Handler) HandleRoute(c *gin.Context) {
	start := time.Now()

	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordHTTPError("bad_request", "server")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if err := validateRequest(&req); err != nil {
		h.metrics.RecordHTTPError("bad_request", "server")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	partnerID := req.PartnerID
	if partnerID == "" {
		partnerID = c.GetHeader(HeaderPartnerID)
	}
	if partnerID != "" {
		ctx = ctxutil.WithPartnerID(ctx, partnerID)
	}
	if req.SessionID != "" {
		ctx = ctxutil.WithSessionID(ctx, req.SessionID)
	}
	ctx, cancel := context.WithTimeout(ctx, h.routeTimeout)
	defer cancel()

	result, err := h.router.Route(ctx, req.Messages, req.PrevState)
	if err != nil {
		h.handleRouteError(c, ctx, err, start)
		return
	}

	resp := RouteResponse{
		State:              result.State,
		NeedsClarification: result.NeedsClarification,
		Question:           result.Question,
		Params:             result.Params,
	}

	intent := string(result.State.Intent)
	h.metrics.RecordConfidence(result.State.Confidence)

	outcome := "resolved"
	if result.NeedsClarification {
		outcome = "clarification"
		h.metrics.RecordClarification(result.State.PendingSlot)
	} else if result.State.Intent == slots.IntentGeneral {
		resp.FAQ = h.searchFAQ(lastUserText(req.Messages))
	}

	h.metrics.RecordRoute(intent, outcome, time.Since(start).Seconds())
	c.JSON(http.StatusOK, resp)
}

// handleRouteError maps routing failures onto HTTP responses. Catalog
// resolution misses are conversational outcomes, not server errors: the
// caller gets a clarifying question and a 200.
func (h *Handler) handleRouteError(c *gin.Context, ctx context.Context, err error, start time.Time) {
	var ambiguous *query.AmbiguousUniversityError
	if errors.As(err, &ambiguous) {
		h.metrics.RecordClarification("university")
		h.metrics.RecordRoute("", "clarification", time.Since(start).Seconds())
		c.JSON(http.StatusOK, RouteResponse{
			NeedsClarification: true,
			Question:           fmt.Sprintf("Which university do you mean: %s?", strings.Join(ambiguous.Candidates, ", ")),
		})
		return
	}

	var unknown *query.UnknownUniversityError
	if errors.As(err, &unknown) {
		h.metrics.RecordClarification("university")
		h.metrics.RecordRoute("", "clarification", time.Since(start).Seconds())
		c.JSON(http.StatusOK, RouteResponse{
			NeedsClarification: true,
			Question:           fmt.Sprintf("I couldn't find a university matching %q. Could you check the name?", unknown.Query),
		})
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		h.metrics.RecordHTTPError("timeout", "router")
		h.metrics.RecordRoute("", "error", time.Since(start).Seconds())
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "routing timed out"})
		return
	}

	h.log.WithError(err).ErrorContext(ctx, "Routing failed")
	sentry.CaptureExceptionWithContext(ctx, err)
	h.metrics.RecordHTTPError("internal", "router")
	h.metrics.RecordRoute("", "error", time.Since(start).Seconds())
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func (h *Handler) searchFAQ(text string) []FAQAnswer {
	if h.faq == nil || text == "" {
		return nil
	}
	results, err := h.faq.Search(text, faqTopN)
	if err != nil {
		h.log.WithError(err).Warn("FAQ search failed")
		return nil
	}
	answers := make([]FAQAnswer, 0, len(results))
	for _, r := range results {
		answers = append(answers, FAQAnswer{
			ID:         r.Document.ID,
			Question:   r.Document.Question,
			Answer:     r.Document.Answer,
			Confidence: r.Confidence,
		})
	}
	return answers
}

func validateRequest(req *RouteRequest) error {
	if len(req.Messages) == 0 {
		return domerrors.NewValidationError("messages", "at least one message is required")
	}
	for i, m := range req.Messages {
		if m.Role != slots.RoleUser && m.Role != slots.RoleAssistant {
			return domerrors.NewValidationError(fmt.Sprintf("messages[%d].role", i), fmt.Sprintf("unknown role %q", m.Role))
		}
	}
	if req.Messages[len(req.Messages)-1].Role != slots.RoleUser {
		return domerrors.NewValidationError("messages", "last message must be from the user")
	}
	return nil
}

func lastUserText(turns []slots.ConversationTurn) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == slots.RoleUser {
			return turns[i].Text
		}
	}
	return ""
}
