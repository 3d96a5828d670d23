package restapi

import (
	"context"
	"errors"
	"io"
	"net/http"

	"wallet_risk_analyzer/internal/app/port"
	"wallet_risk_analyzer/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// AddressRequest is the optional body of session operations.
type AddressRequest struct {
	Address string `json:"address"`
}

// SessionResponse wraps a session snapshot with its id.
type SessionResponse struct {
	ID      string                 `json:"id"`
	Session entity.SessionSnapshot `json:"session"`
}

// ErrorResponse is returned for requests that do not reach a session.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by the health check.
type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

// SessionHandler serves the analysis session API.
type SessionHandler struct {
	store  *SessionStore
	logger port.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(store *SessionStore, logger port.Logger) *SessionHandler {
	return &SessionHandler{store: store, logger: logger}
}

// CreateSessionHandler creates a session, optionally pre-filling its address.
func (h *SessionHandler) CreateSessionHandler(c *gin.Context) {
	req, ok := h.bindAddress(c)
	if !ok {
		return
	}
	id, session := h.store.Create()
	snap := session.Snapshot()
	if req.Address != "" {
		snap = session.Edit(req.Address)
	}
	c.JSON(http.StatusCreated, SessionResponse{ID: id, Session: snap})
}

// GetSessionHandler returns the current snapshot of a session.
func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	id, session, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, SessionResponse{ID: id, Session: session.Snapshot()})
}

// AnalyzeHandler submits the address for live analysis and waits for the
// outcome. Without a body the address last entered is used.
func (h *SessionHandler) AnalyzeHandler(c *gin.Context) {
	id, session, ok := h.lookup(c)
	if !ok {
		return
	}
	req, ok := h.bindAddress(c)
	if !ok {
		return
	}
	address := req.Address
	if address == "" {
		address = session.Snapshot().Input
	}

	// A client disconnect must not fail the session; superseding and the
	// request timeout still cancel it.
	snap := session.Submit(context.WithoutCancel(c.Request.Context()), address)
	c.JSON(statusForSnapshot(snap), SessionResponse{ID: id, Session: snap})
}

// DemoHandler shows a synthesized report.
func (h *SessionHandler) DemoHandler(c *gin.Context) {
	id, session, ok := h.lookup(c)
	if !ok {
		return
	}
	req, ok := h.bindAddress(c)
	if !ok {
		return
	}
	address := req.Address
	if address == "" {
		address = session.Snapshot().Input
	}
	c.JSON(http.StatusOK, SessionResponse{ID: id, Session: session.SubmitDemo(address)})
}

// UpdateAddressHandler records an edit of the address input.
func (h *SessionHandler) UpdateAddressHandler(c *gin.Context) {
	id, session, ok := h.lookup(c)
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	c.JSON(http.StatusOK, SessionResponse{ID: id, Session: session.Edit(req.Address)})
}

// DeleteSessionHandler closes a session.
func (h *SessionHandler) DeleteSessionHandler(c *gin.Context) {
	if !h.store.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// HealthHandler reports liveness.
func (h *SessionHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Sessions: h.store.Count()})
}

func (h *SessionHandler) lookup(c *gin.Context) (string, port.AnalysisSession, bool) {
	id := c.Param("id")
	session, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
		return "", nil, false
	}
	return id, session, true
}

// bindAddress decodes an optional AddressRequest; an empty body is allowed.
func (h *SessionHandler) bindAddress(c *gin.Context) (AddressRequest, bool) {
	var req AddressRequest
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return req, true
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Debug("Rejected request body", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return req, false
	}
	return req, true
}

func statusForSnapshot(snap entity.SessionSnapshot) int {
	switch snap.State {
	case entity.StateInputError:
		return http.StatusUnprocessableEntity
	case entity.StateRequestError:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}
