package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ecotrace/ecotrace-core/internal/api/middleware"
	"github.com/ecotrace/ecotrace-core/internal/api/shared/executor"
	"github.com/ecotrace/ecotrace-core/internal/store"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// SubmitItem registers a new e-waste item owned by the caller
	// POST /api/v1/items
	SubmitItem(c *gin.Context)

	// ListMyItems retrieves the caller's items
	// GET /api/v1/items
	ListMyItems(c *gin.Context)

	// GetItem retrieves a single item
	// GET /api/v1/items/:id
	GetItem(c *gin.Context)

	// GetItemHistory retrieves an item's tracking events in order
	// GET /api/v1/items/:id/events
	GetItemHistory(c *gin.Context)

	// RecordEvent appends a lifecycle event to an item
	// POST /api/v1/items/:id/events
	RecordEvent(c *gin.Context)

	// IssueToken creates a QR token for an item
	// POST /api/v1/items/:id/tokens
	IssueToken(c *gin.Context)

	// ScanToken redeems a QR token; view scans need no authentication
	// POST /api/v1/qr/scan
	ScanToken(c *gin.Context)

	// AssignItem assigns an approved item to a driver or organization
	// POST /api/v1/items/:id/assignments
	AssignItem(c *gin.Context)

	// RespondToAssignment accepts or rejects the caller's assignment
	// POST /api/v1/assignments/:id/respond
	RespondToAssignment(c *gin.Context)

	// CreditBalance returns the caller's current balance
	// GET /api/v1/credits/balance
	CreditBalance(c *gin.Context)

	// CreditHistory returns the caller's credit entries
	// GET /api/v1/credits
	CreditHistory(c *gin.Context)

	// RedeemCredits spends part of the caller's balance
	// POST /api/v1/credits/redeem
	RedeemCredits(c *gin.Context)

	// ApproveItem approves a pending item and awards credits
	// POST /api/v1/admin/items/:id/approve
	ApproveItem(c *gin.Context)

	// RejectItem rejects a pending item
	// POST /api/v1/admin/items/:id/reject
	RejectItem(c *gin.Context)

	// UpdateUserRole changes a user's role
	// POST /api/v1/admin/users/:id/role
	UpdateUserRole(c *gin.Context)

	// CreateCampaign creates a campaign
	// POST /api/v1/admin/campaigns
	CreateCampaign(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{executor: exec}
}

// callerID extracts the authenticated user from the request context
func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.SubjectUUID(c)
	if !ok {
		respondUnauthorized(c, "Authenticated user required")
		return uuid.Nil, false
	}
	return id, true
}

// pathUUID parses a UUID path parameter
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondBadRequest(c, "Invalid "+name, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func (h *handler) SubmitItem(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var req submitItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	item, err := h.executor.SubmitItem(c.Request.Context(), caller, store.CreateItemInput{
		ItemName:       req.ItemName,
		Category:       req.Category,
		Brand:          req.Brand,
		Model:          req.Model,
		SerialNumber:   req.SerialNumber,
		Condition:      req.Condition,
		EstimatedValue: req.EstimatedValue,
		PickupLocation: req.PickupLocation,
		Description:    req.Description,
		WeightKg:       req.WeightKg,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *handler) ListMyItems(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	items, err := h.executor.ListMyItems(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *handler) GetItem(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	item, err := h.executor.GetItem(c.Request.Context(), caller, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handler) GetItemHistory(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	events, err := h.executor.GetItemHistory(c.Request.Context(), caller, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *handler) RecordEvent(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req recordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	event, err := h.executor.RecordEvent(c.Request.Context(), caller, store.RecordEventInput{
		ItemID:    itemID,
		EventType: req.EventType,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Notes:     req.Notes,
		Meta:      req.Meta,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *handler) IssueToken(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req issueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	var ttl *time.Duration
	switch {
	case req.NeverExpires:
		d := time.Duration(0)
		ttl = &d
	case req.TTLMinutes > 0:
		d := time.Duration(req.TTLMinutes) * time.Minute
		ttl = &d
	}

	token, err := h.executor.IssueToken(c.Request.Context(), caller, itemID, req.Purpose, ttl)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, token)
}

func (h *handler) ScanToken(c *gin.Context) {
	var req scanTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	input := store.RedeemQRTokenInput{
		Token:     req.Token,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Notes:     req.Notes,
	}
	if req.Event != "" {
		event := req.Event
		input.Event = &event
	}

	var caller *uuid.UUID
	if id, ok := middleware.SubjectUUID(c); ok {
		caller = &id
	}

	result, err := h.executor.ScanToken(c.Request.Context(), caller, input)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{"item": result.Item, "purpose": result.Token.Purpose}
	if result.Event != nil {
		response["event"] = result.Event
	}
	c.JSON(http.StatusOK, response)
}

func (h *handler) AssignItem(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req assignItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	assignment, err := h.executor.AssignItem(c.Request.Context(), caller, store.AssignItemInput{
		ItemID:           itemID,
		AssignedToUserID: req.AssignedToUserID,
		AssignedToOrgID:  req.AssignedToOrgID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

func (h *handler) RespondToAssignment(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	assignmentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req respondAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	assignment, err := h.executor.RespondToAssignment(c.Request.Context(), caller, assignmentID, req.Accept)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

func (h *handler) CreditBalance(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	balance, err := h.executor.CreditBalance(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, balanceResponse{Balance: balance})
}

func (h *handler) CreditHistory(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	entries, err := h.executor.CreditHistory(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *handler) RedeemCredits(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var req redeemCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	entry, err := h.executor.RedeemCredits(c.Request.Context(), caller, req.Credits, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *handler) ApproveItem(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req approveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.executor.ApproveItem(c.Request.Context(), caller, itemID, req.Credits)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": result.Item, "credit": result.Credit})
}

func (h *handler) RejectItem(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req rejectItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	item, err := h.executor.RejectItem(c.Request.Context(), caller, itemID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handler) UpdateUserRole(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	targetID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	profile, err := h.executor.UpdateUserRole(c.Request.Context(), caller, targetID, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *handler) CreateCampaign(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var req createCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	campaign, err := h.executor.CreateCampaign(c.Request.Context(), caller, store.CreateCampaignInput{
		Title:        req.Title,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, campaign)
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
