package handler

import (
	"errors"

	apprecv "github.com/erp/warehouse-bot/internal/application/receiving"
	"github.com/erp/warehouse-bot/internal/domain/identity"
	"github.com/erp/warehouse-bot/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReceivingHandler exposes the receipt-intake workflow over HTTP. The
// messaging gateway (or any other front end) posts the user's chat events
// here and renders the returned prompts.
type ReceivingHandler struct {
	BaseHandler
	workflow *apprecv.WorkflowService
	users    identity.UserRepository
	logger   *zap.Logger
}

// NewReceivingHandler creates a new ReceivingHandler
func NewReceivingHandler(
	workflow *apprecv.WorkflowService,
	users identity.UserRepository,
	logger *zap.Logger,
) *ReceivingHandler {
	return &ReceivingHandler{
		workflow: workflow,
		users:    users,
		logger:   logger,
	}
}

// StartRequest begins a receiving conversation for a chat user
type StartRequest struct {
	ChatID int64 `json:"chat_id" binding:"required"`
}

// SelectionRequest carries free-text input: an option pick or a numeric entry
type SelectionRequest struct {
	ChatID int64  `json:"chat_id" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// ActionRequest carries a confirm/edit/save/finish button press
type ActionRequest struct {
	ChatID int64  `json:"chat_id" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// CancelRequest aborts the conversation
type CancelRequest struct {
	ChatID int64 `json:"chat_id" binding:"required"`
}

// RegisterRoutes registers receiving workflow routes
func (h *ReceivingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receiving := rg.Group("/receiving")
	{
		receiving.POST("/start", h.Start)
		receiving.POST("/selection", h.HandleSelection)
		receiving.POST("/action", h.HandleAction)
		receiving.POST("/cancel", h.Cancel)
	}
}

// Start begins a new receiving workflow. The chat user must exist and hold
// a role permitted to receive goods.
func (h *ReceivingHandler) Start(c *gin.Context) {
	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "chat_id is required")
		return
	}

	user, err := h.users.FindByChatID(c.Request.Context(), req.ChatID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.Forbidden(c, "Unknown user")
			return
		}
		h.HandleError(c, err)
		return
	}

	prompt, err := h.workflow.Start(c.Request.Context(), req.ChatID, user.Role)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, prompt)
}

// HandleSelection processes a free-text reply in the conversation
func (h *ReceivingHandler) HandleSelection(c *gin.Context) {
	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "chat_id and text are required")
		return
	}

	prompt, err := h.workflow.HandleSelection(c.Request.Context(), req.ChatID, req.Text)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, prompt)
}

// HandleAction processes a button press in the conversation
func (h *ReceivingHandler) HandleAction(c *gin.Context) {
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "chat_id and action are required")
		return
	}

	prompt, err := h.workflow.HandleConfirmAction(c.Request.Context(), req.ChatID, apprecv.Action(req.Action))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, prompt)
}

// Cancel aborts the conversation and discards the session
func (h *ReceivingHandler) Cancel(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "chat_id is required")
		return
	}

	prompt, err := h.workflow.Cancel(c.Request.Context(), req.ChatID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, prompt)
}
