package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oakline/propmaint-api/internal/service"
	appErrors "github.com/oakline/propmaint-api/pkg/errors"
	"github.com/oakline/propmaint-api/pkg/response"
)

// PartHandler manages parts-inventory endpoints.
type PartHandler struct {
	service *service.PartService
}

// NewPartHandler constructs handler.
func NewPartHandler(svc *service.PartService) *PartHandler {
	return &PartHandler{service: svc}
}

// List godoc
// @Summary List the parts inventory
// @Tags Parts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /employee/parts [get]
func (h *PartHandler) List(c *gin.Context) {
	parts, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, parts, nil)
}

// Get godoc
// @Summary Part with usage history
// @Tags Parts
// @Produce json
// @Param id path int true "Part ID"
// @Success 200 {object} response.Envelope
// @Router /employee/parts/{id} [get]
func (h *PartHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	part, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, part, nil)
}

// Create godoc
// @Summary Register a part
// @Tags Parts
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /employee/parts [post]
func (h *PartHandler) Create(c *gin.Context) {
	var req service.CreatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	part, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"partID": part.ID})
}

// Update godoc
// @Summary Update part fields
// @Tags Parts
// @Accept json
// @Produce json
// @Param id path int true "Part ID"
// @Success 200 {object} response.Envelope
// @Router /employee/parts/{id} [put]
func (h *PartHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UpdatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"partID": id}, nil)
}

// AdjustQuantity godoc
// @Summary Apply a signed stock delta
// @Tags Parts
// @Accept json
// @Produce json
// @Param id path int true "Part ID"
// @Success 200 {object} response.Envelope
// @Router /employee/parts/{id}/status [put]
func (h *PartHandler) AdjustQuantity(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	part, err := h.service.AdjustQuantity(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, part, nil)
}
