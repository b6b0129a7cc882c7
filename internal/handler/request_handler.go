package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oakline/propmaint-api/internal/models"
	"github.com/oakline/propmaint-api/internal/service"
	appErrors "github.com/oakline/propmaint-api/pkg/errors"
	"github.com/oakline/propmaint-api/pkg/response"
)

// RequestHandler manages maintenance-request endpoints.
type RequestHandler struct {
	service *service.RequestService
}

// NewRequestHandler constructs handler.
func NewRequestHandler(svc *service.RequestService) *RequestHandler {
	return &RequestHandler{service: svc}
}

// List godoc
// @Summary List maintenance requests
// @Tags Requests
// @Produce json
// @Param studentID query int false "Filter by requesting student"
// @Param employeeID query int false "Filter by assigned employee"
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param start_date query string false "Requested on or after (YYYY-MM-DD)"
// @Param end_date query string false "Requested on or before (YYYY-MM-DD)"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Router /requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	var filter models.RequestFilter
	if raw := c.Query("studentID"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.StudentID = &id
		}
	}
	if raw := c.Query("employeeID"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.EmployeeID = &id
		}
	}
	filter.Status = c.Query("status")
	filter.Priority = c.Query("priority")
	if raw := c.Query("start_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.StartDate = &t
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.EndDate = &t
		}
	}
	// Non-numeric paging values silently fall back to the defaults.
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		filter.Offset = offset
	}

	requests, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests, pagination)
}

// Create godoc
// @Summary Submit a maintenance request
// @Tags Requests
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	var req service.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	request, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"requestID": request.ID})
}

// Get godoc
// @Summary Full detail for one request
// @Tags Requests
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Update godoc
// @Summary Update request fields and/or assignment
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /requests/{id} [put]
func (h *RequestHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UpdateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"requestID": id}, nil)
}

// Cancel godoc
// @Summary Cancel a request (soft delete)
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /requests/{id} [delete]
func (h *RequestHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	// Body is optional on delete.
	var req service.CancelRequestRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.service.Cancel(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"requestID": id, "activeStatus": models.StatusCanceled}, nil)
}
