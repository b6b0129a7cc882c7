package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oakline/propmaint-api/internal/service"
	appErrors "github.com/oakline/propmaint-api/pkg/errors"
	"github.com/oakline/propmaint-api/pkg/response"
)

// BuildingHandler manages building and apartment endpoints.
type BuildingHandler struct {
	buildings  *service.BuildingService
	apartments *service.ApartmentService
}

// NewBuildingHandler constructs handler.
func NewBuildingHandler(buildings *service.BuildingService, apartments *service.ApartmentService) *BuildingHandler {
	return &BuildingHandler{buildings: buildings, apartments: apartments}
}

// List godoc
// @Summary List buildings with occupancy summaries
// @Tags Buildings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /buildings [get]
func (h *BuildingHandler) List(c *gin.Context) {
	buildings, err := h.buildings.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, buildings, nil)
}

// Create godoc
// @Summary Register a building
// @Tags Buildings
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /buildings [post]
func (h *BuildingHandler) Create(c *gin.Context) {
	var req service.CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	building, err := h.buildings.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, building)
}

// Update godoc
// @Summary Update building fields
// @Tags Buildings
// @Accept json
// @Produce json
// @Param id path int true "Building ID"
// @Success 200 {object} response.Envelope
// @Router /buildings/{id} [put]
func (h *BuildingHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UpdateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.buildings.Update(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"buildingID": id}, nil)
}

// ListApartments godoc
// @Summary List apartments in a building
// @Tags Buildings
// @Produce json
// @Param id path int true "Building ID"
// @Success 200 {object} response.Envelope
// @Router /buildings/{id}/apartments [get]
func (h *BuildingHandler) ListApartments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	apartments, err := h.apartments.List(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, apartments, nil)
}

// UpdateApartment godoc
// @Summary Update apartment fields
// @Tags Buildings
// @Accept json
// @Produce json
// @Param id path int true "Building ID"
// @Param apt path int true "Apartment number"
// @Success 200 {object} response.Envelope
// @Router /buildings/{id}/apartments/{apt} [put]
func (h *BuildingHandler) UpdateApartment(c *gin.Context) {
	id, apt, ok := apartmentPath(c)
	if !ok {
		return
	}
	var req service.UpdateApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.apartments.Update(c.Request.Context(), id, apt, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"buildingID": id, "aptNumber": apt}, nil)
}

// GetVacancy godoc
// @Summary Occupancy snapshot for one apartment
// @Tags Buildings
// @Produce json
// @Param id path int true "Building ID"
// @Param apt path int true "Apartment number"
// @Success 200 {object} response.Envelope
// @Router /buildings/{id}/apartments/{apt}/vacancy [get]
func (h *BuildingHandler) GetVacancy(c *gin.Context) {
	id, apt, ok := apartmentPath(c)
	if !ok {
		return
	}
	apartment, err := h.apartments.GetVacancy(c.Request.Context(), id, apt)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, apartment, nil)
}

// SetVacancy godoc
// @Summary Set or clear the renter of an apartment
// @Tags Buildings
// @Accept json
// @Produce json
// @Param id path int true "Building ID"
// @Param apt path int true "Apartment number"
// @Success 200 {object} response.Envelope
// @Router /buildings/{id}/apartments/{apt}/vacancy [put]
func (h *BuildingHandler) SetVacancy(c *gin.Context) {
	id, apt, ok := apartmentPath(c)
	if !ok {
		return
	}

	// The renterId key must be present; JSON null vacates, a value occupies.
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	input := service.SetVacancyInput{}
	if raw, present := body["renterId"]; present {
		input.RenterPresent = true
		if string(raw) != "null" {
			var renterID int64
			if err := json.Unmarshal(raw, &renterID); err != nil {
				response.Error(c, appErrors.Clone(appErrors.ErrValidation, "renterId must be an integer or null"))
				return
			}
			input.RenterID = &renterID
		}
	}

	if err := h.apartments.SetVacancy(c.Request.Context(), id, apt, input); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"buildingID": id, "aptNumber": apt}, nil)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, name+" must be an integer"))
		return 0, false
	}
	return id, true
}

func apartmentPath(c *gin.Context) (int64, int, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return 0, 0, false
	}
	apt, err := strconv.Atoi(c.Param("apt"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "apt must be an integer"))
		return 0, 0, false
	}
	return id, apt, true
}
