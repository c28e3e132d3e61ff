package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opt-telecom/horarios-api/internal/dto"
	"github.com/opt-telecom/horarios-api/internal/service"
	appErrors "github.com/opt-telecom/horarios-api/pkg/errors"
	"github.com/opt-telecom/horarios-api/pkg/response"
)

// RestrictionHandler wires the restriction service to HTTP routes.
type RestrictionHandler struct {
	restrictions *service.RestrictionService
}

// NewRestrictionHandler constructs a new RestrictionHandler.
func NewRestrictionHandler(restrictions *service.RestrictionService) *RestrictionHandler {
	return &RestrictionHandler{restrictions: restrictions}
}

// List godoc
// @Summary List blackout restrictions
// @Tags Restrictions
// @Produce json
// @Param kind query string false "Filter by kind"
// @Param day query string false "Filter by day code"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /restrictions [get]
func (h *RestrictionHandler) List(c *gin.Context) {
	var query dto.ListRestrictionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid restriction query"))
		return
	}

	restrictions, pagination, err := h.restrictions.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, restrictions, pagination)
}

// Get godoc
// @Summary Get restriction detail
// @Tags Restrictions
// @Produce json
// @Param id path string true "Restriction ID"
// @Success 200 {object} response.Envelope
// @Router /restrictions/{id} [get]
func (h *RestrictionHandler) Get(c *gin.Context) {
	restriction, err := h.restrictions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, restriction, nil)
}

// Create godoc
// @Summary Register a blackout restriction
// @Tags Restrictions
// @Accept json
// @Produce json
// @Param payload body dto.CreateRestrictionRequest true "Restriction payload"
// @Success 201 {object} response.Envelope
// @Router /restrictions [post]
func (h *RestrictionHandler) Create(c *gin.Context) {
	var req dto.CreateRestrictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid restriction payload"))
		return
	}

	restriction, err := h.restrictions.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, restriction)
}

// Delete godoc
// @Summary Delete a restriction
// @Tags Restrictions
// @Param id path string true "Restriction ID"
// @Success 204 "No Content"
// @Router /restrictions/{id} [delete]
func (h *RestrictionHandler) Delete(c *gin.Context) {
	if err := h.restrictions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
