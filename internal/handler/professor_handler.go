package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opt-telecom/horarios-api/internal/dto"
	"github.com/opt-telecom/horarios-api/internal/service"
	appErrors "github.com/opt-telecom/horarios-api/pkg/errors"
	"github.com/opt-telecom/horarios-api/pkg/response"
)

// ProfessorHandler wires the professor service to HTTP routes.
type ProfessorHandler struct {
	professors *service.ProfessorService
}

// NewProfessorHandler constructs a new ProfessorHandler.
func NewProfessorHandler(professors *service.ProfessorService) *ProfessorHandler {
	return &ProfessorHandler{professors: professors}
}

// List godoc
// @Summary List professors
// @Tags Professors
// @Produce json
// @Param search query string false "Search by name or specialty"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /professors [get]
func (h *ProfessorHandler) List(c *gin.Context) {
	var query dto.ListProfessorsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid professor query"))
		return
	}

	professors, pagination, err := h.professors.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, professors, pagination)
}

// Get godoc
// @Summary Get professor detail
// @Tags Professors
// @Produce json
// @Param id path string true "Professor ID"
// @Success 200 {object} response.Envelope
// @Router /professors/{id} [get]
func (h *ProfessorHandler) Get(c *gin.Context) {
	professor, err := h.professors.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, professor, nil)
}

// Create godoc
// @Summary Register a professor
// @Tags Professors
// @Accept json
// @Produce json
// @Param payload body dto.CreateProfessorRequest true "Professor payload"
// @Success 201 {object} response.Envelope
// @Router /professors [post]
func (h *ProfessorHandler) Create(c *gin.Context) {
	var req dto.CreateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid professor payload"))
		return
	}

	professor, err := h.professors.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, professor)
}

// Update godoc
// @Summary Update a professor
// @Tags Professors
// @Accept json
// @Produce json
// @Param id path string true "Professor ID"
// @Param payload body dto.UpdateProfessorRequest true "Fields to update"
// @Success 200 {object} response.Envelope
// @Router /professors/{id} [put]
func (h *ProfessorHandler) Update(c *gin.Context) {
	var req dto.UpdateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid professor payload"))
		return
	}

	professor, err := h.professors.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, professor, nil)
}

// Delete godoc
// @Summary Delete a professor
// @Tags Professors
// @Param id path string true "Professor ID"
// @Success 204 "No Content"
// @Router /professors/{id} [delete]
func (h *ProfessorHandler) Delete(c *gin.Context) {
	if err := h.professors.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
