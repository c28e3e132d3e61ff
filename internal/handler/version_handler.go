package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opt-telecom/horarios-api/internal/dto"
	"github.com/opt-telecom/horarios-api/internal/service"
	appErrors "github.com/opt-telecom/horarios-api/pkg/errors"
	"github.com/opt-telecom/horarios-api/pkg/response"
)

// VersionHandler exposes timetable snapshot management.
type VersionHandler struct {
	versions *service.VersionService
}

// NewVersionHandler constructs a new VersionHandler.
func NewVersionHandler(versions *service.VersionService) *VersionHandler {
	return &VersionHandler{versions: versions}
}

// Save godoc
// @Summary Snapshot the current timetable of a period
// @Tags Versions
// @Accept json
// @Produce json
// @Param payload body dto.SaveVersionRequest true "Snapshot parameters"
// @Success 201 {object} response.Envelope
// @Router /versions [post]
func (h *VersionHandler) Save(c *gin.Context) {
	var req dto.SaveVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid snapshot payload"))
		return
	}

	version, err := h.versions.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, version)
}

// List godoc
// @Summary List timetable snapshots
// @Tags Versions
// @Produce json
// @Param period query string false "Filter by period"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /versions [get]
func (h *VersionHandler) List(c *gin.Context) {
	var query dto.ListVersionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid snapshot query"))
		return
	}

	versions, pagination, err := h.versions.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, versions, pagination)
}

// Get godoc
// @Summary Get one timetable snapshot
// @Tags Versions
// @Produce json
// @Param id path string true "Version ID"
// @Success 200 {object} response.Envelope
// @Router /versions/{id} [get]
func (h *VersionHandler) Get(c *gin.Context) {
	version, err := h.versions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, version, nil)
}

// Restore godoc
// @Summary Restore a snapshot as the current timetable
// @Description Replaces the period's timetable with the snapshot. Responds 207 when some snapshot rows could not be restored.
// @Tags Versions
// @Produce json
// @Param id path string true "Version ID"
// @Success 200 {object} response.Envelope
// @Success 207 {object} response.Envelope
// @Router /versions/{id}/restore [post]
func (h *VersionHandler) Restore(c *gin.Context) {
	restored, rowErrors, err := h.versions.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(rowErrors) > 0 {
		payload := make([]interface{}, 0, len(rowErrors))
		for _, rowErr := range rowErrors {
			payload = append(payload, rowErr)
		}
		response.MultiStatus(c, gin.H{"restored_entries": restored}, payload)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"restored_entries": restored}, nil)
}

// Delete godoc
// @Summary Delete a timetable snapshot
// @Tags Versions
// @Param id path string true "Version ID"
// @Success 204 "No Content"
// @Router /versions/{id} [delete]
func (h *VersionHandler) Delete(c *gin.Context) {
	if err := h.versions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
