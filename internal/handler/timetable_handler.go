package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opt-telecom/horarios-api/internal/dto"
	"github.com/opt-telecom/horarios-api/internal/service"
	appErrors "github.com/opt-telecom/horarios-api/pkg/errors"
	"github.com/opt-telecom/horarios-api/pkg/export"
	"github.com/opt-telecom/horarios-api/pkg/response"
)

// TimetableHandler serves committed timetables and exports.
type TimetableHandler struct {
	timetables *service.TimetableService
}

// NewTimetableHandler constructs a new TimetableHandler.
func NewTimetableHandler(timetables *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetables: timetables}
}

// List godoc
// @Summary List timetable entries
// @Tags Timetable
// @Produce json
// @Param period query string true "Academic period, e.g. 2026-1"
// @Param professor_id query string false "Filter by professor"
// @Param subject_id query string false "Filter by subject"
// @Param room_id query string false "Filter by room"
// @Param day query string false "Filter by day code (LUN..DOM)"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *TimetableHandler) List(c *gin.Context) {
	var query dto.ListTimetableQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable query"))
		return
	}

	entries, pagination, err := h.timetables.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, pagination)
}

// Clear godoc
// @Summary Delete a period's committed timetable
// @Tags Timetable
// @Param period query string true "Academic period"
// @Success 204 "No Content"
// @Router /timetable [delete]
func (h *TimetableHandler) Clear(c *gin.Context) {
	period := c.Query("period")
	if period == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "period is required"))
		return
	}

	if err := h.timetables.Clear(c.Request.Context(), period); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ExportCSV godoc
// @Summary Export a period's timetable as CSV
// @Tags Timetable
// @Produce text/csv
// @Param period query string true "Academic period"
// @Success 200 {string} string "CSV payload"
// @Router /timetable/export/csv [get]
func (h *TimetableHandler) ExportCSV(c *gin.Context) {
	period := c.Query("period")
	if period == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "period is required"))
		return
	}

	entries, err := h.timetables.ListByPeriod(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}

	payload, err := export.TimetableCSV(entries)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=horario-%s.csv", period))
	c.Data(http.StatusOK, "text/csv", payload)
}

// ExportPDF godoc
// @Summary Export a period's timetable as PDF
// @Tags Timetable
// @Produce application/pdf
// @Param period query string true "Academic period"
// @Success 200 {string} string "PDF payload"
// @Router /timetable/export/pdf [get]
func (h *TimetableHandler) ExportPDF(c *gin.Context) {
	period := c.Query("period")
	if period == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "period is required"))
		return
	}

	entries, err := h.timetables.ListByPeriod(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}

	payload, err := export.TimetablePDF(period, entries)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=horario-%s.pdf", period))
	c.Data(http.StatusOK, "application/pdf", payload)
}
