package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opt-telecom/horarios-api/internal/dto"
	"github.com/opt-telecom/horarios-api/internal/service"
	appErrors "github.com/opt-telecom/horarios-api/pkg/errors"
	"github.com/opt-telecom/horarios-api/pkg/response"
)

// ClassRequestHandler wires the teaching request service to HTTP routes.
type ClassRequestHandler struct {
	requests *service.ClassRequestService
}

// NewClassRequestHandler constructs a new ClassRequestHandler.
func NewClassRequestHandler(requests *service.ClassRequestService) *ClassRequestHandler {
	return &ClassRequestHandler{requests: requests}
}

// List godoc
// @Summary List teaching requests
// @Tags ClassRequests
// @Produce json
// @Param state query string false "Filter by lifecycle state"
// @Param period query string false "Filter by period"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /class-requests [get]
func (h *ClassRequestHandler) List(c *gin.Context) {
	var query dto.ListClassRequestsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class request query"))
		return
	}

	requests, pagination, err := h.requests.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests, pagination)
}

// Get godoc
// @Summary Get teaching request detail
// @Tags ClassRequests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /class-requests/{id} [get]
func (h *ClassRequestHandler) Get(c *gin.Context) {
	request, err := h.requests.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request, nil)
}

// Create godoc
// @Summary File a teaching request
// @Tags ClassRequests
// @Accept json
// @Produce json
// @Param payload body dto.CreateClassRequestRequest true "Request payload with suggested slot"
// @Success 201 {object} response.Envelope
// @Router /class-requests [post]
func (h *ClassRequestHandler) Create(c *gin.Context) {
	var req dto.CreateClassRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class request payload"))
		return
	}

	request, err := h.requests.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, request)
}

// CreateBulk godoc
// @Summary File several teaching requests at once
// @Description Persists the valid items and reports per-item results. Responds 207 when some items failed.
// @Tags ClassRequests
// @Accept json
// @Produce json
// @Param payload body dto.BulkCreateClassRequestsRequest true "Batch of requests"
// @Success 201 {object} response.Envelope
// @Success 207 {object} response.Envelope
// @Router /class-requests/bulk [post]
func (h *ClassRequestHandler) CreateBulk(c *gin.Context) {
	var req dto.BulkCreateClassRequestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk payload"))
		return
	}

	results, partial, err := h.requests.CreateBulk(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if partial {
		rowErrors := make([]interface{}, 0)
		for _, r := range results {
			if r.Error != "" {
				rowErrors = append(rowErrors, r)
			}
		}
		response.MultiStatus(c, results, rowErrors)
		return
	}
	response.Created(c, results)
}

// Cancel godoc
// @Summary Cancel a pending teaching request
// @Tags ClassRequests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /class-requests/{id}/cancel [post]
func (h *ClassRequestHandler) Cancel(c *gin.Context) {
	request, err := h.requests.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request, nil)
}

// DeleteAll godoc
// @Summary Delete teaching requests in bulk
// @Description Removes every teaching request, or only one period's when the period query parameter is set.
// @Tags ClassRequests
// @Produce json
// @Param period query string false "Restrict the purge to one period"
// @Success 200 {object} response.Envelope
// @Router /class-requests [delete]
func (h *ClassRequestHandler) DeleteAll(c *gin.Context) {
	count, err := h.requests.DeleteAll(c.Request.Context(), c.Query("period"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"removed": count}, nil)
}

// Delete godoc
// @Summary Delete a teaching request
// @Tags ClassRequests
// @Param id path string true "Request ID"
// @Success 204 "No Content"
// @Router /class-requests/{id} [delete]
func (h *ClassRequestHandler) Delete(c *gin.Context) {
	if err := h.requests.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
