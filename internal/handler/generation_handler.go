package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opt-telecom/horarios-api/internal/dto"
	appErrors "github.com/opt-telecom/horarios-api/pkg/errors"
	"github.com/opt-telecom/horarios-api/pkg/response"
)

type timetableGenerator interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error)
}

// GenerationHandler exposes the timetable generation endpoint.
type GenerationHandler struct {
	generator timetableGenerator
}

// NewGenerationHandler constructs a new GenerationHandler.
func NewGenerationHandler(generator timetableGenerator) *GenerationHandler {
	return &GenerationHandler{generator: generator}
}

// Generate godoc
// @Summary Generate the timetable for a period
// @Description Validates pending teaching requests against their suggested slots, fills remaining weekly demand, and atomically replaces the period's timetable. Returns per-request outcomes and unplaced-demand shortfalls.
// @Tags Generation
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Generation parameters"
// @Success 200 {object} response.Envelope{data=dto.GenerateTimetableResponse}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /generation/run [post]
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload"))
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
