package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tzchat/tzchat-backend/internal/usecase/target"
)

type TargetHandler struct {
	targetUseCase *target.TargetUseCase
}

func NewTargetHandler(targetUseCase *target.TargetUseCase) *TargetHandler {
	return &TargetHandler{targetUseCase: targetUseCase}
}

// ListTargets returns the ranked candidate feed
// @Summary Ranked targets
// @Description Candidates ordered by exposure score for a day
// @Tags targets
// @Produce json
// @Security BearerAuth
// @Param ymd query string false "Day key YYYY-MM-DD, today by default"
// @Param limit query int false "Page size, default 20"
// @Param exclude query string false "Comma-separated user ids to skip"
// @Success 200 {array} domain.RankedTarget
// @Failure 401 {object} ErrorResponse
// @Router /targets [get]
func (h *TargetHandler) ListTargets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
		limit = n
	}

	var exclude []int64
	if raw := c.Query("exclude"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid exclude list"})
				return
			}
			exclude = append(exclude, id)
		}
	}

	targets, err := h.targetUseCase.ListTargets(c.Request.Context(), userID, c.Query("ymd"), limit, exclude)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, targets)
}
