package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tzchat/tzchat-backend/internal/usecase/emergency"
)

type EmergencyHandler struct {
	emergencyUseCase *emergency.EmergencyUseCase
}

func NewEmergencyHandler(emergencyUseCase *emergency.EmergencyUseCase) *EmergencyHandler {
	return &EmergencyHandler{emergencyUseCase: emergencyUseCase}
}

// Activate turns emergency mode on
// @Summary Activate emergency mode
// @Tags emergency
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Emergency
// @Failure 401 {object} ErrorResponse
// @Router /emergency [post]
func (h *EmergencyHandler) Activate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	state, err := h.emergencyUseCase.Activate(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Deactivate turns emergency mode off
// @Summary Deactivate emergency mode
// @Tags emergency
// @Produce json
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Router /emergency [delete]
func (h *EmergencyHandler) Deactivate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	if err := h.emergencyUseCase.Deactivate(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Status reports the live emergency state
// @Summary Emergency status
// @Tags emergency
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Emergency
// @Failure 401 {object} ErrorResponse
// @Router /emergency [get]
func (h *EmergencyHandler) Status(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	state, err := h.emergencyUseCase.Status(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}
