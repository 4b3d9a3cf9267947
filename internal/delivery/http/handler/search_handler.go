package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tzchat/tzchat-backend/internal/usecase/search"
)

type SearchHandler struct {
	searchUseCase *search.SearchUseCase
}

func NewSearchHandler(searchUseCase *search.SearchUseCase) *SearchHandler {
	return &SearchHandler{searchUseCase: searchUseCase}
}

// SearchRequest represents a search request. Exclude carries ids the client
// already shows elsewhere: friends, blocks, open chats.
type SearchRequest struct {
	Exclude []int64 `json:"exclude" binding:"omitempty,max=2000"`
}

// Search runs the normal-tier filter chain for the caller
// @Summary Search users
// @Description Mutually filtered candidate list for the caller's settings
// @Tags search
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SearchRequest true "Exclusions"
// @Success 200 {object} search.SearchResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /search [post]
func (h *SearchHandler) Search(c *gin.Context) {
	h.run(c, false)
}

// SearchEmergency runs the premium-tier chain with the emergency gate
// @Summary Search users in emergency mode
// @Tags search
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SearchRequest true "Exclusions"
// @Success 200 {object} search.SearchResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /search/emergency [post]
func (h *SearchHandler) SearchEmergency(c *gin.Context) {
	h.run(c, true)
}

func (h *SearchHandler) run(c *gin.Context, premium bool) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	var (
		result *search.SearchResponse
		err    error
	)
	if premium {
		result, err = h.searchUseCase.SearchEmergency(c.Request.Context(), userID, req.Exclude)
	} else {
		result, err = h.searchUseCase.Search(c.Request.Context(), userID, req.Exclude)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
