package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ipupy/tesoreria_backend/internal/core/ports/services"
	"github.com/ipupy/tesoreria_backend/internal/dto"
)

// ChurchHandler handles church management requests.
type ChurchHandler struct {
	churchService portssvc.ChurchSvcFacade
}

// NewChurchHandler creates a new ChurchHandler.
func NewChurchHandler(cs portssvc.ChurchSvcFacade) *ChurchHandler {
	return &ChurchHandler{churchService: cs}
}

// registerChurchRoutes sets up the routes for church management.
func registerChurchRoutes(rg *gin.RouterGroup, cs portssvc.ChurchSvcFacade) {
	h := NewChurchHandler(cs)

	churches := rg.Group("/churches")
	{
		churches.POST("", h.CreateChurch)
		churches.GET("", h.ListChurches)
		churches.GET("/:churchID", h.GetChurch)
		churches.PUT("/:churchID", h.UpdateChurch)
		churches.DELETE("/:churchID", h.DeactivateChurch)
	}
}

// CreateChurch godoc
// @Summary Register a church
// @Description Registers a new congregation. Requires national-level access.
// @Tags churches
// @Accept json
// @Produce json
// @Param church body dto.CreateChurchRequest true "Church details"
// @Success 201 {object} dto.ChurchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /churches [post]
func (h *ChurchHandler) CreateChurch(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req dto.CreateChurchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	church, err := h.churchService.CreateChurch(c.Request.Context(), principalID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToChurchResponse(church))
}

// ListChurches godoc
// @Summary List churches
// @Description Lists churches visible to the caller. Church-scoped callers only see their own.
// @Tags churches
// @Produce json
// @Success 200 {array} dto.ChurchResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /churches [get]
func (h *ChurchHandler) ListChurches(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	churches, err := h.churchService.ListChurches(c.Request.Context(), principalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]dto.ChurchResponse, len(churches))
	for i := range churches {
		resp[i] = dto.ToChurchResponse(&churches[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetChurch godoc
// @Summary Get a church
// @Tags churches
// @Produce json
// @Param churchID path string true "Church ID"
// @Success 200 {object} dto.ChurchResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /churches/{churchID} [get]
func (h *ChurchHandler) GetChurch(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	church, err := h.churchService.GetChurch(c.Request.Context(), principalID, c.Param("churchID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToChurchResponse(church))
}

// UpdateChurch godoc
// @Summary Update church details
// @Tags churches
// @Accept json
// @Produce json
// @Param churchID path string true "Church ID"
// @Param church body dto.UpdateChurchRequest true "Fields to update"
// @Success 200 {object} dto.ChurchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /churches/{churchID} [put]
func (h *ChurchHandler) UpdateChurch(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req dto.UpdateChurchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	church, err := h.churchService.UpdateChurch(c.Request.Context(), principalID, c.Param("churchID"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToChurchResponse(church))
}

// DeactivateChurch godoc
// @Summary Deactivate a church
// @Description Marks a church inactive. Historical reports and postings are preserved.
// @Tags churches
// @Param churchID path string true "Church ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /churches/{churchID} [delete]
func (h *ChurchHandler) DeactivateChurch(c *gin.Context) {
	principalID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	if err := h.churchService.DeactivateChurch(c.Request.Context(), principalID, c.Param("churchID")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
