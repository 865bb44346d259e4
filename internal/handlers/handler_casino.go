package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/SscSPs/player_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// casinoHandler handles the caller's casino settings and gaming day.
type casinoHandler struct {
	casinoService portssvc.CasinoSvcFacade
}

func registerCasinoRoutes(rg *gin.RouterGroup, casinoService portssvc.CasinoSvcFacade) {
	h := &casinoHandler{casinoService: casinoService}
	casino := rg.Group("/casino")
	{
		casino.GET("/settings", h.getSettings)
		casino.PUT("/settings", h.updateSettings)
		casino.GET("/gaming-day", h.getGamingDay)
	}
}

// getSettings godoc
// @Summary Get casino settings
// @Tags casino
// @Produce json
// @Success 200 {object} middleware.Envelope{data=domain.CasinoSettings}
// @Security BearerAuth
// @Router /casino/settings [get]
func (h *casinoHandler) getSettings(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	settings, err := h.casinoService.GetSettings(c.Request.Context(), actor)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, settings)
}

// updateSettings godoc
// @Summary Update casino settings
// @Description Changes timezone, gaming day start, loyalty rate or close rules. Admin only.
// @Tags casino
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param settings body dto.UpdateCasinoSettingsRequest true "Settings to change"
// @Success 200 {object} middleware.Envelope{data=domain.CasinoSettings}
// @Failure 400 {object} middleware.Envelope
// @Failure 403 {object} middleware.Envelope
// @Security BearerAuth
// @Router /casino/settings [put]
func (h *casinoHandler) updateSettings(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateCasinoSettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	settings, err := h.casinoService.UpdateSettings(c.Request.Context(), actor, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, settings)
}

// getGamingDay godoc
// @Summary Resolve a gaming day
// @Description Returns the gaming day containing an instant (default now) and the range it covers
// @Tags casino
// @Produce json
// @Param at query string false "RFC 3339 instant"
// @Success 200 {object} middleware.Envelope{data=dto.GamingDayResponse}
// @Failure 400 {object} middleware.Envelope
// @Security BearerAuth
// @Router /casino/gaming-day [get]
func (h *casinoHandler) getGamingDay(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	at, ok := parseAt(c, "at")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	settings, err := h.casinoService.GetSettings(ctx, actor)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	day, err := h.casinoService.ResolveGamingDay(ctx, actor.CasinoID, at)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	from, to, err := h.casinoService.GamingDayBounds(ctx, actor.CasinoID, day)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, dto.GamingDayResponse{
		GamingDay: day,
		Timezone:  settings.Timezone,
		StartsAt:  from,
		EndsAt:    to,
	})
}
