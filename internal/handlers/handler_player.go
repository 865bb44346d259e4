package handlers

import (
	"net/http"
	"strconv"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/SscSPs/player_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/SscSPs/player_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// playerHandler handles player enrolment, search and the per-player views of visits and loyalty.
type playerHandler struct {
	playerService  portssvc.PlayerSvcFacade
	visitService   portssvc.VisitSvcFacade
	loyaltyService portssvc.LoyaltySvcFacade
}

func registerPlayerRoutes(rg *gin.RouterGroup, playerService portssvc.PlayerSvcFacade, visitService portssvc.VisitSvcFacade, loyaltyService portssvc.LoyaltySvcFacade) {
	h := &playerHandler{playerService: playerService, visitService: visitService, loyaltyService: loyaltyService}
	players := rg.Group("/players")
	{
		players.POST("", h.createPlayer)
		players.GET("", h.searchPlayers)
		players.GET("/:id", h.getPlayer)
		players.PUT("/:id", h.updatePlayer)
		players.GET("/:id/visits/active", h.getActiveVisit)
		players.GET("/:id/loyalty", h.getLoyalty)
		players.POST("/:id/loyalty/adjustments", h.adjustPoints)
	}
}

// createPlayer godoc
// @Summary Enrol a player
// @Tags players
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param player body dto.CreatePlayerRequest true "Player details"
// @Success 201 {object} middleware.Envelope{data=domain.Player}
// @Failure 400 {object} middleware.Envelope
// @Security BearerAuth
// @Router /players [post]
func (h *playerHandler) createPlayer(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreatePlayerRequest
	if !bindJSON(c, &req) {
		return
	}
	player, err := h.playerService.CreatePlayer(c.Request.Context(), actor, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusCreated, player)
}

// searchPlayers godoc
// @Summary Search players
// @Description Case-insensitive name prefix search, ordered by last name, paged with nextToken
// @Tags players
// @Produce json
// @Param q query string false "Name prefix"
// @Param limit query int false "Page size (max 200)"
// @Param nextToken query string false "Token of the next page"
// @Success 200 {object} middleware.Envelope{data=dto.ListPlayersResponse}
// @Security BearerAuth
// @Router /players [get]
func (h *playerHandler) searchPlayers(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.SearchPlayersParams
	if !bindQuery(c, &params) {
		return
	}
	resp, err := h.playerService.SearchPlayers(c.Request.Context(), actor, params)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, resp)
}

// getPlayer godoc
// @Summary Get a player
// @Tags players
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {object} middleware.Envelope{data=domain.Player}
// @Failure 404 {object} middleware.Envelope
// @Security BearerAuth
// @Router /players/{id} [get]
func (h *playerHandler) getPlayer(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	playerID, ok := pathID(c, "id", domain.ErrPlayerNotFound)
	if !ok {
		return
	}
	player, err := h.playerService.GetPlayer(c.Request.Context(), actor, playerID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, player)
}

// updatePlayer godoc
// @Summary Update a player
// @Tags players
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param id path string true "Player ID"
// @Param player body dto.UpdatePlayerRequest true "Fields to change"
// @Success 200 {object} middleware.Envelope{data=domain.Player}
// @Failure 400 {object} middleware.Envelope
// @Failure 404 {object} middleware.Envelope
// @Security BearerAuth
// @Router /players/{id} [put]
func (h *playerHandler) updatePlayer(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	playerID, ok := pathID(c, "id", domain.ErrPlayerNotFound)
	if !ok {
		return
	}
	var req dto.UpdatePlayerRequest
	if !bindJSON(c, &req) {
		return
	}
	player, err := h.playerService.UpdatePlayer(c.Request.Context(), actor, playerID, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, player)
}

// getActiveVisit godoc
// @Summary Get a player's active visit
// @Tags players
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {object} middleware.Envelope{data=domain.Visit}
// @Failure 404 {object} middleware.Envelope "No active visit"
// @Security BearerAuth
// @Router /players/{id}/visits/active [get]
func (h *playerHandler) getActiveVisit(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	playerID, ok := pathID(c, "id", domain.ErrPlayerNotFound)
	if !ok {
		return
	}
	visit, err := h.visitService.GetActiveVisitForPlayer(c.Request.Context(), actor, playerID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, visit)
}

// getLoyalty godoc
// @Summary Get a player's loyalty balance
// @Tags loyalty
// @Produce json
// @Param id path string true "Player ID"
// @Param limit query int false "Number of recent entries (max 200)"
// @Success 200 {object} middleware.Envelope{data=dto.LoyaltyResponse}
// @Failure 404 {object} middleware.Envelope
// @Security BearerAuth
// @Router /players/{id}/loyalty [get]
func (h *playerHandler) getLoyalty(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	playerID, ok := pathID(c, "id", domain.ErrPlayerNotFound)
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			middleware.RespondError(c, apperrors.Wrapf(apperrors.ErrValidation, "limit must be a positive integer"))
			return
		}
		limit = n
	}
	resp, err := h.loyaltyService.GetLoyalty(c.Request.Context(), actor, playerID, limit)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, resp)
}

// adjustPoints godoc
// @Summary Adjust a player's points
// @Description Credits (positive) or debits (negative) points. Admin only.
// @Tags loyalty
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param id path string true "Player ID"
// @Param adjustment body dto.AdjustPointsRequest true "Points and reason"
// @Success 201 {object} middleware.Envelope{data=dto.AdjustPointsResponse}
// @Success 200 {object} middleware.Envelope{data=dto.AdjustPointsResponse} "Replayed"
// @Failure 400 {object} middleware.Envelope
// @Failure 403 {object} middleware.Envelope
// @Failure 409 {object} middleware.Envelope "Balance would go negative"
// @Security BearerAuth
// @Router /players/{id}/loyalty/adjustments [post]
func (h *playerHandler) adjustPoints(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	playerID, ok := pathID(c, "id", domain.ErrPlayerNotFound)
	if !ok {
		return
	}
	var req dto.AdjustPointsRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.loyaltyService.AdjustPoints(c.Request.Context(), actor, playerID, middleware.GetIdempotencyKey(c), req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	status := http.StatusCreated
	if !resp.Created {
		status = http.StatusOK
	}
	middleware.RespondOK(c, status, resp)
}
