package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/SscSPs/player_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// slipPresenter renders slips with their live played time and gaming day.
type slipPresenter struct {
	gamingDays portssvc.GamingDaySvc
	now        func() time.Time
}

func (p slipPresenter) asOf() time.Time {
	if p.now != nil {
		return p.now().UTC()
	}
	return time.Now().UTC()
}

func (p slipPresenter) one(ctx context.Context, actor domain.Actor, slip *domain.RatingSlip) (dto.RatingSlipResponse, error) {
	day, err := p.gamingDays.ResolveGamingDay(ctx, actor.CasinoID, slip.StartTime)
	if err != nil {
		return dto.RatingSlipResponse{}, err
	}
	return dto.ToRatingSlipResponse(slip, day, p.asOf()), nil
}

func (p slipPresenter) list(ctx context.Context, actor domain.Actor, slips []domain.RatingSlip) ([]dto.RatingSlipResponse, error) {
	views := make([]dto.RatingSlipResponse, len(slips))
	for i := range slips {
		view, err := p.one(ctx, actor, &slips[i])
		if err != nil {
			return nil, err
		}
		views[i] = view
	}
	return views, nil
}

// ratingSlipHandler handles the rating slip lifecycle.
type ratingSlipHandler struct {
	ratingSlipService portssvc.RatingSlipSvcFacade
	slipViews         slipPresenter
}

func registerRatingSlipRoutes(rg *gin.RouterGroup, ratingSlipService portssvc.RatingSlipSvcFacade, gamingDays portssvc.GamingDaySvc) {
	h := &ratingSlipHandler{ratingSlipService: ratingSlipService, slipViews: slipPresenter{gamingDays: gamingDays}}
	slips := rg.Group("/rating-slips")
	{
		slips.POST("", h.startSlip)
		slips.GET("/:id", h.getSlip)
		slips.POST("/:id/pause", h.pauseSlip)
		slips.POST("/:id/resume", h.resumeSlip)
		slips.POST("/:id/close", h.closeSlip)
		slips.POST("/:id/move", h.moveSlip)
		slips.POST("/:id/accrue", h.accrueLoyalty)
		slips.PUT("/:id/average-bet", h.updateAverageBet)
	}
}

func (h *ratingSlipHandler) respondSlip(c *gin.Context, actor domain.Actor, status int, slip *domain.RatingSlip) {
	view, err := h.slipViews.one(c.Request.Context(), actor, slip)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, status, view)
}

// startSlip godoc
// @Summary Start a rating slip
// @Description Opens a slip for an active visit at a seat of an active table
// @Tags rating-slips
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param slip body dto.StartRatingSlipRequest true "Visit, table and seat"
// @Success 201 {object} middleware.Envelope{data=dto.RatingSlipResponse}
// @Failure 400 {object} middleware.Envelope
// @Failure 409 {object} middleware.Envelope "Player already has an active slip at the table"
// @Security BearerAuth
// @Router /rating-slips [post]
func (h *ratingSlipHandler) startSlip(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.StartRatingSlipRequest
	if !bindJSON(c, &req) {
		return
	}
	slip, err := h.ratingSlipService.StartSlip(c.Request.Context(), actor, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	h.respondSlip(c, actor, http.StatusCreated, slip)
}

// getSlip godoc
// @Summary Get a rating slip
// @Tags rating-slips
// @Produce json
// @Param id path string true "Rating slip ID"
// @Success 200 {object} middleware.Envelope{data=dto.RatingSlipResponse}
// @Failure 404 {object} middleware.Envelope
// @Security BearerAuth
// @Router /rating-slips/{id} [get]
func (h *ratingSlipHandler) getSlip(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	slipID, ok := pathID(c, "id", domain.ErrSlipNotFound)
	if !ok {
		return
	}
	slip, err := h.ratingSlipService.GetSlip(c.Request.Context(), actor, slipID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	h.respondSlip(c, actor, http.StatusOK, slip)
}

// pauseSlip godoc
// @Summary Pause a rating slip
// @Tags rating-slips
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param id path string true "Rating slip ID"
// @Success 200 {object} middleware.Envelope{data=dto.RatingSlipResponse}
// @Failure 409 {object} middleware.Envelope "Slip is not open"
// @Security BearerAuth
// @Router /rating-slips/{id}/pause [post]
func (h *ratingSlipHandler) pauseSlip(c *gin.Context) {
	h.transition(c, h.ratingSlipService.PauseSlip)
}

// resumeSlip godoc
// @Summary Resume a paused rating slip
// @Tags rating-slips
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param id path string true "Rating slip ID"
// @Success 200 {object} middleware.Envelope{data=dto.RatingSlipResponse}
// @Failure 409 {object} middleware.Envelope "Slip is not paused"
// @Security BearerAuth
// @Router /rating-slips/{id}/resume [post]
func (h *ratingSlipHandler) resumeSlip(c *gin.Context) {
	h.transition(c, h.ratingSlipService.ResumeSlip)
}

func (h *ratingSlipHandler) transition(c *gin.Context, fn func(ctx context.Context, actor domain.Actor, slipID string) (*domain.RatingSlip, error)) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	slipID, ok := pathID(c, "id", domain.ErrSlipNotFound)
	if !ok {
		return
	}
	slip, err := fn(c.Request.Context(), actor, slipID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	h.respondSlip(c, actor, http.StatusOK, slip)
}

// closeSlip godoc
// @Summary Close a rating slip
// @Description Closes an open or paused slip. An active pause ends at the close instant and is excluded from the played time.
// @Tags rating-slips
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param id path string true "Rating slip ID"
// @Param close body dto.CloseRatingSlipRequest false "Final average bet"
// @Success 200 {object} middleware.Envelope{data=dto.RatingSlipResponse}
// @Failure 409 {object} middleware.Envelope "Slip already closed"
// @Security BearerAuth
// @Router /rating-slips/{id}/close [post]
func (h *ratingSlipHandler) closeSlip(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	slipID, ok := pathID(c, "id", domain.ErrSlipNotFound)
	if !ok {
		return
	}
	var req dto.CloseRatingSlipRequest
	// The body is optional.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middleware.RespondError(c, bindError(err))
		return
	}
	slip, err := h.ratingSlipService.CloseSlip(c.Request.Context(), actor, slipID, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	h.respondSlip(c, actor, http.StatusOK, slip)
}

// updateAverageBet godoc
// @Summary Set the average bet of an active slip
// @Tags rating-slips
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param id path string true "Rating slip ID"
// @Param bet body dto.UpdateAverageBetRequest true "Average bet"
// @Success 200 {object} middleware.Envelope{data=dto.RatingSlipResponse}
// @Failure 400 {object} middleware.Envelope
// @Failure 409 {object} middleware.Envelope "Slip is closed"
// @Security BearerAuth
// @Router /rating-slips/{id}/average-bet [put]
func (h *ratingSlipHandler) updateAverageBet(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	slipID, ok := pathID(c, "id", domain.ErrSlipNotFound)
	if !ok {
		return
	}
	var req dto.UpdateAverageBetRequest
	if !bindJSON(c, &req) {
		return
	}
	slip, err := h.ratingSlipService.UpdateAverageBet(c.Request.Context(), actor, slipID, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	h.respondSlip(c, actor, http.StatusOK, slip)
}

// moveSlip godoc
// @Summary Move a player to another seat
// @Description Closes the slip and starts a new one for the same visit at the target seat
// @Tags rating-slips
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param id path string true "Rating slip ID"
// @Param move body dto.MoveRatingSlipRequest true "Target table and seat"
// @Success 200 {object} middleware.Envelope{data=dto.MoveRatingSlipResponse}
// @Failure 409 {object} middleware.Envelope
// @Security BearerAuth
// @Router /rating-slips/{id}/move [post]
func (h *ratingSlipHandler) moveSlip(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	slipID, ok := pathID(c, "id", domain.ErrSlipNotFound)
	if !ok {
		return
	}
	var req dto.MoveRatingSlipRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.ratingSlipService.MoveSlip(c.Request.Context(), actor, slipID, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, resp)
}

// accrueLoyalty godoc
// @Summary Retry the loyalty accrual of a closed slip
// @Description Records the points of a closed slip if they were not recorded at close. A slip accrues at most once.
// @Tags rating-slips
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param id path string true "Rating slip ID"
// @Success 200 {object} middleware.Envelope{data=dto.AccrueLoyaltyResponse}
// @Failure 409 {object} middleware.Envelope "Slip is not closed"
// @Security BearerAuth
// @Router /rating-slips/{id}/accrue [post]
func (h *ratingSlipHandler) accrueLoyalty(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	slipID, ok := pathID(c, "id", domain.ErrSlipNotFound)
	if !ok {
		return
	}
	entry, err := h.ratingSlipService.AccrueLoyalty(c.Request.Context(), actor, slipID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, dto.AccrueLoyaltyResponse{Accrued: entry != nil, Entry: entry})
}
