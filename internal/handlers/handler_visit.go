package handlers

import (
	"net/http"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/SscSPs/player_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// visitHandler handles visits and the views hanging off a visit.
type visitHandler struct {
	visitService      portssvc.VisitSvcFacade
	ratingSlipService portssvc.RatingSlipSvcFacade
	financialService  portssvc.FinancialSvcFacade
	slipViews         slipPresenter
}

func registerVisitRoutes(rg *gin.RouterGroup, svc *portssvc.ServiceContainer) {
	h := &visitHandler{
		visitService:      svc.Visit,
		ratingSlipService: svc.RatingSlip,
		financialService:  svc.Financial,
		slipViews:         slipPresenter{gamingDays: svc.Casino},
	}
	visits := rg.Group("/visits")
	{
		visits.POST("", h.startVisit)
		visits.GET("/:id", h.getVisit)
		visits.POST("/:id/end", h.endVisit)
		visits.GET("/:id/rating-slips", h.listRatingSlips)
		visits.GET("/:id/financial-summary", h.financialSummary)
	}
}

// startVisit godoc
// @Summary Start a visit
// @Description Opens a visit for a player, or a ghost visit for unrated play when playerID is omitted
// @Tags visits
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param visit body dto.StartVisitRequest true "Visit"
// @Success 201 {object} middleware.Envelope{data=domain.Visit}
// @Failure 409 {object} middleware.Envelope "Player already has an active visit"
// @Security BearerAuth
// @Router /visits [post]
func (h *visitHandler) startVisit(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.StartVisitRequest
	if !bindJSON(c, &req) {
		return
	}
	visit, err := h.visitService.StartVisit(c.Request.Context(), actor, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusCreated, visit)
}

// getVisit godoc
// @Summary Get a visit
// @Tags visits
// @Produce json
// @Param id path string true "Visit ID"
// @Success 200 {object} middleware.Envelope{data=domain.Visit}
// @Failure 404 {object} middleware.Envelope
// @Security BearerAuth
// @Router /visits/{id} [get]
func (h *visitHandler) getVisit(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	visitID, ok := pathID(c, "id", domain.ErrVisitNotFound)
	if !ok {
		return
	}
	visit, err := h.visitService.GetVisit(c.Request.Context(), actor, visitID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, visit)
}

// endVisit godoc
// @Summary End a visit
// @Description Ends a visit that has no open or paused rating slips
// @Tags visits
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param id path string true "Visit ID"
// @Success 200 {object} middleware.Envelope{data=domain.Visit}
// @Failure 409 {object} middleware.Envelope "Visit has active slips or already ended"
// @Security BearerAuth
// @Router /visits/{id}/end [post]
func (h *visitHandler) endVisit(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	visitID, ok := pathID(c, "id", domain.ErrVisitNotFound)
	if !ok {
		return
	}
	visit, err := h.visitService.EndVisit(c.Request.Context(), actor, visitID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, visit)
}

// listRatingSlips godoc
// @Summary List the rating slips of a visit
// @Tags visits
// @Produce json
// @Param id path string true "Visit ID"
// @Success 200 {object} middleware.Envelope{data=[]dto.RatingSlipResponse}
// @Failure 404 {object} middleware.Envelope
// @Security BearerAuth
// @Router /visits/{id}/rating-slips [get]
func (h *visitHandler) listRatingSlips(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	visitID, ok := pathID(c, "id", domain.ErrVisitNotFound)
	if !ok {
		return
	}
	slips, err := h.ratingSlipService.ListSlipsForVisit(c.Request.Context(), actor, visitID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	views, err := h.slipViews.list(c.Request.Context(), actor, slips)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, views)
}

// financialSummary godoc
// @Summary Summarize the cash movements of a visit
// @Tags visits
// @Produce json
// @Param id path string true "Visit ID"
// @Success 200 {object} middleware.Envelope{data=dto.VisitFinancialSummaryResponse}
// @Failure 404 {object} middleware.Envelope
// @Security BearerAuth
// @Router /visits/{id}/financial-summary [get]
func (h *visitHandler) financialSummary(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	visitID, ok := pathID(c, "id", domain.ErrVisitNotFound)
	if !ok {
		return
	}
	summary, err := h.financialService.VisitSummary(c.Request.Context(), actor, visitID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, summary)
}
