package handlers

import (
	"net/http"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/SscSPs/player_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tableHandler handles the gaming tables on the floor.
type tableHandler struct {
	tableService portssvc.TableSvcFacade
	slipViews    slipPresenter
}

func registerTableRoutes(rg *gin.RouterGroup, tableService portssvc.TableSvcFacade, gamingDays portssvc.GamingDaySvc) {
	h := &tableHandler{tableService: tableService, slipViews: slipPresenter{gamingDays: gamingDays}}
	tables := rg.Group("/tables")
	{
		tables.POST("", h.createTable)
		tables.GET("", h.listTables)
		tables.GET("/:id", h.getTable)
		tables.POST("/:id/status", h.setStatus)
		tables.GET("/:id/rating-slips", h.listActiveSlips)
	}
}

// createTable godoc
// @Summary Add a gaming table
// @Tags tables
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param table body dto.CreateTableRequest true "Table settings"
// @Success 201 {object} middleware.Envelope{data=domain.GamingTable}
// @Failure 400 {object} middleware.Envelope
// @Failure 409 {object} middleware.Envelope "Label already in use"
// @Security BearerAuth
// @Router /tables [post]
func (h *tableHandler) createTable(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateTableRequest
	if !bindJSON(c, &req) {
		return
	}
	table, err := h.tableService.CreateTable(c.Request.Context(), actor, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusCreated, table)
}

// listTables godoc
// @Summary List gaming tables
// @Tags tables
// @Produce json
// @Param status query string false "active, inactive or closed"
// @Success 200 {object} middleware.Envelope{data=[]domain.GamingTable}
// @Security BearerAuth
// @Router /tables [get]
func (h *tableHandler) listTables(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.ListTablesParams
	if !bindQuery(c, &params) {
		return
	}
	var status *domain.TableStatus
	if params.Status != "" {
		s := domain.TableStatus(params.Status)
		status = &s
	}
	tables, err := h.tableService.ListTables(c.Request.Context(), actor, status)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, tables)
}

// getTable godoc
// @Summary Get a gaming table
// @Tags tables
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} middleware.Envelope{data=domain.GamingTable}
// @Failure 404 {object} middleware.Envelope
// @Security BearerAuth
// @Router /tables/{id} [get]
func (h *tableHandler) getTable(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	tableID, ok := pathID(c, "id", domain.ErrTableNotFound)
	if !ok {
		return
	}
	table, err := h.tableService.GetTable(c.Request.Context(), actor, tableID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, table)
}

// setStatus godoc
// @Summary Change a table's status
// @Description A table with open or paused slips can only stay active
// @Tags tables
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param id path string true "Table ID"
// @Param status body dto.SetTableStatusRequest true "New status"
// @Success 200 {object} middleware.Envelope{data=domain.GamingTable}
// @Failure 409 {object} middleware.Envelope "Table has active slips"
// @Security BearerAuth
// @Router /tables/{id}/status [post]
func (h *tableHandler) setStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	tableID, ok := pathID(c, "id", domain.ErrTableNotFound)
	if !ok {
		return
	}
	var req dto.SetTableStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	table, err := h.tableService.SetTableStatus(c.Request.Context(), actor, tableID, req.Status)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, table)
}

// listActiveSlips godoc
// @Summary List the active slips at a table
// @Tags tables
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} middleware.Envelope{data=[]dto.RatingSlipResponse}
// @Failure 404 {object} middleware.Envelope
// @Security BearerAuth
// @Router /tables/{id}/rating-slips [get]
func (h *tableHandler) listActiveSlips(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	tableID, ok := pathID(c, "id", domain.ErrTableNotFound)
	if !ok {
		return
	}
	slips, err := h.tableService.ListActiveSlips(c.Request.Context(), actor, tableID)
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
