package handlers

import (
	"log/slog"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/SscSPs/player_tracker/internal/middleware"
	"github.com/SscSPs/player_tracker/internal/platform/events"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func registerRealtimeRoutes(rg *gin.RouterGroup, hub *events.Hub) {
	if hub == nil {
		return
	}
	rg.GET("/realtime/tables", func(c *gin.Context) { streamTables(c, hub) })
}

// streamTables godoc
// @Summary Stream floor events
// @Description Upgrades to a websocket that receives the caller's casino floor events, optionally for one table
// @Tags realtime
// @Param tableID query string false "Only events of this table"
// @Success 101 "Switching protocols"
// @Security BearerAuth
// @Router /realtime/tables [get]
func streamTables(c *gin.Context, hub *events.Hub) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	tableID := c.Query("tableID")
	if tableID != "" {
		if _, err := uuid.Parse(tableID); err != nil {
			middleware.RespondError(c, domain.ErrTableNotFound)
			return
		}
	}
	if err := hub.Serve(c.Writer, c.Request, actor.CasinoID, tableID); err != nil {
		// The upgrader has already written the failure response.
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Websocket upgrade failed", slog.String("error", err.Error()))
	}
}
