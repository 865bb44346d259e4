package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/player_tracker/internal/core/ports/services"
	"github.com/SscSPs/player_tracker/internal/dto"
	"github.com/SscSPs/player_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles staff login and staff management.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes registers the public login route.
func registerAuthRoutes(r gin.IRouter, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.login)
	}
}

// registerStaffRoutes registers staff management routes.
func registerStaffRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)
	staff := rg.Group("/staff")
	{
		staff.POST("", h.createStaff)
		staff.GET("", h.listStaff)
	}
}

// login godoc
// @Summary Staff login
// @Description Checks staff credentials and returns a session token bound to the staff member's casino and role
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Staff credentials"
// @Success 200 {object} middleware.Envelope{data=dto.LoginResponse}
// @Failure 400 {object} middleware.Envelope "Invalid input"
// @Failure 401 {object} middleware.Envelope "Invalid credentials"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	logger.Info("Staff logged in", slog.String("staff_id", resp.Staff.StaffID))
	middleware.RespondOK(c, http.StatusOK, resp)
}

// createStaff godoc
// @Summary Add a staff member
// @Description Adds a staff member to the caller's casino. Admin only.
// @Tags staff
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param staff body dto.CreateStaffRequest true "Staff details"
// @Success 201 {object} middleware.Envelope{data=dto.StaffResponse}
// @Failure 400 {object} middleware.Envelope
// @Failure 403 {object} middleware.Envelope
// @Failure 409 {object} middleware.Envelope "Email already in use"
// @Security BearerAuth
// @Router /staff [post]
func (h *authHandler) createStaff(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	staff, err := h.authService.CreateStaff(c.Request.Context(), actor, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusCreated, dto.ToStaffResponse(staff))
}

// listStaff godoc
// @Summary List staff
// @Description Lists the staff of the caller's casino. Admin only.
// @Tags staff
// @Produce json
// @Success 200 {object} middleware.Envelope{data=[]dto.StaffResponse}
// @Failure 403 {object} middleware.Envelope
// @Security BearerAuth
// @Router /staff [get]
func (h *authHandler) listStaff(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	staff, err := h.authService.ListStaff(c.Request.Context(), actor)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, dto.ToListStaffResponse(staff))
}
