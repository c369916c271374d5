package workwindow

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/handler"
	"github.com/jwalitptl/booking-api/internal/middleware"
	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/service/schedule"
)

type Handler struct {
	service *schedule.Service
}

func NewHandler(service *schedule.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/staff/:staff_id/work-windows", h.ListWindows)
	r.POST("/staff/:staff_id/work-windows", h.CreateWindow)
	r.DELETE("/staff/:staff_id/work-windows/:id", h.DeleteWindow)
}

func (h *Handler) ListWindows(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("staff_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid staff ID"))
		return
	}

	windows, err := h.service.ListWindows(c.Request.Context(), middleware.TenantFromContext(c), staffID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(windows))
}

func (h *Handler) CreateWindow(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("staff_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid staff ID"))
		return
	}

	var req model.CreateWorkWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"reason": "invalid_input", "message": err.Error()})
		return
	}

	window, err := h.service.CreateWindow(c.Request.Context(), middleware.TenantFromContext(c), staffID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(window))
}

func (h *Handler) DeleteWindow(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid window ID"))
		return
	}

	if err := h.service.DeleteWindow(c.Request.Context(), middleware.TenantFromContext(c), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
