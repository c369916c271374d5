package availability

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/middleware"
	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/service/availability"
)

type Handler struct {
	service *availability.Service
}

func NewHandler(service *availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/availability", h.GetAvailability)
}

// GetAvailability answers "what times are bookable" for a service on a date.
// The result is advisory: a listed slot can be claimed by a concurrent
// booking before the caller commits.
func (h *Handler) GetAvailability(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"reason": "invalid_input", "message": "invalid service_id"})
		return
	}

	date, err := model.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"reason": "invalid_input", "message": "invalid date"})
		return
	}

	var staffID *uuid.UUID
	if raw := c.Query("staff_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"reason": "invalid_input", "message": "invalid staff_id"})
			return
		}
		staffID = &id
	}

	tenantID := middleware.TenantFromContext(c)
	slots, err := h.service.ComputeAvailableSlots(c.Request.Context(), tenantID, serviceID, date, staffID)
	if err != nil {
		c.Error(err)
		return
	}

	if slots == nil {
		slots = []model.TimeOfDay{}
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
