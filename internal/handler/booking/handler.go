package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/booking-api/internal/middleware"
	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/service/booking"
)

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/bookings", h.CreateBooking)
}

// CreateBooking commits one appointment. A lost race against a concurrent
// booker comes back as 409 slot_unavailable; the client is expected to
// recompute availability before retrying.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"reason": "invalid_input", "message": err.Error()})
		return
	}

	tenantID := middleware.TenantFromContext(c)
	apt, err := h.service.Book(c.Request.Context(), tenantID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, model.BookingResult{
		AppointmentID: apt.ID,
		StaffID:       *apt.StaffID,
		Date:          model.FormatDate(apt.Date),
		StartTime:     apt.StartTime,
		EndTime:       apt.EndTime,
	})
}
