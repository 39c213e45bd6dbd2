package inventory

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dadopl/poc-flight-search/pkg/httpx"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/flights/:flightId/availability/initialize", h.InitializeHandler)
	router.GET("/v1/flights/:flightId/availability", h.GetAvailabilityHandler)
	router.POST("/v1/flights/:flightId/availability/book", h.BookHandler)
	router.POST("/v1/flights/:flightId/availability/cancel", h.CancelBookingHandler)
	router.POST("/v1/flights/:flightId/availability/block", h.BlockSeatsHandler)
	router.POST("/v1/flights/:flightId/availability/release", h.ReleaseBlockedSeatsHandler)
}

type initializeRequest struct {
	CabinClass                string `json:"cabin_class"`
	TotalSeats                int    `json:"total_seats"`
	MinimumAvailableThreshold int    `json:"minimum_available_threshold"`
}

func (h *Handler) InitializeHandler(c *gin.Context) {
	var req initializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.SendError(c, httpx.Validation("Invalid JSON body"))
		return
	}

	cabin, err := ParseCabinClass(req.CabinClass)
	if err != nil {
		httpx.SendError(c, httpx.Validation(err.Error()))
		return
	}

	inv, err := h.service.Initialize(c.Request.Context(), c.Param("flightId"), cabin, req.TotalSeats, req.MinimumAvailableThreshold)
	if err != nil {
		httpx.SendError(c, httpx.Validation(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, availabilityResponse(inv))
}

func (h *Handler) GetAvailabilityHandler(c *gin.Context) {
	inventories, err := h.service.FindByFlight(c.Request.Context(), c.Param("flightId"))
	if err != nil {
		sendInventoryError(c, err)
		return
	}

	out := make([]gin.H, 0, len(inventories))
	for _, inv := range inventories {
		out = append(out, availabilityResponse(inv))
	}
	c.JSON(http.StatusOK, gin.H{"availabilities": out})
}

type seatCountRequest struct {
	CabinClass string `json:"cabin_class"`
	Count      int    `json:"count"`
}

func (h *Handler) BookHandler(c *gin.Context) {
	h.seatOperation(c, h.service.Book)
}

func (h *Handler) CancelBookingHandler(c *gin.Context) {
	h.seatOperation(c, h.service.CancelBooking)
}

func (h *Handler) BlockSeatsHandler(c *gin.Context) {
	h.seatOperation(c, h.service.BlockSeats)
}

func (h *Handler) ReleaseBlockedSeatsHandler(c *gin.Context) {
	h.seatOperation(c, h.service.ReleaseBlockedSeats)
}

type seatOp func(ctx context.Context, flightID string, cabin CabinClass, count int) (*SeatInventory, error)

func (h *Handler) seatOperation(c *gin.Context, op seatOp) {
	var req seatCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.SendError(c, httpx.Validation("Invalid JSON body"))
		return
	}

	cabin, err := ParseCabinClass(req.CabinClass)
	if err != nil {
		httpx.SendError(c, httpx.Validation(err.Error()))
		return
	}

	inv, err := op(c.Request.Context(), c.Param("flightId"), cabin, req.Count)
	if err != nil {
		sendInventoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, availabilityResponse(inv))
}

func availabilityResponse(inv *SeatInventory) gin.H {
	return gin.H{
		"flight_id":       inv.FlightID,
		"cabin_class":     inv.CabinClass,
		"total_seats":     inv.TotalSeats,
		"booked_seats":    inv.BookedSeats,
		"blocked_seats":   inv.BlockedSeats,
		"available_seats": inv.AvailableSeats(),
		"is_available":    inv.IsAvailable(),
		"is_nearly_full":  inv.IsNearlyFull(),
	}
}

func sendInventoryError(c *gin.Context, err error) {
	var insufficientErr *InsufficientSeatsError

	switch {
	case errors.Is(err, ErrNotFound):
		httpx.SendError(c, httpx.NotFound(err.Error()))
	case errors.As(err, &insufficientErr):
		httpx.SendError(c, httpx.Conflict(err.Error()))
	default:
		httpx.SendError(c, httpx.Validation(err.Error()))
	}
}
