package flight

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dadopl/poc-flight-search/internal/airport"
	"github.com/dadopl/poc-flight-search/pkg/httpx"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/flights", h.ScheduleFlightHandler)
	router.GET("/v1/flights/:flightId", h.GetFlightHandler)
	router.POST("/v1/flights/:flightId/delay", h.DelayFlightHandler)
	router.POST("/v1/flights/:flightId/cancel", h.CancelFlightHandler)
	router.POST("/v1/flights/:flightId/board", h.BoardFlightHandler)
	router.POST("/v1/flights/:flightId/depart", h.DepartFlightHandler)
	router.POST("/v1/flights/:flightId/arrive", h.ArriveFlightHandler)
}

type scheduleFlightRequest struct {
	FlightNumber       string    `json:"flight_number"`
	DepartureIATA      string    `json:"departure_iata"`
	ArrivalIATA        string    `json:"arrival_iata"`
	DepartureTime      time.Time `json:"departure_time"`
	ArrivalTime        time.Time `json:"arrival_time"`
	AircraftModel      string    `json:"aircraft_model"`
	AircraftTotalSeats int       `json:"aircraft_total_seats"`
}

func (h *Handler) ScheduleFlightHandler(c *gin.Context) {
	var req scheduleFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.SendError(c, httpx.Validation("Invalid JSON body"))
		return
	}

	f, err := h.service.Schedule(c.Request.Context(), ScheduleRequest{
		FlightNumber:       req.FlightNumber,
		DepartureIATA:      req.DepartureIATA,
		ArrivalIATA:        req.ArrivalIATA,
		DepartureTime:      req.DepartureTime,
		ArrivalTime:        req.ArrivalTime,
		AircraftModel:      req.AircraftModel,
		AircraftTotalSeats: req.AircraftTotalSeats,
	})
	if err != nil {
		sendFlightError(c, err)
		return
	}

	c.JSON(http.StatusCreated, f)
}

func (h *Handler) GetFlightHandler(c *gin.Context) {
	f, err := h.service.FindByID(c.Request.Context(), c.Param("flightId"))
	if err != nil {
		sendFlightError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

type delayFlightRequest struct {
	NewDepartureTime time.Time `json:"new_departure_time"`
}

func (h *Handler) DelayFlightHandler(c *gin.Context) {
	var req delayFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.SendError(c, httpx.Validation("Invalid JSON body"))
		return
	}

	f, err := h.service.Delay(c.Request.Context(), c.Param("flightId"), req.NewDepartureTime)
	if err != nil {
		sendFlightError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

type cancelFlightRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) CancelFlightHandler(c *gin.Context) {
	var req cancelFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.SendError(c, httpx.Validation("Invalid JSON body"))
		return
	}

	f, err := h.service.Cancel(c.Request.Context(), c.Param("flightId"), req.Reason)
	if err != nil {
		sendFlightError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *Handler) BoardFlightHandler(c *gin.Context) {
	h.transition(c, h.service.Board)
}

func (h *Handler) DepartFlightHandler(c *gin.Context) {
	h.transition(c, h.service.Depart)
}

func (h *Handler) ArriveFlightHandler(c *gin.Context) {
	h.transition(c, h.service.Arrive)
}

func (h *Handler) transition(c *gin.Context, op func(ctx context.Context, flightID string) (*Flight, error)) {
	f, err := op(c.Request.Context(), c.Param("flightId"))
	if err != nil {
		sendFlightError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func sendFlightError(c *gin.Context, err error) {
	var transitionErr *InvalidTransitionError

	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, airport.ErrNotFound):
		httpx.SendError(c, httpx.NotFound(err.Error()))
	case errors.As(err, &transitionErr):
		httpx.SendError(c, httpx.Conflict(err.Error()))
	default:
		httpx.SendError(c, httpx.Validation(err.Error()))
	}
}
