package pricing

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dadopl/poc-flight-search/internal/inventory"
	"github.com/dadopl/poc-flight-search/pkg/httpx"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/v1/flights/:flightId/price", h.GetPriceHandler)
}

func (h *Handler) GetPriceHandler(c *gin.Context) {
	cabin, err := inventory.ParseCabinClass(c.Query("cabin"))
	if err != nil {
		httpx.SendError(c, httpx.Validation(err.Error()))
		return
	}

	departureTime, err := time.Parse(time.RFC3339, c.Query("departure_time"))
	if err != nil {
		httpx.SendError(c, httpx.Validation("invalid departure_time, expected RFC3339"))
		return
	}

	passengers, err := strconv.Atoi(c.Query("passengers"))
	if err != nil || passengers < 1 {
		httpx.SendError(c, httpx.Validation("invalid passengers, expected positive integer"))
		return
	}

	availableSeats, err := strconv.Atoi(c.Query("available_seats"))
	if err != nil || availableSeats < 0 {
		httpx.SendError(c, httpx.Validation("invalid available_seats"))
		return
	}

	totalSeats, err := strconv.Atoi(c.Query("total_seats"))
	if err != nil || totalSeats < 0 {
		httpx.SendError(c, httpx.Validation("invalid total_seats"))
		return
	}

	price, appliedRules, err := h.service.ComputePrice(
		c.Request.Context(), c.Param("flightId"), cabin, departureTime,
		passengers, availableSeats, totalSeats,
	)
	if err != nil {
		httpx.SendError(c, err)
		return
	}
	if price == nil {
		httpx.SendError(c, httpx.NotFound("no fare schedule for flight and cabin"))
		return
	}

	if appliedRules == nil {
		appliedRules = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"price":         price,
		"applied_rules": appliedRules,
	})
}
