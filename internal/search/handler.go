package search

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dadopl/poc-flight-search/internal/inventory"
	"github.com/dadopl/poc-flight-search/pkg/httpx"
	"github.com/dadopl/poc-flight-search/pkg/money"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type Handler struct {
	orchestrator *Orchestrator
}

func NewHandler(o *Orchestrator) *Handler {
	return &Handler{orchestrator: o}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/search", h.InitiateSearchHandler)
	router.GET("/v1/search/:sessionId", h.GetSessionHandler)
	router.GET("/v1/search/:sessionId/results", h.GetResultsHandler)
	router.GET("/v1/availability/check", h.CheckAvailabilityHandler)
}

type initiateSearchRequest struct {
	DepartureIATA      string `json:"departure_iata"`
	ArrivalIATA        string `json:"arrival_iata"`
	DepartureDate      string `json:"departure_date"`
	PassengerCount     int    `json:"passenger_count"`
	CabinClass         string `json:"cabin_class"`
	MaxPriceAmount     *int64 `json:"max_price_amount,omitempty"`
	MaxPriceCurrency   string `json:"max_price_currency,omitempty"`
	MaxDurationMinutes *int   `json:"max_duration_minutes,omitempty"`
	DirectOnly         bool   `json:"direct_only,omitempty"`
}

func (h *Handler) InitiateSearchHandler(c *gin.Context) {
	var req initiateSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.SendError(c, httpx.Validation("Invalid JSON body"))
		return
	}

	criteria := Criteria{
		DepartureIATA:  req.DepartureIATA,
		ArrivalIATA:    req.ArrivalIATA,
		DepartureDate:  req.DepartureDate,
		PassengerCount: req.PassengerCount,
		CabinClass:     inventory.CabinClass(req.CabinClass),
	}

	filters := Filters{
		MaxDurationMinutes: req.MaxDurationMinutes,
		DirectOnly:         req.DirectOnly,
	}
	if req.MaxPriceAmount != nil {
		maxPrice, err := money.New(*req.MaxPriceAmount, req.MaxPriceCurrency)
		if err != nil {
			httpx.SendError(c, httpx.Validation(err.Error()))
			return
		}
		filters.MaxPrice = &maxPrice
	}

	sessionID, err := h.orchestrator.Initiate(c.Request.Context(), criteria, filters)
	if err != nil {
		var invalidErr *InvalidRequestError
		if errors.As(err, &invalidErr) {
			httpx.SendError(c, httpx.Validation(err.Error()))
			return
		}
		// store or execution-plumbing failure: generic 500
		httpx.SendError(c, err)
		return
	}

	session, err := h.orchestrator.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		httpx.SendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *Handler) GetSessionHandler(c *gin.Context) {
	session, err := h.orchestrator.GetSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			httpx.SendError(c, httpx.NotFound(err.Error()))
			return
		}
		httpx.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *Handler) GetResultsHandler(c *gin.Context) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		httpx.SendError(c, httpx.Validation(err.Error()))
		return
	}
	perPage, err := queryInt(c, "per_page", defaultPerPage)
	if err != nil {
		httpx.SendError(c, httpx.Validation(err.Error()))
		return
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	// Unknown session ids 404 instead of masquerading as an empty page.
	if _, err := h.orchestrator.GetSession(c.Request.Context(), c.Param("sessionId")); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			httpx.SendError(c, httpx.NotFound(err.Error()))
			return
		}
		httpx.SendError(c, err)
		return
	}

	results, err := h.orchestrator.GetResults(c.Request.Context(), c.Param("sessionId"), page, perPage)
	if err != nil {
		httpx.SendError(c, httpx.Validation(err.Error()))
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handler) CheckAvailabilityHandler(c *gin.Context) {
	cabinRaw := c.Query("cabin")
	if cabinRaw == "" {
		cabinRaw = string(inventory.CabinEconomy)
	}
	cabin, err := inventory.ParseCabinClass(cabinRaw)
	if err != nil {
		httpx.SendError(c, httpx.Validation(err.Error()))
		return
	}

	date, err := time.Parse(DateLayout, c.Query("date"))
	if err != nil {
		httpx.SendError(c, httpx.Validation("invalid date, expected YYYY-MM-DD"))
		return
	}

	items, err := h.orchestrator.CheckAvailability(c.Request.Context(),
		c.Query("departure_iata"), c.Query("arrival_iata"), date, cabin)
	if err != nil {
		httpx.SendError(c, httpx.Validation(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"flights": items})
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return v, nil
}
