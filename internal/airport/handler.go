package airport

import (
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
	router.POST("/v1/airports", h.CreateAirportHandler)
	router.GET("/v1/airports", h.ListAirportsHandler)
	router.POST("/v1/airports/:code/activate", h.ActivateAirportHandler)
	router.POST("/v1/airports/:code/deactivate", h.DeactivateAirportHandler)
}

type createAirportRequest struct {
	IATACode string `json:"iata_code"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	City     string `json:"city"`
}

func (h *Handler) CreateAirportHandler(c *gin.Context) {
	var req createAirportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.SendError(c, httpx.Validation("Invalid JSON body"))
		return
	}

	a, err := h.service.Create(c.Request.Context(), req.IATACode, req.Name, req.Country, req.City)
	if err != nil {
		httpx.SendError(c, httpx.Validation(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, a)
}

func (h *Handler) ListAirportsHandler(c *gin.Context) {
	airports, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		httpx.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"airports": airports})
}

func (h *Handler) ActivateAirportHandler(c *gin.Context) {
	h.setActive(c, true)
}

func (h *Handler) DeactivateAirportHandler(c *gin.Context) {
	h.setActive(c, false)
}

func (h *Handler) setActive(c *gin.Context, active bool) {
	var (
		a   *Airport
		err error
	)
	if active {
		a, err = h.service.Activate(c.Request.Context(), c.Param("code"))
	} else {
		a, err = h.service.Deactivate(c.Request.Context(), c.Param("code"))
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.SendError(c, httpx.NotFound(err.Error()))
			return
		}
		httpx.SendError(c, httpx.Validation(err.Error()))
		return
	}
	c.JSON(http.StatusOK, a)
}
