package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/avidato/farehold/internal/amadeus"
	"github.com/avidato/farehold/internal/domain"
	"github.com/avidato/farehold/internal/repository"
	"github.com/avidato/farehold/internal/service/requests"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type RequestHandler struct {
	service requests.RequestUseCase
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updateTravelersRequest struct {
	TravelerInfo json.RawMessage `json:"traveler_info"`
}

type updateSearchQueryRequest struct {
	SearchQuery json.RawMessage `json:"search_query"`
}

type updatePreferencesRequest struct {
	BookingPreferences []domain.BookingPreference `json:"booking_preferences"`
}

type updateResponse struct {
	Success bool                  `json:"success"`
	Data    *domain.FlightRequest `json:"data,omitempty"`
	Message string                `json:"message,omitempty"`
}

func NewRequestHandler(service requests.RequestUseCase) *RequestHandler {
	return &RequestHandler{service: service}
}

func (h *RequestHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.submit)
	router.GET("/", h.list)
	router.PATCH("/:id/status", h.updateStatus)
	router.PUT("/:id/travelers", h.updateTravelers)
	router.PUT("/:id/search-query", h.updateSearchQuery)
	router.PUT("/:id/preferences", h.updatePreferences)
}

// submit accepts the agent's form submission (urlencoded or multipart) and
// runs the whole pipeline. Responses use the result vocabulary; provider and
// store detail never reaches the caller.
func (h *RequestHandler) submit(c *gin.Context) {
	input := requests.SubmitInput{
		Email:              c.PostForm("email"),
		SearchQuery:        c.PostForm("query"),
		TravelerInfo:       c.PostForm("travelerInfo"),
		BookingPreferences: c.PostForm("bookingPreferences"),
		BookingClass:       c.PostForm("bookingClass"),
		FlightNumber:       c.PostForm("flightNumber"),
		CarrierCode:        c.PostForm("carrierCode"),
	}

	result, err := h.service.Submit(c.Request.Context(), input)
	if err != nil {
		status, message := submitErrorResponse(err)
		c.JSON(status, requests.SubmitResult{Status: string(domain.StatusError), Message: message})
		return
	}

	code := http.StatusOK
	if result.Status == string(domain.StatusHeld) {
		code = http.StatusCreated
	}
	c.JSON(code, result)
}

func submitErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, requests.ErrInvalidForm):
		return http.StatusBadRequest, "Invalid form data."
	case errors.Is(err, requests.ErrDuplicate):
		return http.StatusConflict, "A matching request is already active."
	case errors.Is(err, amadeus.ErrAuth):
		log.Error().Err(err).Msg("provider authentication failed")
		return http.StatusBadGateway, "Could not authenticate with the flight provider. Please try again later."
	case errors.Is(err, requests.ErrSearchFailed):
		log.Error().Err(err).Msg("flight search failed")
		return http.StatusBadGateway, "Flight search failed. Please try again later."
	case errors.Is(err, requests.ErrBookingFailed):
		log.Error().Err(err).Msg("booking failed")
		return http.StatusBadGateway, "Booking failed due to a provider error. Your request was recorded."
	default:
		log.Error().Err(err).Msg("submission failed")
		return http.StatusInternalServerError, "Something went wrong. Please try again."
	}
}

func (h *RequestHandler) list(c *gin.Context) {
	filter := strings.ToLower(c.Query("status"))
	var status domain.RequestStatus
	if filter != "" && filter != "all" {
		status = domain.RequestStatus(filter)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter"})
			return
		}
	}

	listed, err := h.service.List(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load flight requests"})
		return
	}
	if listed == nil {
		listed = []domain.FlightRequest{}
	}
	c.JSON(http.StatusOK, listed)
}

func (h *RequestHandler) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, updateResponse{Message: "invalid request body"})
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), domain.RequestStatus(req.Status))
	h.respondUpdate(c, updated, err)
}

func (h *RequestHandler) updateTravelers(c *gin.Context) {
	var req updateTravelersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, updateResponse{Message: "invalid request body"})
		return
	}

	updated, err := h.service.UpdateTravelers(c.Request.Context(), c.Param("id"), req.TravelerInfo)
	h.respondUpdate(c, updated, err)
}

func (h *RequestHandler) updateSearchQuery(c *gin.Context) {
	var req updateSearchQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, updateResponse{Message: "invalid request body"})
		return
	}

	updated, err := h.service.UpdateSearchQuery(c.Request.Context(), c.Param("id"), req.SearchQuery)
	h.respondUpdate(c, updated, err)
}

func (h *RequestHandler) updatePreferences(c *gin.Context) {
	var req updatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, updateResponse{Message: "invalid request body"})
		return
	}

	updated, err := h.service.UpdatePreferences(c.Request.Context(), c.Param("id"), req.BookingPreferences)
	h.respondUpdate(c, updated, err)
}

func (h *RequestHandler) respondUpdate(c *gin.Context, updated *domain.FlightRequest, err error) {
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, updateResponse{Message: "flight request not found"})
		case errors.Is(err, requests.ErrInvalidForm):
			c.JSON(http.StatusBadRequest, updateResponse{Message: "Invalid form data."})
		default:
			c.JSON(http.StatusInternalServerError, updateResponse{Message: "update failed"})
		}
		return
	}
	c.JSON(http.StatusOK, updateResponse{Success: true, Data: updated})
}
