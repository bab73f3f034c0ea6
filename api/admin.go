package api

import (
	"net/http"
	"strconv"

	"github.com/dkurbatov/venuebooking/internal/service/booking"
	"github.com/dkurbatov/venuebooking/internal/service/venues"
	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the management surface: venue CRUD, the combined
// venues+bookings fetch for the dashboard, and booking verification.
type AdminHandler struct {
	venues   venues.VenueUseCase
	bookings booking.BookingUseCase
}

type verifyRequest struct {
	Verified *bool `json:"verified" binding:"required"`
}

type adminDataResponse struct {
	Venues   []venueResponse   `json:"venues"`
	Bookings []bookingResponse `json:"bookings"`
}

func NewAdminHandler(venueSvc venues.VenueUseCase, bookingSvc booking.BookingUseCase) *AdminHandler {
	return &AdminHandler{venues: venueSvc, bookings: bookingSvc}
}

func (h *AdminHandler) Register(router *gin.RouterGroup, mw *AuthMiddleware) {
	router.Use(mw.RequireUser(), mw.RequireAdmin())
	router.GET("/data", h.data)
	router.POST("/venues", h.createVenue)
	router.PATCH("/venues/:id", h.updateVenue)
	router.DELETE("/venues/:id", h.deleteVenue)
	router.PATCH("/bookings/:id/verify", h.verifyBooking)
	router.DELETE("/bookings/:id", h.deleteBooking)
}

func (h *AdminHandler) data(c *gin.Context) {
	venueList, err := h.venues.List(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	bookingList, err := h.bookings.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := adminDataResponse{
		Venues:   make([]venueResponse, 0, len(venueList)),
		Bookings: toBookingResponses(bookingList),
	}
	for i := range venueList {
		resp.Venues = append(resp.Venues, toVenueResponse(&venueList[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) createVenue(c *gin.Context) {
	var input venues.VenueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.venues.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toVenueResponse(created))
}

func (h *AdminHandler) updateVenue(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var input venues.VenueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.venues.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVenueResponse(updated))
}

func (h *AdminHandler) deleteVenue(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.venues.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) verifyBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "verified field is required"})
		return
	}

	updated, err := h.bookings.Verify(c.Request.Context(), id, *req.Verified)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func (h *AdminHandler) deleteBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.bookings.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
