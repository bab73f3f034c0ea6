package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dkurbatov/venuebooking/internal/domain"
	"github.com/dkurbatov/venuebooking/internal/service/venues"
	"github.com/gin-gonic/gin"
)

type VenueHandler struct {
	service venues.VenueUseCase
}

type venueResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	ImageURL    string `json:"image_url"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func NewVenueHandler(service venues.VenueUseCase) *VenueHandler {
	return &VenueHandler{service: service}
}

func (h *VenueHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

func (h *VenueHandler) list(c *gin.Context) {
	venueType := domain.VenueType(c.Query("type"))
	list, err := h.service.List(c.Request.Context(), venueType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := make([]venueResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toVenueResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VenueHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	venue, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVenueResponse(venue))
}

func toVenueResponse(v *domain.Venue) venueResponse {
	return venueResponse{
		ID:          v.ID,
		Name:        v.Name,
		Type:        string(v.Type),
		Description: v.Description,
		PriceCents:  v.PriceCents,
		ImageURL:    v.ImageURL,
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   v.UpdatedAt.Format(time.RFC3339),
	}
}
