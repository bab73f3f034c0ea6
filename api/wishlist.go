package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dkurbatov/venuebooking/internal/domain"
	"github.com/dkurbatov/venuebooking/internal/service/wishlist"
	"github.com/gin-gonic/gin"
)

type WishlistHandler struct {
	service wishlist.WishlistUseCase
}

type wishlistToggleRequest struct {
	VenueID int64 `json:"venue_id"`
}

type wishlistEntryResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	VenueID   int64  `json:"venue_id"`
	CreatedAt string `json:"created_at"`
}

func NewWishlistHandler(service wishlist.WishlistUseCase) *WishlistHandler {
	return &WishlistHandler{service: service}
}

func (h *WishlistHandler) Register(router *gin.RouterGroup, mw *AuthMiddleware) {
	router.Use(mw.RequireUser())
	router.GET("", h.list)
	router.POST("/toggle", h.toggle)
	router.DELETE("/:venueId", h.remove)
}

func (h *WishlistHandler) list(c *gin.Context) {
	user := currentUser(c)
	entries, err := h.service.List(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]wishlistEntryResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, toWishlistResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WishlistHandler) toggle(c *gin.Context) {
	var req wishlistToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added, err := h.service.Toggle(c.Request.Context(), currentUser(c).ID, req.VenueID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

func (h *WishlistHandler) remove(c *gin.Context) {
	venueID, err := strconv.ParseInt(c.Param("venueId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid venue id"})
		return
	}

	removed, err := h.service.Remove(c.Request.Context(), currentUser(c).ID, venueID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func toWishlistResponse(e *domain.WishlistEntry) wishlistEntryResponse {
	return wishlistEntryResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		VenueID:   e.VenueID,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}
