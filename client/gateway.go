// Package client is the browser-facing half of the system expressed as a Go
// SDK: a gateway that turns each backend operation into one HTTP call with a
// normalized failure, and (in the store subpackage) per-entity state
// containers the view layer binds to.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
)

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Venue struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	ImageURL    string `json:"image_url"`
}

type Booking struct {
	ID            int64  `json:"id"`
	Reference     string `json:"reference"`
	UserID        int64  `json:"user_id"`
	VenueID       int64  `json:"venue_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	RequesterName string `json:"requester_name"`
	Verified      bool   `json:"verified"`
}

type Review struct {
	ID      int64  `json:"id"`
	VenueID int64  `json:"venue_id"`
	UserID  int64  `json:"user_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type WishlistEntry struct {
	ID      int64 `json:"id"`
	UserID  int64 `json:"user_id"`
	VenueID int64 `json:"venue_id"`
}

type AdminData struct {
	Venues   []Venue   `json:"venues"`
	Bookings []Booking `json:"bookings"`
}

type VenueInput struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	ImageURL    string `json:"image_url"`
}

type BookingInput struct {
	VenueID       int64  `json:"venue_id,omitempty"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	RequesterName string `json:"requester_name"`
}

type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Gateway issues the backend calls. Safe for use from multiple goroutines;
// the session token is the only mutable state.
type Gateway struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

type GatewayOption func(*Gateway)

func WithHTTPClient(c *http.Client) GatewayOption {
	return func(g *Gateway) {
		g.httpClient = c
	}
}

func NewGateway(baseURL string, opts ...GatewayOption) *Gateway {
	g := &Gateway{baseURL: baseURL, httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) SetToken(token string) {
	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
}

func (g *Gateway) currentToken() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

// SignUp registers a new account. It does not sign the user in.
func (g *Gateway) SignUp(ctx context.Context, email, password string) (User, error) {
	var user User
	err := g.do(ctx, http.MethodPost, "/api/v1/auth/signup", map[string]string{"email": email, "password": password}, &user)
	return user, err
}

// SignIn authenticates and stores the session token for later calls.
func (g *Gateway) SignIn(ctx context.Context, email, password string) (Session, error) {
	var session Session
	err := g.do(ctx, http.MethodPost, "/api/v1/auth/signin", map[string]string{"email": email, "password": password}, &session)
	if err != nil {
		return Session{}, err
	}
	g.SetToken(session.Token)
	return session, nil
}

// SignOut revokes the session server-side and drops the local token even if
// the call fails.
func (g *Gateway) SignOut(ctx context.Context) error {
	err := g.do(ctx, http.MethodPost, "/api/v1/auth/signout", nil, nil)
	g.SetToken("")
	return err
}

func (g *Gateway) CurrentUser(ctx context.Context) (User, error) {
	var user User
	err := g.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &user)
	return user, err
}

func (g *Gateway) Venues(ctx context.Context, venueType string) ([]Venue, error) {
	path := "/api/v1/venues"
	if venueType != "" {
		path += "?type=" + url.QueryEscape(venueType)
	}
	var venues []Venue
	err := g.do(ctx, http.MethodGet, path, nil, &venues)
	return venues, err
}

func (g *Gateway) Venue(ctx context.Context, id int64) (Venue, error) {
	var venue Venue
	err := g.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/venues/%d", id), nil, &venue)
	return venue, err
}

func (g *Gateway) CreateVenue(ctx context.Context, input VenueInput) (Venue, error) {
	var venue Venue
	err := g.do(ctx, http.MethodPost, "/api/v1/admin/venues", input, &venue)
	return venue, err
}

func (g *Gateway) UpdateVenue(ctx context.Context, id int64, input VenueInput) (Venue, error) {
	var venue Venue
	err := g.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/admin/venues/%d", id), input, &venue)
	return venue, err
}

func (g *Gateway) DeleteVenue(ctx context.Context, id int64) error {
	return g.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/admin/venues/%d", id), nil, nil)
}

func (g *Gateway) Bookings(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	err := g.do(ctx, http.MethodGet, "/api/v1/bookings", nil, &bookings)
	return bookings, err
}

func (g *Gateway) CreateBooking(ctx context.Context, input BookingInput) (Booking, error) {
	var booking Booking
	err := g.do(ctx, http.MethodPost, "/api/v1/bookings", input, &booking)
	return booking, err
}

func (g *Gateway) UpdateBooking(ctx context.Context, id int64, input BookingInput) (Booking, error) {
	var booking Booking
	err := g.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d", id), input, &booking)
	return booking, err
}

func (g *Gateway) DeleteBooking(ctx context.Context, id int64) error {
	return g.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/bookings/%d", id), nil, nil)
}

// CheckAvailability pre-validates a slot. A true result is advisory only:
// the create call can still fail with a conflict if someone else books the
// slot in between.
func (g *Gateway) CheckAvailability(ctx context.Context, venueID int64, date, timeOfDay string) (bool, error) {
	payload := map[string]any{"venue_id": venueID, "date": date, "time": timeOfDay}
	var resp struct {
		IsAvailable bool `json:"is_available"`
	}
	if err := g.do(ctx, http.MethodPost, "/api/v1/bookings/check-availability", payload, &resp); err != nil {
		return false, err
	}
	return resp.IsAvailable, nil
}

func (g *Gateway) Reviews(ctx context.Context, venueID int64) ([]Review, error) {
	var reviews []Review
	err := g.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/venues/%d/reviews", venueID), nil, &reviews)
	return reviews, err
}

func (g *Gateway) CreateReview(ctx context.Context, venueID int64, input ReviewInput) (Review, error) {
	var review Review
	err := g.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/venues/%d/reviews", venueID), input, &review)
	return review, err
}

func (g *Gateway) UpdateReview(ctx context.Context, id int64, input ReviewInput) (Review, error) {
	var review Review
	err := g.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/reviews/%d", id), input, &review)
	return review, err
}

func (g *Gateway) DeleteReview(ctx context.Context, id int64) error {
	return g.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/reviews/%d", id), nil, nil)
}

func (g *Gateway) Wishlist(ctx context.Context) ([]WishlistEntry, error) {
	var entries []WishlistEntry
	err := g.do(ctx, http.MethodGet, "/api/v1/wishlist", nil, &entries)
	return entries, err
}

func (g *Gateway) ToggleWishlist(ctx context.Context, venueID int64) (added bool, err error) {
	var resp struct {
		Added bool `json:"added"`
	}
	err = g.do(ctx, http.MethodPost, "/api/v1/wishlist/toggle", map[string]int64{"venue_id": venueID}, &resp)
	return resp.Added, err
}

func (g *Gateway) RemoveFromWishlist(ctx context.Context, venueID int64) (removed bool, err error) {
	var resp struct {
		Removed bool `json:"removed"`
	}
	err = g.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/wishlist/%d", venueID), nil, &resp)
	return resp.Removed, err
}

func (g *Gateway) AdminData(ctx context.Context) (AdminData, error) {
	var data AdminData
	err := g.do(ctx, http.MethodGet, "/api/v1/admin/data", nil, &data)
	return data, err
}

func (g *Gateway) VerifyBooking(ctx context.Context, id int64, verified bool) (Booking, error) {
	var booking Booking
	err := g.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/admin/bookings/%d/verify", id), map[string]bool{"verified": verified}, &booking)
	return booking, err
}

func (g *Gateway) DeleteBookingAsAdmin(ctx context.Context, id int64) error {
	return g.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/admin/bookings/%d", id), nil, nil)
}

// do performs one request. The caller's context is the cancellation scope:
// abandoning an operation cancels its in-flight call instead of letting a
// stale response land later.
func (g *Gateway) do(ctx context.Context, method, path string, payload, out any) error {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return &Error{Kind: ErrorKindValidation, Message: err.Error()}
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return &Error{Kind: ErrorKindNetwork, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := g.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: ErrorKindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &Error{Kind: kindForStatus(resp.StatusCode), Message: decodeErrorMessage(resp)}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: ErrorKindServer, Message: "malformed response: " + err.Error()}
	}
	return nil
}

func decodeErrorMessage(resp *http.Response) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return resp.Status
}
