package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dkurbatov/venuebooking/api"
	"github.com/dkurbatov/venuebooking/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth     *api.AuthHandler
	Venues   *api.VenueHandler
	Bookings *api.BookingHandler
	Reviews  *api.ReviewHandler
	Wishlist *api.WishlistHandler
	Admin    *api.AdminHandler
	AuthMW   *api.AuthMiddleware
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, h Handlers) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newHandler(cfg, h),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newHandler(cfg *config.Config, h Handlers) http.Handler {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	v1 := router.Group("/api/v1")
	h.Auth.Register(v1.Group("/auth"), h.AuthMW)
	h.Venues.Register(v1.Group("/venues"))
	h.Reviews.Register(v1.Group("/venues"), v1.Group("/reviews"), h.AuthMW)
	h.Bookings.Register(v1.Group("/bookings"), h.AuthMW)
	h.Wishlist.Register(v1.Group("/wishlist"), h.AuthMW)
	h.Admin.Register(v1.Group("/admin"), h.AuthMW)

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/openapi.json"),
		)))
	}

	// The SPA talks to this API from another origin.
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.HTTP.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)
}
