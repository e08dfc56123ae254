package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Harshit1991/gymbooking/api"
	"github.com/Harshit1991/gymbooking/config"
	"github.com/Harshit1991/gymbooking/internal/service/auth"
	"github.com/Harshit1991/gymbooking/internal/service/booking"
	"github.com/Harshit1991/gymbooking/internal/service/contact"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Bookings booking.BookingUseCase
	Contacts contact.ContactUseCase
	Auth     auth.AuthUseCase
	DB       api.Pinger
	Sessions api.Pinger
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, deps Deps) error {
	router := newRouter(cfg, deps)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
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

func newRouter(cfg *config.Config, deps Deps) *gin.Engine {
	router := gin.Default()

	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute

	api.NewBookingHandler(deps.Bookings, cfg.Razorpay.KeyID).Register(router)
	api.NewContactHandler(deps.Contacts).Register(router)
	api.NewAuthHandler(deps.Auth, deps.Bookings, deps.Contacts, sessionTTL).Register(router)

	gatewayURL := cfg.Razorpay.BaseURL
	if gatewayURL == "" {
		gatewayURL = "https://api.razorpay.com"
	}
	configured := cfg.Razorpay.KeyID != "" && cfg.Razorpay.KeySecret != ""
	api.NewMiscHandler(deps.DB, deps.Sessions, configured, gatewayURL).Register(router)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
