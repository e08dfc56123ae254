package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything with a reachability probe (pgx pool, redis store).
type Pinger interface {
	Ping(ctx context.Context) error
}

// MiscHandler exposes the read-only diagnostics surface: a health probe and
// a gateway reachability test. Nothing here mutates state.
type MiscHandler struct {
	db                Pinger
	sessions          Pinger
	gatewayConfigured bool
	gatewayURL        string
	httpc             *http.Client
}

func NewMiscHandler(db, sessions Pinger, gatewayConfigured bool, gatewayURL string) *MiscHandler {
	return &MiscHandler{
		db:                db,
		sessions:          sessions,
		gatewayConfigured: gatewayConfigured,
		gatewayURL:        gatewayURL,
		httpc:             &http.Client{Timeout: 10 * time.Second},
	}
}

func (h *MiscHandler) Register(router *gin.Engine) {
	router.GET("/health", h.health)
	router.GET("/network_test", h.networkTest)
}

func (h *MiscHandler) health(c *gin.Context) {
	ctx := c.Request.Context()

	dbStatus := "OK"
	if err := h.db.Ping(ctx); err != nil {
		dbStatus = fmt.Sprintf("Error: %v", err)
	}

	redisStatus := "OK"
	if h.sessions == nil {
		redisStatus = "not configured"
	} else if err := h.sessions.Ping(ctx); err != nil {
		redisStatus = fmt.Sprintf("Error: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":              "healthy",
		"database":            dbStatus,
		"redis":               redisStatus,
		"razorpay_configured": h.gatewayConfigured,
	})
}

func (h *MiscHandler) networkTest(c *gin.Context) {
	results := gin.H{}

	host := h.gatewayURL
	if u, err := url.Parse(h.gatewayURL); err == nil && u.Host != "" {
		host = u.Hostname()
	}

	if addrs, err := net.DefaultResolver.LookupHost(c.Request.Context(), host); err == nil && len(addrs) > 0 {
		results["dns"] = fmt.Sprintf("Success: %s", addrs[0])
	} else {
		results["dns"] = fmt.Sprintf("Failed: %v", err)
	}

	if resp, err := h.get(c, h.gatewayURL); err == nil {
		results["http"] = fmt.Sprintf("Success: Status %d", resp)
	} else {
		results["http"] = fmt.Sprintf("Failed: %v", err)
	}

	if resp, err := h.get(c, h.gatewayURL+"/v1/orders"); err == nil {
		results["razorpay"] = fmt.Sprintf("Connectivity: Status %d", resp)
	} else {
		results["razorpay"] = fmt.Sprintf("Failed: %v", err)
	}

	c.JSON(http.StatusOK, results)
}

func (h *MiscHandler) get(c *gin.Context, target string) (int, error) {
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, target, nil)
	if err != nil {
		return 0, err
	}
	resp, err := h.httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
