package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// Pinger is satisfied by any dependency that can report reachability
// (the visualization service, a redis ping wrapper).
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// RegisterHealth registers /health (liveness) and /ready, which is 200 only
// when every dependency answers its ping within the timeout.
func RegisterHealth(r gin.IRouter, deps map[string]Pinger, timeout time.Duration) {
	names := make([]string, 0, len(deps))
	for n := range deps {
		names = append(names, n)
	}
	sort.Strings(names)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		ready := true
		status := make(map[string]bool, len(names))
		for _, n := range names {
			ok := deps[n].Ping(ctx) == nil
			status[n] = ok
			ready = ready && ok
		}

		body := gin.H{"deps": status, "uptime": time.Since(startTime).String()}
		if !ready {
			body["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["status"] = "ready"
		c.JSON(http.StatusOK, body)
	})
}
