package monitor

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aeolab/windfarm-rl-train/types"
)

// Server exposes the live progress of a running comparison over HTTP.
// It is started and stopped explicitly by the command entry point.
type Server struct {
	Addr    string
	server  *http.Server
	tracker *types.ProgressTracker
}

func NewServer(addr string, tracker *types.ProgressTracker) *Server {
	s := &Server{
		Addr:    addr,
		tracker: tracker,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/status", s.handleStatus)
	r.GET("/health", handleHealth)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"experiments": s.tracker.Snapshot(),
	})
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Start serves in the background until Stop is called
func (s *Server) Start() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("monitor server error: %v\n", err)
		}
	}()
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.server.Shutdown(ctx)
}
