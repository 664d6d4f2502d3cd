// Package api exposes the variable store and instcmd dispatch as a small
// read-mostly JSON HTTP surface, grounded on guiperry-HASHER's
// cmd/driver/hasher-host/main.go gin wiring (gin.New, a versioned route
// group, gin.H JSON responses).
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"apc-modbus-hid-driver/internal/driver"
	"apc-modbus-hid-driver/internal/store"
)

// Server wires a Poller and its Store to an HTTP router.
type Server struct {
	poller    *driver.Poller
	store     *store.Store
	startTime time.Time
	router    *gin.Engine
}

// New builds a Server serving st via poller's instcmd dispatch.
func New(poller *driver.Poller, st *store.Store) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{poller: poller, store: st, startTime: time.Now(), router: router}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/status", s.handleStatus)
		v1.GET("/status/:name", s.handleStatusOne)
		v1.POST("/instcmd", s.handleInstCmd)
		v1.GET("/health", s.handleHealth)
	}

	return s
}

// Handler returns the underlying http.Handler, for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// statusResponse is the JSON shape of the variable store snapshot.
type statusResponse struct {
	Variables map[string]store.Variable `json:"variables"`
	PollStats driver.PollStats          `json:"poll_stats"`
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{
		Variables: s.store.Snapshot(),
		PollStats: s.poller.Stats(),
	})
}

func (s *Server) handleStatusOne(c *gin.Context) {
	name := c.Param("name")
	v, ok := s.store.Get(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown variable " + name})
		return
	}
	c.JSON(http.StatusOK, v)
}

// instCmdRequest is the POSTed instcmd(name, value) payload.
type instCmdRequest struct {
	Name  string  `json:"name" binding:"required"`
	Value float64 `json:"value"`
}

func (s *Server) handleInstCmd(c *gin.Context) {
	var req instCmdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := s.poller.InstCmd(req.Name, req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleHealth(c *gin.Context) {
	stats := s.poller.Stats()
	c.JSON(http.StatusOK, gin.H{
		"status": "running",
		"uptime": time.Since(s.startTime).String(),
		"cycles": stats.Cycles,
	})
}
