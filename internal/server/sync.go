package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleSyncAbandonedCheckouts(c *gin.Context) {
	count, err := s.checkouts.SyncAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checkouts_synced": count})
}
