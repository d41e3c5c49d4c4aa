package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/shoplink/internal/observability/context"
	"github.com/smallbiznis/shoplink/internal/shopify"
)

// Webhook handlers return success only after the write completes; the
// platform redelivers on any non-success status.

func (s *Server) handleOrderWebhook(c *gin.Context) {
	store := c.Param("store")
	c.Set("shop_domain", store)
	ctx := obscontext.WithStore(c.Request.Context(), store)

	var payload shopify.Order
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, newValidationError("body", "malformed_payload", "request body is not a valid order"))
		return
	}

	s.metrics.RecordWebhookEvent(ctx, "orders/paid")
	if err := s.orders.Ingest(ctx, store, payload); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleDisputeCreateWebhook(c *gin.Context) {
	store := c.Param("store")
	c.Set("shop_domain", store)
	ctx := obscontext.WithStore(c.Request.Context(), store)

	var payload shopify.Dispute
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, newValidationError("body", "malformed_payload", "request body is not a valid dispute"))
		return
	}

	s.metrics.RecordWebhookEvent(ctx, "disputes/create")
	if err := s.disputes.IngestCreate(ctx, store, payload); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleDisputeUpdateWebhook(c *gin.Context) {
	store := c.Param("store")
	c.Set("shop_domain", store)
	ctx := obscontext.WithStore(c.Request.Context(), store)

	var payload shopify.Dispute
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, newValidationError("body", "malformed_payload", "request body is not a valid dispute"))
		return
	}

	s.metrics.RecordWebhookEvent(ctx, "disputes/update")
	if err := s.disputes.IngestUpdate(ctx, payload); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
