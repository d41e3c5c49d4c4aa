package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	checkoutdomain "github.com/smallbiznis/shoplink/internal/checkout/domain"
	"github.com/smallbiznis/shoplink/internal/shopify"
)

// Compliance endpoints carry JSON request bodies on GET, matching the
// platform's mandatory webhook payloads.

type dataRequestBody struct {
	OrdersRequested []int64           `json:"orders_requested"`
	Customer        *shopify.Customer `json:"customer"`
}

type dataErasureBody struct {
	OrdersToRedact []int64           `json:"orders_to_redact"`
	Customer       *shopify.Customer `json:"customer"`
}

type shopErasureBody struct {
	ShopDomain string `json:"shop_domain"`
}

func (s *Server) handleDataRequest(c *gin.Context) {
	var body dataRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, newValidationError("body", "malformed_payload", "request body is not a valid data request"))
		return
	}

	ctx := c.Request.Context()

	orders, err := s.orders.FindByIDs(ctx, body.OrdersRequested)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// Checkouts are keyed by customer email; without one the field
	// stays null rather than an empty collection.
	var checkouts []checkoutdomain.AbandonedCheckout
	if body.Customer != nil && body.Customer.Email != nil {
		checkouts, err = s.checkouts.FindByEmail(ctx, *body.Customer.Email)
		if err != nil {
			AbortWithError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":              orders,
		"abandoned_checkouts": checkouts,
	})
}

func (s *Server) handleDataErasure(c *gin.Context) {
	var body dataErasureBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, newValidationError("body", "malformed_payload", "request body is not a valid erasure request"))
		return
	}

	ctx := c.Request.Context()

	if err := s.orders.Redact(ctx, body.OrdersToRedact); err != nil {
		AbortWithError(c, err)
		return
	}

	if body.Customer != nil && body.Customer.Email != nil {
		if err := s.checkouts.EraseByEmail(ctx, *body.Customer.Email); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleShopErasure removes the store row alone. Order, dispute and
// checkout rows fall under the customer-level erasure endpoint.
func (s *Server) handleShopErasure(c *gin.Context) {
	var body shopErasureBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, newValidationError("body", "malformed_payload", "request body is not a valid erasure request"))
		return
	}

	if body.ShopDomain == "" {
		AbortWithError(c, newValidationError("shop_domain", "required", "shop_domain is required"))
		return
	}

	ctx := c.Request.Context()

	store, err := s.storeRepo.FindByName(ctx, s.db, body.ShopDomain)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if store == nil {
		AbortWithError(c, ErrStoreNotFound)
		return
	}

	if err := s.storeRepo.Delete(ctx, s.db, body.ShopDomain); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
