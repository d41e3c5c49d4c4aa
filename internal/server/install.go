package server

import (
	"encoding/base64"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/shoplink/internal/shopify"
	"go.uber.org/zap"
)

var shopDomainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*\.myshopify\.com$`)

// handleInstall is the entry point the platform sends merchants to.
// On a valid signature it redirects to the platform's authorization
// page.
func (s *Server) handleInstall(c *gin.Context) {
	if !shopify.VerifySignature(s.cfg.PlatformClientSecret, c.Request.URL) {
		AbortWithError(c, ErrAuthenticationFailed)
		return
	}

	shop := strings.TrimSpace(c.Query("shop"))
	if shop == "" {
		AbortWithError(c, newValidationError("shop", "required", "shop parameter is required"))
		return
	}
	c.Set("shop_domain", shop)

	c.Redirect(http.StatusFound, s.install.AuthorizeURL(shop))
}

// handleAuthCallback finishes the OAuth dance: validates the signature
// and shop domain, completes the install, then sends the merchant back
// to the admin UI carried in the base64-encoded host parameter.
func (s *Server) handleAuthCallback(c *gin.Context) {
	if !shopify.VerifySignature(s.cfg.PlatformClientSecret, c.Request.URL) {
		AbortWithError(c, ErrAuthenticationFailed)
		return
	}

	shop := strings.TrimSpace(c.Query("shop"))
	if !shopDomainPattern.MatchString(shop) {
		AbortWithError(c, ErrInvalidShopDomain)
		return
	}
	c.Set("shop_domain", shop)

	code := c.Query("code")
	if err := s.install.Complete(c.Request.Context(), shop, code); err != nil {
		s.log.Error("install failed", zap.String("store", shop), zap.Error(err))
		AbortWithError(c, err)
		return
	}

	encodedHost := c.Query("host")
	if encodedHost == "" {
		AbortWithError(c, newValidationError("host", "required", "host parameter is required"))
		return
	}
	host, err := base64.RawStdEncoding.DecodeString(encodedHost)
	if err != nil {
		AbortWithError(c, newValidationError("host", "invalid_encoding", "host parameter is not valid base64"))
		return
	}

	c.Redirect(http.StatusFound, "https://"+string(host))
}
