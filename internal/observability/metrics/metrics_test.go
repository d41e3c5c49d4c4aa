package metrics

import (
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("topic", "orders/paid"),
		attribute.String("shop_domain", "example.myshopify.com"),
		attribute.String("resource", "orders"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	for _, attr := range attrs {
		if attr.Key == "shop_domain" {
			t.Fatalf("expected shop_domain to be dropped")
		}
	}
}
