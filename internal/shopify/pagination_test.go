package shopify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smallbiznis/shoplink/internal/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	holder, err := config.NewIntegrationConfigHolder()
	require.NoError(t, err)

	return New(Params{
		Config: config.Config{
			PlatformClientID:     "client-id",
			PlatformClientSecret: "client-secret",
			PlatformBaseURI:      "https://app.example.com/",
		},
		Integration: holder,
		Log:         zap.NewNop(),
	})
}

func TestFetchAllFollowsLinkHeaders(t *testing.T) {
	mux := http.NewServeMux()
	var srv *httptest.Server

	page := func(w http.ResponseWriter, body string, next string) {
		w.Header().Set("Content-Type", "application/json")
		if next != "" {
			w.Header().Set("Link", fmt.Sprintf(`<%s%s>; rel="next"`, srv.URL, next))
		}
		fmt.Fprint(w, body)
	}
	mux.HandleFunc("/page1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "token-1", r.Header.Get("X-Shopify-Access-Token"))
		page(w, `{"orders":[{"id":1},{"id":2}]}`, "/page2")
	})
	mux.HandleFunc("/page2", func(w http.ResponseWriter, r *http.Request) {
		page(w, `{"orders":[{"id":3},{"id":4}]}`, "/page3")
	})
	mux.HandleFunc("/page3", func(w http.ResponseWriter, r *http.Request) {
		page(w, `{"orders":[{"id":5},{"id":6}]}`, "")
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	client := newTestClient(t)
	orders, err := FetchAll[OrdersEnvelope, Order](context.Background(), client, "token-1", "orders", srv.URL+"/page1")
	require.NoError(t, err)
	require.Len(t, orders, 6)

	ids := make([]int64, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}
	require.Equal(t, []int64{1, 2, 3, 4, 5, 6}, ids)
}

func TestFetchAllNonJSONBodyMeansEmptyCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newTestClient(t)
	disputes, err := FetchAll[DisputesEnvelope, Dispute](context.Background(), client, "tok", "disputes", srv.URL)
	require.NoError(t, err)
	require.Empty(t, disputes)
}

func TestFetchAllPropagatesUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newTestClient(t)
	_, err := FetchAll[OrdersEnvelope, Order](context.Background(), client, "tok", "orders", srv.URL)
	require.Error(t, err)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	require.Equal(t, http.StatusTooManyRequests, upstream.Status)
}

func TestFetchAllDiscardsOnUndecodablePage(t *testing.T) {
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/page1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Link", fmt.Sprintf(`<%s/page2>; rel="next"`, srv.URL))
		fmt.Fprint(w, `{"orders":[{"id":1}]}`)
	})
	mux.HandleFunc("/page2", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"orders": not json`)
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	client := newTestClient(t)
	orders, err := FetchAll[OrdersEnvelope, Order](context.Background(), client, "tok", "orders", srv.URL+"/page1")
	require.Error(t, err)
	require.Nil(t, orders)
}

func TestNextPageURL(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{
			name:   "empty",
			header: "",
			want:   "",
		},
		{
			name:   "next only",
			header: `<https://shop.example.com/admin/api/orders.json?page_info=abc>; rel="next"`,
			want:   "https://shop.example.com/admin/api/orders.json?page_info=abc",
		},
		{
			name:   "previous and next",
			header: `<https://shop.example.com/prev>; rel="previous", <https://shop.example.com/next>; rel="next"`,
			want:   "https://shop.example.com/next",
		},
		{
			name:   "previous only",
			header: `<https://shop.example.com/prev>; rel="previous"`,
			want:   "",
		},
		{
			name:   "bare url",
			header: "https://shop.example.com/next",
			want:   "https://shop.example.com/next",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, NextPageURL(tc.header))
		})
	}
}
