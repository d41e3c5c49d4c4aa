package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	checkoutdomain "github.com/smallbiznis/shoplink/internal/checkout/domain"
	checkoutrepo "github.com/smallbiznis/shoplink/internal/checkout/repository"
	"github.com/smallbiznis/shoplink/internal/clock"
	"github.com/smallbiznis/shoplink/internal/shopify"
	storedomain "github.com/smallbiznis/shoplink/internal/store/domain"
	storerepo "github.com/smallbiznis/shoplink/internal/store/repository"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fetcherMock struct {
	mock.Mock
}

func (m *fetcherMock) FetchCheckouts(ctx context.Context, shop, token string, createdAtMin *time.Time) ([]shopify.Checkout, error) {
	args := m.Called(ctx, shop, token, createdAtMin)
	res := args.Get(0)
	if res == nil {
		return nil, args.Error(1)
	}
	return res.([]shopify.Checkout), args.Error(1)
}

func strptr(s string) *string { return &s }

func newTestService(t *testing.T, fetcher Fetcher, now time.Time) (checkoutdomain.Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&storedomain.Store{}, &checkoutdomain.AbandonedCheckout{}))

	svc := NewWithFetcher(Params{
		DB:        db,
		Log:       zap.NewNop(),
		Clock:     clock.NewFakeClock(now),
		Repo:      checkoutrepo.Provide(),
		StoreRepo: storerepo.Provide(),
	}, fetcher)

	return svc, db
}

func seedStore(t *testing.T, db *gorm.DB, name string, cursor *time.Time) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, storerepo.Provide().Upsert(context.Background(), db, &storedomain.Store{
		Name:        name,
		AccessToken: "tok-" + name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}))
	if cursor != nil {
		require.NoError(t, storerepo.Provide().AdvanceCheckoutSync(context.Background(), db, name, *cursor))
	}
}

func TestSyncAllFirstSweepHasNoCursor(t *testing.T) {
	now := time.Date(2023, 7, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &fetcherMock{}
	svc, db := newTestService(t, fetcher, now)
	seedStore(t, db, "example.myshopify.com", nil)

	fetcher.On("FetchCheckouts", mock.Anything, "example.myshopify.com", "tok-example.myshopify.com", (*time.Time)(nil)).
		Return([]shopify.Checkout{
			{ID: 1, AbandonedCheckoutURL: "https://example.myshopify.com/c/1", Customer: &shopify.Customer{Email: strptr("a@b.com")}},
			{ID: 2, AbandonedCheckoutURL: "https://example.myshopify.com/c/2"},
		}, nil)

	total, err := svc.SyncAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, total)

	store, err := storerepo.Provide().FindByName(context.Background(), db, "example.myshopify.com")
	require.NoError(t, err)
	require.NotNil(t, store.LastAbandonedCheckoutSync)
	require.Equal(t, now.Unix(), store.LastAbandonedCheckoutSync.Unix())

	var count int64
	require.NoError(t, db.Model(&checkoutdomain.AbandonedCheckout{}).Count(&count).Error)
	require.EqualValues(t, 2, count)
	fetcher.AssertExpectations(t)
}

func TestSyncAllPassesStoredCursor(t *testing.T) {
	now := time.Date(2023, 7, 2, 12, 0, 0, 0, time.UTC)
	cursor := time.Date(2023, 7, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &fetcherMock{}
	svc, db := newTestService(t, fetcher, now)
	seedStore(t, db, "example.myshopify.com", &cursor)

	fetcher.On("FetchCheckouts", mock.Anything, "example.myshopify.com", mock.Anything, mock.MatchedBy(func(min *time.Time) bool {
		return min != nil && min.Unix() == cursor.Unix()
	})).Return([]shopify.Checkout{}, nil)

	_, err := svc.SyncAll(context.Background())
	require.NoError(t, err)

	store, err := storerepo.Provide().FindByName(context.Background(), db, "example.myshopify.com")
	require.NoError(t, err)
	require.Equal(t, now.Unix(), store.LastAbandonedCheckoutSync.Unix())
	fetcher.AssertExpectations(t)
}

func TestSyncAllFetchFailureKeepsCursor(t *testing.T) {
	now := time.Date(2023, 7, 2, 12, 0, 0, 0, time.UTC)
	cursor := time.Date(2023, 7, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &fetcherMock{}
	svc, db := newTestService(t, fetcher, now)
	seedStore(t, db, "example.myshopify.com", &cursor)

	fetcher.On("FetchCheckouts", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("upstream down"))

	_, err := svc.SyncAll(context.Background())
	require.Error(t, err)

	store, err := storerepo.Provide().FindByName(context.Background(), db, "example.myshopify.com")
	require.NoError(t, err)
	require.Equal(t, cursor.Unix(), store.LastAbandonedCheckoutSync.Unix())
}

func TestSyncAllOverlappingSweepSkipsKnownCheckouts(t *testing.T) {
	now := time.Date(2023, 7, 2, 12, 0, 0, 0, time.UTC)
	fetcher := &fetcherMock{}
	svc, db := newTestService(t, fetcher, now)
	seedStore(t, db, "example.myshopify.com", nil)

	checkouts := []shopify.Checkout{
		{ID: 1, AbandonedCheckoutURL: "https://example.myshopify.com/c/1"},
	}
	fetcher.On("FetchCheckouts", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(checkouts, nil)

	_, err := svc.SyncAll(context.Background())
	require.NoError(t, err)
	_, err = svc.SyncAll(context.Background())
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&checkoutdomain.AbandonedCheckout{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestFindAndEraseByEmail(t *testing.T) {
	fetcher := &fetcherMock{}
	svc, db := newTestService(t, fetcher, time.Now().UTC())

	rows := []checkoutdomain.AbandonedCheckout{
		{ID: 1, CheckoutURL: "u1", Email: strptr("a@b.com"), StoreName: "s.myshopify.com"},
		{ID: 2, CheckoutURL: "u2", Email: strptr("other@b.com"), StoreName: "s.myshopify.com"},
	}
	require.NoError(t, checkoutrepo.Provide().InsertBatch(context.Background(), db, rows))

	found, err := svc.FindByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.EqualValues(t, 1, found[0].ID)

	require.NoError(t, svc.EraseByEmail(context.Background(), "a@b.com"))

	var count int64
	require.NoError(t, db.Model(&checkoutdomain.AbandonedCheckout{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
