package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/shoplink/internal/dispute/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Dispute{}))
	return db
}

func int64ptr(v int64) *int64 { return &v }
func strptr(s string) *string { return &s }

func sample(id int64) domain.Dispute {
	return domain.Dispute{
		ID:            id,
		OrderID:       int64ptr(id * 10),
		Type:          "chargeback",
		Amount:        "102.53",
		Currency:      "USD",
		Reason:        "fraudulent",
		Status:        "needs_response",
		InitiatedAt:   "2023-05-01T10:00:00-04:00",
		EvidenceDueBy: "2023-05-15T23:59:59-04:00",
		StoreName:     "example.myshopify.com",
	}
}

func TestInsertReportsRedelivery(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	ctx := context.Background()

	dispute := sample(1)
	inserted, err := repo.Insert(ctx, db, &dispute)
	require.NoError(t, err)
	require.True(t, inserted)

	again := sample(1)
	inserted, err = repo.Insert(ctx, db, &again)
	require.NoError(t, err)
	require.False(t, inserted)

	var count int64
	require.NoError(t, db.Model(&domain.Dispute{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestInsertKeepsAmountVerbatim(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	ctx := context.Background()

	dispute := sample(2)
	dispute.Amount = "0.10"
	_, err := repo.Insert(ctx, db, &dispute)
	require.NoError(t, err)

	var found domain.Dispute
	require.NoError(t, db.First(&found, "id = ?", 2).Error)
	require.Equal(t, "0.10", found.Amount)
	require.Equal(t, "2023-05-01T10:00:00-04:00", found.InitiatedAt)
	require.Nil(t, found.EvidenceSentOn)
}

func TestInsertBatchEmptyIsNoOp(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()

	require.NoError(t, repo.InsertBatch(context.Background(), db, nil))
}

func TestInsertBatchSkipsKnownIDs(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	ctx := context.Background()

	first := sample(1)
	_, err := repo.Insert(ctx, db, &first)
	require.NoError(t, err)

	batch := []domain.Dispute{sample(1), sample(2), sample(3)}
	require.NoError(t, repo.InsertBatch(ctx, db, batch))

	var count int64
	require.NoError(t, db.Model(&domain.Dispute{}).Count(&count).Error)
	require.EqualValues(t, 3, count)
}

func TestUpdateByExternalIDMissingRowIsNoOp(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	ctx := context.Background()

	dispute := sample(99)
	affected, err := repo.UpdateByExternalID(ctx, db, &dispute)
	require.NoError(t, err)
	require.Zero(t, affected)

	var count int64
	require.NoError(t, db.Model(&domain.Dispute{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUpdateByExternalIDRewritesFields(t *testing.T) {
	db := newTestDB(t)
	repo := Provide()
	ctx := context.Background()

	dispute := sample(1)
	_, err := repo.Insert(ctx, db, &dispute)
	require.NoError(t, err)

	updated := sample(1)
	updated.Status = "under_review"
	updated.EvidenceSentOn = strptr("2023-05-10T08:00:00-04:00")

	affected, err := repo.UpdateByExternalID(ctx, db, &updated)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	var found domain.Dispute
	require.NoError(t, db.First(&found, "id = ?", 1).Error)
	require.Equal(t, "under_review", found.Status)
	require.NotNil(t, found.EvidenceSentOn)
	require.Equal(t, "2023-05-10T08:00:00-04:00", *found.EvidenceSentOn)
	// store_name is immutable on update
	require.Equal(t, "example.myshopify.com", found.StoreName)
}
