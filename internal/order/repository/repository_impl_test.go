package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/shoplink/internal/order/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// statementRecorder captures every SQL statement GORM runs.
type statementRecorder struct {
	mu         sync.Mutex
	statements []string
}

func (r *statementRecorder) LogMode(gormlogger.LogLevel) gormlogger.Interface { return r }
func (r *statementRecorder) Info(context.Context, string, ...interface{})     {}
func (r *statementRecorder) Warn(context.Context, string, ...interface{})     {}
func (r *statementRecorder) Error(context.Context, string, ...interface{})    {}

func (r *statementRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statements = append(r.statements, sql)
}

func (r *statementRecorder) count(prefix string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, stmt := range r.statements {
		if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(stmt)), prefix) {
			n++
		}
	}
	return n
}

func (r *statementRecorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statements = nil
}

func newTestDB(t *testing.T) (*gorm.DB, *statementRecorder) {
	t.Helper()
	recorder := &statementRecorder{}
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: recorder})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Order{}, &domain.LineItem{}))
	recorder.reset()
	return db, recorder
}

func strptr(s string) *string { return &s }

func TestInsertBatchEmptyPerformsNoStorageCalls(t *testing.T) {
	db, recorder := newTestDB(t)
	repo := Provide()

	require.NoError(t, repo.InsertBatch(context.Background(), db, nil, nil))
	require.Empty(t, recorder.statements)
}

func TestInsertBatchWritesOneStatementPerTable(t *testing.T) {
	db, recorder := newTestDB(t)
	repo := Provide()
	ctx := context.Background()

	orders := []domain.Order{
		{ID: 1, Email: strptr("a@b.com"), StoreName: "example.myshopify.com"},
		{ID: 2, StoreName: "example.myshopify.com"},
	}
	items := []domain.LineItem{
		{ID: 100, Title: "Widget", OrderID: 1},
		{ID: 101, Title: "Gadget", OrderID: 1},
		{ID: 102, Title: "Sprocket", OrderID: 2},
	}

	require.NoError(t, repo.InsertBatch(ctx, db, orders, items))
	require.Equal(t, 2, recorder.count("INSERT"))

	found, err := repo.FindByIDs(ctx, db, []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, found, 2)
}

func TestInsertBatchPreservesNullFields(t *testing.T) {
	db, _ := newTestDB(t)
	repo := Provide()
	ctx := context.Background()

	orders := []domain.Order{{ID: 5, FirstName: strptr("Ada"), StoreName: "s.myshopify.com"}}
	require.NoError(t, repo.InsertBatch(ctx, db, orders, nil))

	found, err := repo.FindByIDs(ctx, db, []int64{5})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "Ada", *found[0].FirstName)
	require.Nil(t, found[0].LastName)
	require.Nil(t, found[0].Email)
}

func TestFindByIDsEmptySkipsQuery(t *testing.T) {
	db, recorder := newTestDB(t)
	repo := Provide()

	found, err := repo.FindByIDs(context.Background(), db, nil)
	require.NoError(t, err)
	require.Empty(t, found)
	require.Empty(t, recorder.statements)
}

func TestDeleteByIDs(t *testing.T) {
	db, _ := newTestDB(t)
	repo := Provide()
	ctx := context.Background()

	orders := []domain.Order{
		{ID: 1, StoreName: "s.myshopify.com"},
		{ID: 2, StoreName: "s.myshopify.com"},
		{ID: 3, StoreName: "s.myshopify.com"},
	}
	items := []domain.LineItem{
		{ID: 100, Title: "Widget", OrderID: 1},
		{ID: 101, Title: "Gadget", OrderID: 2},
	}
	require.NoError(t, repo.InsertBatch(ctx, db, orders, items))

	require.NoError(t, repo.DeleteByIDs(ctx, db, []int64{1, 3}))

	remaining, err := repo.FindByIDs(ctx, db, []int64{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.EqualValues(t, 2, remaining[0].ID)

	var itemCount int64
	require.NoError(t, db.Model(&domain.LineItem{}).Count(&itemCount).Error)
	require.Equal(t, int64(1), itemCount)
}
