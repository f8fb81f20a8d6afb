package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"auction-services/internal/auctionerrors"
	"auction-services/internal/config"

	"github.com/stretchr/testify/require"
)

// newSQLiteRepo opens a private in-memory sqlite database for one test
func newSQLiteRepo(t *testing.T) *GormRepo {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := Open(config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := NewGormRepo(db)
	require.NoError(t, repo.Migrate(context.Background()))
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestGormRepoContract(t *testing.T) {
	t.Parallel()
	runStoreContract(t, func(t *testing.T) Store { return newSQLiteRepo(t) })
}

func TestOpenUnsupportedDriver(t *testing.T) {
	t.Parallel()
	_, err := Open(config.DBConfig{Driver: "oracle"})
	require.ErrorContains(t, err, "unsupported driver")
}

func TestGormRepo_ConcurrentRaisePrice(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newSQLiteRepo(t)
	require.NoError(t, repo.CreateAuction(ctx, newAuction("a1", "item1", 100, base)))

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		stale int
	)
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// every price is raised twice, so at least one call per price is stale
			for range 2 {
				_, err := repo.RaisePrice(ctx, "a1", float64(101+i))
				if err != nil {
					require.ErrorIs(t, err, auctionerrors.ErrPriceNotHigher)
					mu.Lock()
					stale++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	got, err := repo.GetAuction(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, 120.0, got.CurrentPrice)
	require.GreaterOrEqual(t, stale, 20)
}
