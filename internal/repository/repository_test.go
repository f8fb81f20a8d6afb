package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"auction-services/internal/auctionerrors"
	"auction-services/internal/models"

	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// Helper to create a new Active auction
func newAuction(id, itemID string, price float64, created time.Time) models.Auction {
	return models.Auction{
		ID:            id,
		ItemID:        itemID,
		StartTime:     created,
		EndDate:       created.Add(24 * time.Hour),
		StartingPrice: price,
		CurrentPrice:  price,
		Status:        models.AuctionActive,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
}

// Helper to create a new Bid
func newBid(id, auctionID, bidderID string, amount float64, at time.Time) models.Bid {
	return models.Bid{ID: id, AuctionID: auctionID, BidderID: bidderID, Amount: amount, BidTime: at}
}

func newTransaction(id, auctionID, buyerID string, amount float64, at time.Time) models.Transaction {
	return models.Transaction{
		ID:              id,
		AuctionID:       auctionID,
		BuyerID:         buyerID,
		Amount:          amount,
		Status:          models.TransactionPending,
		TransactionDate: at,
		UpdatedAt:       at,
	}
}

func newNotification(id, userID string, at time.Time) models.Notification {
	return models.Notification{
		ID:        id,
		UserID:    userID,
		Type:      models.NotificationNewBid,
		Message:   "New bid of 150.00",
		Metadata:  models.Metadata{"auction_id": "a1"},
		CreatedAt: at,
	}
}

func newUser(id, email string, at time.Time) models.User {
	return models.User{ID: id, Email: email, PasswordHash: "hash", CreatedAt: at, UpdatedAt: at}
}

// runStoreContract checks the behaviour every Store implementation must share
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("auctions", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.CreateAuction(ctx, newAuction("a1", "item1", 100, base)))
		require.NoError(t, store.CreateAuction(ctx, newAuction("a2", "item2", 50, base.Add(time.Minute))))

		got, err := store.GetAuction(ctx, "a1")
		require.NoError(t, err)
		require.Equal(t, models.AuctionActive, got.Status)
		require.Equal(t, 100.0, got.CurrentPrice)

		_, err = store.GetAuction(ctx, "missing")
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)

		all, err := store.ListAuctions(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		require.Equal(t, "a1", all[0].ID)

		byItem, err := store.ListAuctionsByItems(ctx, []string{"item2", "item9"})
		require.NoError(t, err)
		require.Len(t, byItem, 1)
		require.Equal(t, "a2", byItem[0].ID)

		none, err := store.ListAuctionsByItems(ctx, nil)
		require.NoError(t, err)
		require.Empty(t, none)
	})

	t.Run("raise price", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.CreateAuction(ctx, newAuction("a1", "item1", 100, base)))

		tests := []struct {
			name    string
			price   float64
			wantErr error
			want    float64
		}{
			{name: "higher", price: 150, want: 150},
			{name: "equal is stale", price: 150, wantErr: auctionerrors.ErrPriceNotHigher},
			{name: "lower is stale", price: 120, wantErr: auctionerrors.ErrPriceNotHigher},
			{name: "higher again", price: 150.5, want: 150.5},
		}
		// sequential: each case builds on the previous price
		for _, tc := range tests {
			got, err := store.RaisePrice(ctx, "a1", tc.price)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr, tc.name)
				continue
			}
			require.NoError(t, err, tc.name)
			require.Equal(t, tc.want, got.CurrentPrice, tc.name)
		}

		_, err := store.RaisePrice(ctx, "missing", 10)
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)

		require.NoError(t, store.TransitionAuction(ctx, "a1", models.AuctionActive, models.AuctionClosed))
		_, err = store.RaisePrice(ctx, "a1", 500)
		require.ErrorIs(t, err, auctionerrors.ErrIllegalTransition)

		got, err := store.GetAuction(ctx, "a1")
		require.NoError(t, err)
		require.Equal(t, 150.5, got.CurrentPrice)
	})

	t.Run("auction transitions", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.CreateAuction(ctx, newAuction("a1", "item1", 100, base)))

		restart := base.Add(time.Hour)
		require.NoError(t, store.RestartAuction(ctx, "a1", restart))
		got, err := store.GetAuction(ctx, "a1")
		require.NoError(t, err)
		require.True(t, restart.Equal(got.StartTime))

		details := got
		details.StartingPrice = 80
		details.CurrentPrice = 9999
		details.Status = models.AuctionCancelled
		require.NoError(t, store.UpdateAuctionDetails(ctx, details))
		got, err = store.GetAuction(ctx, "a1")
		require.NoError(t, err)
		require.Equal(t, 80.0, got.StartingPrice)
		require.Equal(t, 100.0, got.CurrentPrice)
		require.Equal(t, models.AuctionActive, got.Status)

		require.NoError(t, store.TransitionAuction(ctx, "a1", models.AuctionActive, models.AuctionCancelled))
		err = store.TransitionAuction(ctx, "a1", models.AuctionActive, models.AuctionClosed)
		require.ErrorIs(t, err, auctionerrors.ErrIllegalTransition)
		require.ErrorIs(t, store.RestartAuction(ctx, "a1", restart), auctionerrors.ErrIllegalTransition)

		err = store.TransitionAuction(ctx, "missing", models.AuctionActive, models.AuctionClosed)
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
		require.ErrorIs(t, store.UpdateAuctionDetails(ctx, newAuction("missing", "x", 1, base)), auctionerrors.ErrAuctionNotFound)
	})

	t.Run("bids", func(t *testing.T) {
		store := newStore(t)

		_, err := store.HighestBid(ctx, "a1")
		require.ErrorIs(t, err, auctionerrors.ErrNoBids)

		bids := []models.Bid{
			newBid("b3", "a1", "u1", 120, base),
			newBid("b2", "a1", "u2", 150, base.Add(2*time.Second)),
			newBid("b1", "a1", "u3", 150, base.Add(2*time.Second)),
			newBid("b0", "a1", "u4", 150, base.Add(3*time.Second)),
			newBid("b4", "a2", "u1", 900, base),
		}
		for _, b := range bids {
			require.NoError(t, store.CreateBid(ctx, b))
		}

		// equal amounts: earliest bid time wins, then the smallest id
		highest, err := store.HighestBid(ctx, "a1")
		require.NoError(t, err)
		require.Equal(t, "b1", highest.ID)

		forAuction, err := store.ListBidsByAuction(ctx, "a1")
		require.NoError(t, err)
		require.Len(t, forAuction, 4)

		empty, err := store.ListBidsByAuction(ctx, "a9")
		require.NoError(t, err)
		require.Empty(t, empty)

		byBidder, err := store.ListBidsByBidder(ctx, "u1")
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"b3", "b4"}, []string{byBidder[0].ID, byBidder[1].ID})

		all, err := store.ListBids(ctx)
		require.NoError(t, err)
		require.Len(t, all, 5)

		require.NoError(t, store.DeleteBid(ctx, "b1"))
		require.ErrorIs(t, store.DeleteBid(ctx, "b1"), auctionerrors.ErrBidNotFound)
		_, err = store.GetBid(ctx, "b1")
		require.ErrorIs(t, err, auctionerrors.ErrBidNotFound)

		highest, err = store.HighestBid(ctx, "a1")
		require.NoError(t, err)
		require.Equal(t, "b2", highest.ID)

		stats, err := store.BidStats(ctx, base.Add(-time.Hour))
		require.NoError(t, err)
		require.Equal(t, int64(4), stats.Total)
		require.Equal(t, 900.0, stats.MaxAmount)
	})

	t.Run("transactions", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.CreateTransaction(ctx, newTransaction("t1", "a1", "u1", 150, base)))
		require.NoError(t, store.CreateTransaction(ctx, newTransaction("t2", "a2", "u1", 50, base.Add(time.Minute))))
		require.NoError(t, store.CreateTransaction(ctx, newTransaction("t3", "a1", "u2", 90, base.Add(2*time.Minute))))

		tests := []struct {
			name     string
			id       string
			from, to models.TransactionStatus
			wantErr  error
		}{
			{name: "confirm pending", id: "t1", from: models.TransactionPending, to: models.TransactionCompleted},
			{name: "confirm twice", id: "t1", from: models.TransactionPending, to: models.TransactionCompleted, wantErr: auctionerrors.ErrIllegalTransition},
			{name: "refund completed", id: "t1", from: models.TransactionCompleted, to: models.TransactionRefunded},
			{name: "refund again", id: "t1", from: models.TransactionCompleted, to: models.TransactionRefunded, wantErr: auctionerrors.ErrIllegalTransition},
			{name: "fail pending", id: "t2", from: models.TransactionPending, to: models.TransactionFailed},
			{name: "missing", id: "t9", from: models.TransactionPending, to: models.TransactionCompleted, wantErr: auctionerrors.ErrTransactionNotFound},
		}
		for _, tc := range tests {
			got, err := store.TransitionTransaction(ctx, tc.id, tc.from, tc.to)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr, tc.name)
				continue
			}
			require.NoError(t, err, tc.name)
			require.Equal(t, tc.to, got.Status, tc.name)
		}

		byAuction, err := store.ListTransactionsByAuction(ctx, "a1")
		require.NoError(t, err)
		require.Len(t, byAuction, 2)

		byBuyer, err := store.ListTransactionsByBuyer(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, byBuyer, 2)

		stats, err := store.TransactionStats(ctx, base.Add(-time.Hour))
		require.NoError(t, err)
		require.Equal(t, int64(3), stats.Total)
		require.Equal(t, int64(1), stats.Refunded)
		require.Equal(t, int64(1), stats.Failed)
		require.Equal(t, int64(1), stats.Pending)
		require.InDelta(t, 290.0, stats.TotalAmount, 1e-9)

		stats, err = store.TransactionStats(ctx, base.Add(time.Hour))
		require.NoError(t, err)
		require.Zero(t, stats.Total)
	})

	t.Run("notifications", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.CreateNotifications(ctx, nil))
		require.NoError(t, store.CreateNotifications(ctx, []models.Notification{
			newNotification("n1", "u1", base),
			newNotification("n2", "u1", base.Add(time.Minute)),
			newNotification("n3", "u1", base.Add(2*time.Minute)),
			newNotification("n4", "u2", base),
		}))

		list, err := store.ListNotificationsByUser(ctx, "u1", false, 0)
		require.NoError(t, err)
		require.Equal(t, []string{"n3", "n2", "n1"}, []string{list[0].ID, list[1].ID, list[2].ID})
		require.Equal(t, "a1", list[0].Metadata["auction_id"])

		limited, err := store.ListNotificationsByUser(ctx, "u1", false, 2)
		require.NoError(t, err)
		require.Len(t, limited, 2)

		firstRead := base.Add(time.Hour)
		n, err := store.MarkNotificationRead(ctx, "n2", firstRead)
		require.NoError(t, err)
		require.True(t, n.IsRead)
		require.WithinDuration(t, firstRead, *n.ReadAt, time.Millisecond)

		n, err = store.MarkNotificationRead(ctx, "n2", firstRead.Add(time.Hour))
		require.NoError(t, err)
		require.WithinDuration(t, firstRead, *n.ReadAt, time.Millisecond)

		unread, err := store.ListNotificationsByUser(ctx, "u1", true, 0)
		require.NoError(t, err)
		require.Len(t, unread, 2)

		_, err = store.MarkNotificationRead(ctx, "n9", firstRead)
		require.ErrorIs(t, err, auctionerrors.ErrNotificationNotFound)

		require.NoError(t, store.DeleteNotification(ctx, "n4"))
		require.ErrorIs(t, store.DeleteNotification(ctx, "n4"), auctionerrors.ErrNotificationNotFound)

		stats, err := store.NotificationStats(ctx, base.Add(-time.Hour))
		require.NoError(t, err)
		require.Equal(t, models.NotificationStats{Total: 3, Read: 1, Unread: 2}, stats)
	})

	t.Run("items", func(t *testing.T) {
		store := newStore(t)
		items := []models.Item{
			{ID: "i1", Name: "Clock", CategoryID: "antiques", OwnerID: "u1", CreatedAt: base},
			{ID: "i2", Name: "Chair", CategoryID: "furniture", OwnerID: "u1", CreatedAt: base.Add(time.Minute)},
			{ID: "i3", Name: "Vase", CategoryID: "antiques", OwnerID: "u2", CreatedAt: base.Add(2 * time.Minute)},
		}
		for _, it := range items {
			require.NoError(t, store.CreateItem(ctx, it))
		}

		antiques, err := store.ListItemsByCategory(ctx, "antiques")
		require.NoError(t, err)
		require.Equal(t, []string{"i1", "i3"}, []string{antiques[0].ID, antiques[1].ID})

		owned, err := store.ListItemsByOwner(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, owned, 2)

		updated := items[0]
		updated.Name = "Grandfather Clock"
		require.NoError(t, store.UpdateItem(ctx, updated))
		got, err := store.GetItem(ctx, "i1")
		require.NoError(t, err)
		require.Equal(t, "Grandfather Clock", got.Name)

		require.ErrorIs(t, store.UpdateItem(ctx, models.Item{ID: "i9", Name: "x"}), auctionerrors.ErrItemNotFound)
		require.NoError(t, store.DeleteItem(ctx, "i2"))
		require.ErrorIs(t, store.DeleteItem(ctx, "i2"), auctionerrors.ErrItemNotFound)

		all, err := store.ListItems(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
	})

	t.Run("users", func(t *testing.T) {
		store := newStore(t)
		for i := range 5 {
			u := newUser(fmt.Sprintf("u%d", i), fmt.Sprintf("user%d@example.com", i), base.Add(time.Duration(i)*time.Minute))
			require.NoError(t, store.CreateUser(ctx, u))
		}

		err := store.CreateUser(ctx, newUser("u9", "user0@example.com", base))
		require.ErrorIs(t, err, auctionerrors.ErrEmailTaken)

		byEmail, err := store.GetUserByEmail(ctx, "user3@example.com")
		require.NoError(t, err)
		require.Equal(t, "u3", byEmail.ID)

		_, err = store.GetUserByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, auctionerrors.ErrUserNotFound)

		page, err := store.ListUsers(ctx, 1, 2)
		require.NoError(t, err)
		require.Equal(t, []string{"u1", "u2"}, []string{page[0].ID, page[1].ID})

		rest, err := store.ListUsers(ctx, 3, 0)
		require.NoError(t, err)
		require.Len(t, rest, 2)

		u1, err := store.GetUser(ctx, "u1")
		require.NoError(t, err)
		u1.Email = "user2@example.com"
		require.ErrorIs(t, store.UpdateUser(ctx, u1), auctionerrors.ErrEmailTaken)

		u1.Email = "renamed@example.com"
		u1.FirstName = "Renamed"
		require.NoError(t, store.UpdateUser(ctx, u1))
		got, err := store.GetUserByEmail(ctx, "renamed@example.com")
		require.NoError(t, err)
		require.Equal(t, "Renamed", got.FirstName)

		require.NoError(t, store.DeleteUser(ctx, "u1"))
		require.ErrorIs(t, store.DeleteUser(ctx, "u1"), auctionerrors.ErrUserNotFound)
		// the freed email can be registered again
		require.NoError(t, store.CreateUser(ctx, newUser("u10", "renamed@example.com", base.Add(time.Hour))))

		stats, err := store.UserStats(ctx, base.Add(2*time.Minute))
		require.NoError(t, err)
		require.Equal(t, int64(4), stats.Total)
	})
}

func TestMemoryRepoContract(t *testing.T) {
	t.Parallel()
	runStoreContract(t, func(*testing.T) Store { return NewMemoryRepo() })
}

func TestMemoryRepo_DuplicateIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewMemoryRepo()

	require.NoError(t, repo.CreateAuction(ctx, newAuction("a1", "item1", 10, base)))
	require.ErrorIs(t, repo.CreateAuction(ctx, newAuction("a1", "item1", 10, base)), auctionerrors.ErrInvalidAuction)

	require.NoError(t, repo.CreateBid(ctx, newBid("b1", "a1", "u1", 20, base)))
	require.ErrorIs(t, repo.CreateBid(ctx, newBid("b1", "a1", "u1", 20, base)), auctionerrors.ErrInvalidBid)

	require.NoError(t, repo.CreateUser(ctx, newUser("u1", "a@example.com", base)))
	require.ErrorIs(t, repo.CreateUser(ctx, newUser("u1", "b@example.com", base)), auctionerrors.ErrInvalidUser)
}

func TestMemoryRepo_AddItemReplaces(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepo()

	repo.AddItem(models.Item{ID: "item1", Name: "title1"})
	repo.AddItem(models.Item{ID: "item1", Name: "title1 (restored)"})

	got, err := repo.GetItem(context.Background(), "item1")
	require.NoError(t, err)
	require.Equal(t, "title1 (restored)", got.Name)
}

// concurrency test
func TestMemoryRepo_ConcurrentBids(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewMemoryRepo()
	require.NoError(t, repo.CreateAuction(ctx, newAuction("a1", "item1", 50, base)))

	var wg sync.WaitGroup
	concurrentCount := 50

	for i := range concurrentCount {
		wg.Add(1)
		go func() {
			defer wg.Done()
			amount := float64(100 + i)
			b := newBid(fmt.Sprintf("bid-%d", i), "a1", fmt.Sprintf("user-%d", i), amount, base)
			require.NoError(t, repo.CreateBid(ctx, b))
			// raises arrive out of order; only strictly higher prices land
			_, _ = repo.RaisePrice(ctx, "a1", amount)
		}()
	}
	wg.Wait()

	bids, err := repo.ListBidsByAuction(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, bids, concurrentCount)

	highest, err := repo.HighestBid(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, "bid-49", highest.ID)

	auction, err := repo.GetAuction(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, 149.0, auction.CurrentPrice)
}
