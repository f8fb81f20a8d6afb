package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"auction-services/internal/auctionerrors"
	"auction-services/internal/models"

	"github.com/samber/lo"
)

var _ Store = (*MemoryRepo)(nil)

// MemoryRepo is a concurrency-safe in-memory implementation of Store
type MemoryRepo struct {
	mu            sync.RWMutex
	auctions      map[string]models.Auction      // key: auctionID
	bids          map[string][]models.Bid        // key: auctionID -> value: bids in arrival order
	bidAuctions   map[string]string              // key: bidID -> value: auctionID
	transactions  map[string]models.Transaction  // key: transactionID
	notifications map[string]models.Notification // key: notificationID
	items         map[string]models.Item         // key: itemID
	users         map[string]models.User         // key: userID
	emails        map[string]string              // key: email -> value: userID
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions:      make(map[string]models.Auction),
		bids:          make(map[string][]models.Bid),
		bidAuctions:   make(map[string]string),
		transactions:  make(map[string]models.Transaction),
		notifications: make(map[string]models.Notification),
		items:         make(map[string]models.Item),
		users:         make(map[string]models.User),
		emails:        make(map[string]string),
	}
}

func inWindow(created, since time.Time) bool {
	return !created.Before(since)
}

// CreateAuction stores a new auction
func (r *MemoryRepo) CreateAuction(_ context.Context, auction models.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.auctions[auction.ID]; exists {
		return fmt.Errorf("create auction %s: duplicate id: %w", auction.ID, auctionerrors.ErrInvalidAuction)
	}
	r.auctions[auction.ID] = auction
	return nil
}

// GetAuction returns an auction by id
func (r *MemoryRepo) GetAuction(_ context.Context, id string) (models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auction, ok := r.auctions[id]
	if !ok {
		return models.Auction{}, fmt.Errorf("get auction %s: %w", id, auctionerrors.ErrAuctionNotFound)
	}
	return auction, nil
}

// ListAuctions returns all auctions ordered by creation time
func (r *MemoryRepo) ListAuctions(_ context.Context) ([]models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortAuctions(lo.Values(r.auctions)), nil
}

// ListAuctionsByItems returns the auctions referencing any of the given items
func (r *MemoryRepo) ListAuctionsByItems(_ context.Context, itemIDs []string) ([]models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := lo.Associate(itemIDs, func(id string) (string, struct{}) { return id, struct{}{} })
	matched := lo.Filter(lo.Values(r.auctions), func(a models.Auction, _ int) bool {
		_, ok := wanted[a.ItemID]
		return ok
	})
	return sortAuctions(matched), nil
}

// UpdateAuctionDetails overwrites the timing and starting price of an auction
func (r *MemoryRepo) UpdateAuctionDetails(_ context.Context, auction models.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.auctions[auction.ID]
	if !ok {
		return fmt.Errorf("update auction %s: %w", auction.ID, auctionerrors.ErrAuctionNotFound)
	}
	stored.StartTime = auction.StartTime
	stored.EndDate = auction.EndDate
	stored.StartingPrice = auction.StartingPrice
	stored.UpdatedAt = time.Now().UTC()
	r.auctions[auction.ID] = stored
	return nil
}

// TransitionAuction changes an auction's status if it is currently from
func (r *MemoryRepo) TransitionAuction(_ context.Context, id string, from, to models.AuctionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.auctions[id]
	if !ok {
		return fmt.Errorf("transition auction %s: %w", id, auctionerrors.ErrAuctionNotFound)
	}
	if stored.Status != from {
		return fmt.Errorf("transition auction %s from %s to %s: status is %s: %w", id, from, to, stored.Status, auctionerrors.ErrIllegalTransition)
	}
	stored.Status = to
	stored.UpdatedAt = time.Now().UTC()
	r.auctions[id] = stored
	return nil
}

// RestartAuction sets a new start time on an Active auction
func (r *MemoryRepo) RestartAuction(_ context.Context, id string, startTime time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.auctions[id]
	if !ok {
		return fmt.Errorf("restart auction %s: %w", id, auctionerrors.ErrAuctionNotFound)
	}
	if stored.Status != models.AuctionActive {
		return fmt.Errorf("restart auction %s: status is %s: %w", id, stored.Status, auctionerrors.ErrIllegalTransition)
	}
	stored.StartTime = startTime
	stored.UpdatedAt = time.Now().UTC()
	r.auctions[id] = stored
	return nil
}

// RaisePrice sets a strictly higher current price on an Active auction
func (r *MemoryRepo) RaisePrice(_ context.Context, id string, price float64) (models.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.auctions[id]
	if !ok {
		return models.Auction{}, fmt.Errorf("raise price of auction %s: %w", id, auctionerrors.ErrAuctionNotFound)
	}
	if stored.Status != models.AuctionActive {
		return models.Auction{}, fmt.Errorf("raise price of auction %s: status is %s: %w", id, stored.Status, auctionerrors.ErrIllegalTransition)
	}
	if price <= stored.CurrentPrice {
		return models.Auction{}, fmt.Errorf("raise price of auction %s to %.2f: current is %.2f: %w", id, price, stored.CurrentPrice, auctionerrors.ErrPriceNotHigher)
	}
	stored.CurrentPrice = price
	stored.UpdatedAt = time.Now().UTC()
	r.auctions[id] = stored
	return stored, nil
}

// AuctionStats aggregates auctions created at or after since
func (r *MemoryRepo) AuctionStats(_ context.Context, since time.Time) (models.AuctionStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats models.AuctionStats
	var priceSum float64
	for _, a := range r.auctions {
		if !inWindow(a.CreatedAt, since) {
			continue
		}
		stats.Total++
		priceSum += a.CurrentPrice
		switch a.Status {
		case models.AuctionActive:
			stats.Active++
		case models.AuctionClosed:
			stats.Closed++
		case models.AuctionCancelled:
			stats.Cancelled++
		}
	}
	if stats.Total > 0 {
		stats.AveragePrice = priceSum / float64(stats.Total)
	}
	return stats, nil
}

// CreateBid records a bid on an auction
func (r *MemoryRepo) CreateBid(_ context.Context, bid models.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bidAuctions[bid.ID]; exists {
		return fmt.Errorf("create bid %s: duplicate id: %w", bid.ID, auctionerrors.ErrInvalidBid)
	}
	r.bids[bid.AuctionID] = append(r.bids[bid.AuctionID], bid)
	r.bidAuctions[bid.ID] = bid.AuctionID
	return nil
}

// GetBid returns a bid by id
func (r *MemoryRepo) GetBid(_ context.Context, id string) (models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auctionID, ok := r.bidAuctions[id]
	if !ok {
		return models.Bid{}, fmt.Errorf("get bid %s: %w", id, auctionerrors.ErrBidNotFound)
	}
	bid, _ := lo.Find(r.bids[auctionID], func(b models.Bid) bool { return b.ID == id })
	return bid, nil
}

// ListBids returns every bid ordered by bid time
func (r *MemoryRepo) ListBids(_ context.Context) ([]models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortBids(lo.Flatten(lo.Values(r.bids))), nil
}

// DeleteBid removes a bid
func (r *MemoryRepo) DeleteBid(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	auctionID, ok := r.bidAuctions[id]
	if !ok {
		return fmt.Errorf("delete bid %s: %w", id, auctionerrors.ErrBidNotFound)
	}
	r.bids[auctionID] = lo.Reject(r.bids[auctionID], func(b models.Bid, _ int) bool { return b.ID == id })
	delete(r.bidAuctions, id)
	return nil
}

// ListBidsByAuction returns all bids for an auction; an auction without bids yields an empty slice
func (r *MemoryRepo) ListBidsByAuction(_ context.Context, auctionID string) ([]models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortBids(append([]models.Bid{}, r.bids[auctionID]...)), nil
}

// ListBidsByBidder returns all bids placed by a bidder
func (r *MemoryRepo) ListBidsByBidder(_ context.Context, bidderID string) ([]models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := lo.Flatten(lo.Values(r.bids))
	return sortBids(lo.Filter(all, func(b models.Bid, _ int) bool { return b.BidderID == bidderID })), nil
}

// HighestBid returns the highest bid for an auction
func (r *MemoryRepo) HighestBid(_ context.Context, auctionID string) (models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids := r.bids[auctionID]
	if len(bids) == 0 {
		return models.Bid{}, fmt.Errorf("get highest bid for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}

	highest := bids[0]
	for _, b := range bids[1:] {
		if outranks(b, highest) {
			highest = b
		}
	}
	return highest, nil
}

// outranks reports whether a beats b: higher amount, then earlier bid time, then smaller id
func outranks(a, b models.Bid) bool {
	if a.Amount != b.Amount {
		return a.Amount > b.Amount
	}
	if !a.BidTime.Equal(b.BidTime) {
		return a.BidTime.Before(b.BidTime)
	}
	return a.ID < b.ID
}

// BidStats aggregates bids placed at or after since
func (r *MemoryRepo) BidStats(_ context.Context, since time.Time) (models.BidStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats models.BidStats
	var sum float64
	for _, bids := range r.bids {
		for _, b := range bids {
			if !inWindow(b.BidTime, since) {
				continue
			}
			if stats.Total == 0 || b.Amount > stats.MaxAmount {
				stats.MaxAmount = b.Amount
			}
			stats.Total++
			sum += b.Amount
		}
	}
	if stats.Total > 0 {
		stats.AverageAmount = sum / float64(stats.Total)
	}
	return stats, nil
}

// CreateTransaction stores a new transaction
func (r *MemoryRepo) CreateTransaction(_ context.Context, tx models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.transactions[tx.ID]; exists {
		return fmt.Errorf("create transaction %s: duplicate id: %w", tx.ID, auctionerrors.ErrInvalidTransaction)
	}
	r.transactions[tx.ID] = tx
	return nil
}

// GetTransaction returns a transaction by id
func (r *MemoryRepo) GetTransaction(_ context.Context, id string) (models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tx, ok := r.transactions[id]
	if !ok {
		return models.Transaction{}, fmt.Errorf("get transaction %s: %w", id, auctionerrors.ErrTransactionNotFound)
	}
	return tx, nil
}

// ListTransactions returns all transactions ordered by transaction date
func (r *MemoryRepo) ListTransactions(_ context.Context) ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortTransactions(lo.Values(r.transactions)), nil
}

// ListTransactionsByAuction returns the transactions for an auction
func (r *MemoryRepo) ListTransactionsByAuction(_ context.Context, auctionID string) ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortTransactions(lo.Filter(lo.Values(r.transactions), func(tx models.Transaction, _ int) bool {
		return tx.AuctionID == auctionID
	})), nil
}

// ListTransactionsByBuyer returns the transactions paid by a buyer
func (r *MemoryRepo) ListTransactionsByBuyer(_ context.Context, buyerID string) ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortTransactions(lo.Filter(lo.Values(r.transactions), func(tx models.Transaction, _ int) bool {
		return tx.BuyerID == buyerID
	})), nil
}

// TransitionTransaction changes a transaction's status if it is currently from
func (r *MemoryRepo) TransitionTransaction(_ context.Context, id string, from, to models.TransactionStatus) (models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, ok := r.transactions[id]
	if !ok {
		return models.Transaction{}, fmt.Errorf("transition transaction %s: %w", id, auctionerrors.ErrTransactionNotFound)
	}
	if tx.Status != from {
		return models.Transaction{}, fmt.Errorf("transition transaction %s from %s to %s: status is %s: %w", id, from, to, tx.Status, auctionerrors.ErrIllegalTransition)
	}
	tx.Status = to
	tx.UpdatedAt = time.Now().UTC()
	r.transactions[id] = tx
	return tx, nil
}

// TransactionStats aggregates transactions dated at or after since
func (r *MemoryRepo) TransactionStats(_ context.Context, since time.Time) (models.TransactionStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats models.TransactionStats
	for _, tx := range r.transactions {
		if !inWindow(tx.TransactionDate, since) {
			continue
		}
		stats.Total++
		stats.TotalAmount += tx.Amount
		switch tx.Status {
		case models.TransactionPending:
			stats.Pending++
		case models.TransactionCompleted:
			stats.Completed++
		case models.TransactionFailed:
			stats.Failed++
		case models.TransactionRefunded:
			stats.Refunded++
		}
	}
	if stats.Total > 0 {
		stats.AverageAmount = stats.TotalAmount / float64(stats.Total)
	}
	return stats, nil
}

// CreateNotifications stores a batch of notifications atomically
func (r *MemoryRepo) CreateNotifications(_ context.Context, notifications []models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range notifications {
		if _, exists := r.notifications[n.ID]; exists {
			return fmt.Errorf("create notification %s: duplicate id: %w", n.ID, auctionerrors.ErrInvalidNotification)
		}
	}
	for _, n := range notifications {
		r.notifications[n.ID] = n
	}
	return nil
}

// GetNotification returns a notification by id
func (r *MemoryRepo) GetNotification(_ context.Context, id string) (models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.notifications[id]
	if !ok {
		return models.Notification{}, fmt.Errorf("get notification %s: %w", id, auctionerrors.ErrNotificationNotFound)
	}
	return n, nil
}

// ListNotificationsByUser returns a user's notifications, newest first
func (r *MemoryRepo) ListNotificationsByUser(_ context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := lo.Filter(lo.Values(r.notifications), func(n models.Notification, _ int) bool {
		return n.UserID == userID && (!unreadOnly || !n.IsRead)
	})
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// MarkNotificationRead flags a notification as read
func (r *MemoryRepo) MarkNotificationRead(_ context.Context, id string, at time.Time) (models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notifications[id]
	if !ok {
		return models.Notification{}, fmt.Errorf("mark notification %s read: %w", id, auctionerrors.ErrNotificationNotFound)
	}
	n.IsRead = true
	if n.ReadAt == nil {
		n.ReadAt = &at
	}
	r.notifications[id] = n
	return n, nil
}

// DeleteNotification removes a notification
func (r *MemoryRepo) DeleteNotification(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notifications[id]; !ok {
		return fmt.Errorf("delete notification %s: %w", id, auctionerrors.ErrNotificationNotFound)
	}
	delete(r.notifications, id)
	return nil
}

// NotificationStats aggregates notifications created at or after since
func (r *MemoryRepo) NotificationStats(_ context.Context, since time.Time) (models.NotificationStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats models.NotificationStats
	for _, n := range r.notifications {
		if !inWindow(n.CreatedAt, since) {
			continue
		}
		stats.Total++
		if n.IsRead {
			stats.Read++
		} else {
			stats.Unread++
		}
	}
	return stats, nil
}

// CreateItem stores a new item
func (r *MemoryRepo) CreateItem(_ context.Context, item models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("create item %s: duplicate id: %w", item.ID, auctionerrors.ErrInvalidItem)
	}
	r.items[item.ID] = item
	return nil
}

// GetItem returns an item by id
func (r *MemoryRepo) GetItem(_ context.Context, id string) (models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return models.Item{}, fmt.Errorf("get item %s: %w", id, auctionerrors.ErrItemNotFound)
	}
	return item, nil
}

// ListItems returns all items ordered by creation time
func (r *MemoryRepo) ListItems(_ context.Context) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortItems(lo.Values(r.items)), nil
}

// UpdateItem overwrites an item's mutable fields
func (r *MemoryRepo) UpdateItem(_ context.Context, item models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[item.ID]
	if !ok {
		return fmt.Errorf("update item %s: %w", item.ID, auctionerrors.ErrItemNotFound)
	}
	stored.Name = item.Name
	stored.Description = item.Description
	stored.CategoryID = item.CategoryID
	stored.OwnerID = item.OwnerID
	stored.UpdatedAt = time.Now().UTC()
	r.items[item.ID] = stored
	return nil
}

// DeleteItem removes an item
func (r *MemoryRepo) DeleteItem(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("delete item %s: %w", id, auctionerrors.ErrItemNotFound)
	}
	delete(r.items, id)
	return nil
}

// ListItemsByCategory returns the items in a category
func (r *MemoryRepo) ListItemsByCategory(_ context.Context, categoryID string) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortItems(lo.Filter(lo.Values(r.items), func(i models.Item, _ int) bool { return i.CategoryID == categoryID })), nil
}

// ListItemsByOwner returns the items owned by a user
func (r *MemoryRepo) ListItemsByOwner(_ context.Context, ownerID string) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sortItems(lo.Filter(lo.Values(r.items), func(i models.Item, _ int) bool { return i.OwnerID == ownerID })), nil
}

// AddItem adds an item to the repository, replacing any item with the same id.
func (r *MemoryRepo) AddItem(item models.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
}

// CreateUser stores a new user; emails are unique
func (r *MemoryRepo) CreateUser(_ context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.emails[user.Email]; taken {
		return fmt.Errorf("create user %s: %w", user.Email, auctionerrors.ErrEmailTaken)
	}
	if _, exists := r.users[user.ID]; exists {
		return fmt.Errorf("create user %s: duplicate id: %w", user.ID, auctionerrors.ErrInvalidUser)
	}
	r.users[user.ID] = user
	r.emails[user.Email] = user.ID
	return nil
}

// GetUser returns a user by id
func (r *MemoryRepo) GetUser(_ context.Context, id string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("get user %s: %w", id, auctionerrors.ErrUserNotFound)
	}
	return user, nil
}

// GetUserByEmail returns the user registered with an email
func (r *MemoryRepo) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emails[email]
	if !ok {
		return models.User{}, fmt.Errorf("get user by email %s: %w", email, auctionerrors.ErrUserNotFound)
	}
	return r.users[id], nil
}

// ListUsers returns a page of users ordered by registration time
func (r *MemoryRepo) ListUsers(_ context.Context, skip, limit int) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := lo.Values(r.users)
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].ID < users[j].ID
	})
	users = lo.Drop(users, skip)
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

// UpdateUser overwrites a user's profile fields
func (r *MemoryRepo) UpdateUser(_ context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return fmt.Errorf("update user %s: %w", user.ID, auctionerrors.ErrUserNotFound)
	}
	if owner, taken := r.emails[user.Email]; taken && owner != user.ID {
		return fmt.Errorf("update user %s: %w", user.ID, auctionerrors.ErrEmailTaken)
	}
	delete(r.emails, stored.Email)
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.Email = user.Email
	stored.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = stored
	r.emails[stored.Email] = stored.ID
	return nil
}

// DeleteUser removes a user
func (r *MemoryRepo) DeleteUser(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("delete user %s: %w", id, auctionerrors.ErrUserNotFound)
	}
	delete(r.emails, user.Email)
	delete(r.users, id)
	return nil
}

// UserStats counts users registered at or after since
func (r *MemoryRepo) UserStats(_ context.Context, since time.Time) (models.UserStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return models.UserStats{
		Total: int64(lo.CountBy(lo.Values(r.users), func(u models.User) bool { return inWindow(u.CreatedAt, since) })),
	}, nil
}

func sortAuctions(auctions []models.Auction) []models.Auction {
	sort.Slice(auctions, func(i, j int) bool {
		if !auctions[i].CreatedAt.Equal(auctions[j].CreatedAt) {
			return auctions[i].CreatedAt.Before(auctions[j].CreatedAt)
		}
		return auctions[i].ID < auctions[j].ID
	})
	return auctions
}

func sortBids(bids []models.Bid) []models.Bid {
	sort.Slice(bids, func(i, j int) bool {
		if !bids[i].BidTime.Equal(bids[j].BidTime) {
			return bids[i].BidTime.Before(bids[j].BidTime)
		}
		return bids[i].ID < bids[j].ID
	})
	return bids
}

func sortTransactions(txs []models.Transaction) []models.Transaction {
	sort.Slice(txs, func(i, j int) bool {
		if !txs[i].TransactionDate.Equal(txs[j].TransactionDate) {
			return txs[i].TransactionDate.Before(txs[j].TransactionDate)
		}
		return txs[i].ID < txs[j].ID
	})
	return txs
}

func sortItems(items []models.Item) []models.Item {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
	return items
}
