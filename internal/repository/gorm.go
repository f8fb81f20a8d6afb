package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-services/internal/auctionerrors"
	"auction-services/internal/models"

	"gorm.io/gorm"
)

var _ Store = (*GormRepo)(nil)

// GormRepo is a relational implementation of Store backed by gorm
type GormRepo struct {
	db *gorm.DB
}

// NewGormRepo wraps an open gorm connection
func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

// Migrate creates or updates the tables for every entity
func (r *GormRepo) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(
		&models.Item{},
		&models.Auction{},
		&models.Bid{},
		&models.Transaction{},
		&models.Notification{},
		&models.User{},
	)
}

// Close releases the underlying connection pool
func (r *GormRepo) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func wrapErr(op string, err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, notFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *GormRepo) CreateAuction(ctx context.Context, auction models.Auction) error {
	if err := r.db.WithContext(ctx).Create(&auction).Error; err != nil {
		return fmt.Errorf("create auction %s: %w", auction.ID, err)
	}
	return nil
}

func (r *GormRepo) GetAuction(ctx context.Context, id string) (models.Auction, error) {
	var auction models.Auction
	if err := r.db.WithContext(ctx).First(&auction, "id = ?", id).Error; err != nil {
		return models.Auction{}, wrapErr("get auction "+id, err, auctionerrors.ErrAuctionNotFound)
	}
	return auction, nil
}

func (r *GormRepo) ListAuctions(ctx context.Context) ([]models.Auction, error) {
	auctions := []models.Auction{}
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&auctions).Error; err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	return auctions, nil
}

func (r *GormRepo) ListAuctionsByItems(ctx context.Context, itemIDs []string) ([]models.Auction, error) {
	auctions := []models.Auction{}
	if len(itemIDs) == 0 {
		return auctions, nil
	}
	if err := r.db.WithContext(ctx).Where("item_id IN ?", itemIDs).Order("created_at, id").Find(&auctions).Error; err != nil {
		return nil, fmt.Errorf("list auctions by items: %w", err)
	}
	return auctions, nil
}

func (r *GormRepo) UpdateAuctionDetails(ctx context.Context, auction models.Auction) error {
	res := r.db.WithContext(ctx).Model(&models.Auction{}).Where("id = ?", auction.ID).Updates(map[string]any{
		"start_time":     auction.StartTime,
		"end_date":       auction.EndDate,
		"starting_price": auction.StartingPrice,
		"updated_at":     time.Now().UTC(),
	})
	if res.Error != nil {
		return fmt.Errorf("update auction %s: %w", auction.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		_, err := r.GetAuction(ctx, auction.ID)
		return err
	}
	return nil
}

func (r *GormRepo) TransitionAuction(ctx context.Context, id string, from, to models.AuctionStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Auction{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return fmt.Errorf("transition auction %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		current, err := r.GetAuction(ctx, id)
		if err != nil {
			return err
		}
		return fmt.Errorf("transition auction %s from %s to %s: status is %s: %w", id, from, to, current.Status, auctionerrors.ErrIllegalTransition)
	}
	return nil
}

func (r *GormRepo) RestartAuction(ctx context.Context, id string, startTime time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.Auction{}).
		Where("id = ? AND status = ?", id, models.AuctionActive).
		Updates(map[string]any{"start_time": startTime, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return fmt.Errorf("restart auction %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		current, err := r.GetAuction(ctx, id)
		if err != nil {
			return err
		}
		return fmt.Errorf("restart auction %s: status is %s: %w", id, current.Status, auctionerrors.ErrIllegalTransition)
	}
	return nil
}

// RaisePrice applies the price as a single guarded UPDATE so concurrent or reordered raises never lower the price
func (r *GormRepo) RaisePrice(ctx context.Context, id string, price float64) (models.Auction, error) {
	res := r.db.WithContext(ctx).Model(&models.Auction{}).
		Where("id = ? AND status = ? AND current_price < ?", id, models.AuctionActive, price).
		Updates(map[string]any{"current_price": price, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return models.Auction{}, fmt.Errorf("raise price of auction %s: %w", id, res.Error)
	}
	current, err := r.GetAuction(ctx, id)
	if err != nil {
		return models.Auction{}, err
	}
	if res.RowsAffected == 0 {
		if current.Status != models.AuctionActive {
			return models.Auction{}, fmt.Errorf("raise price of auction %s: status is %s: %w", id, current.Status, auctionerrors.ErrIllegalTransition)
		}
		return models.Auction{}, fmt.Errorf("raise price of auction %s to %.2f: current is %.2f: %w", id, price, current.CurrentPrice, auctionerrors.ErrPriceNotHigher)
	}
	return current, nil
}

func (r *GormRepo) AuctionStats(ctx context.Context, since time.Time) (models.AuctionStats, error) {
	var rows []struct {
		Status   models.AuctionStatus
		Count    int64
		PriceSum float64
	}
	err := r.db.WithContext(ctx).Model(&models.Auction{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(current_price), 0) AS price_sum").
		Where("created_at >= ?", since).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return models.AuctionStats{}, fmt.Errorf("auction stats: %w", err)
	}

	var stats models.AuctionStats
	var priceSum float64
	for _, row := range rows {
		stats.Total += row.Count
		priceSum += row.PriceSum
		switch row.Status {
		case models.AuctionActive:
			stats.Active = row.Count
		case models.AuctionClosed:
			stats.Closed = row.Count
		case models.AuctionCancelled:
			stats.Cancelled = row.Count
		}
	}
	if stats.Total > 0 {
		stats.AveragePrice = priceSum / float64(stats.Total)
	}
	return stats, nil
}

func (r *GormRepo) CreateBid(ctx context.Context, bid models.Bid) error {
	if err := r.db.WithContext(ctx).Create(&bid).Error; err != nil {
		return fmt.Errorf("create bid %s: %w", bid.ID, err)
	}
	return nil
}

func (r *GormRepo) GetBid(ctx context.Context, id string) (models.Bid, error) {
	var bid models.Bid
	if err := r.db.WithContext(ctx).First(&bid, "id = ?", id).Error; err != nil {
		return models.Bid{}, wrapErr("get bid "+id, err, auctionerrors.ErrBidNotFound)
	}
	return bid, nil
}

func (r *GormRepo) ListBids(ctx context.Context) ([]models.Bid, error) {
	bids := []models.Bid{}
	if err := r.db.WithContext(ctx).Order("bid_time, id").Find(&bids).Error; err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	return bids, nil
}

func (r *GormRepo) DeleteBid(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Bid{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete bid %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete bid %s: %w", id, auctionerrors.ErrBidNotFound)
	}
	return nil
}

func (r *GormRepo) ListBidsByAuction(ctx context.Context, auctionID string) ([]models.Bid, error) {
	bids := []models.Bid{}
	if err := r.db.WithContext(ctx).Where("auction_id = ?", auctionID).Order("bid_time, id").Find(&bids).Error; err != nil {
		return nil, fmt.Errorf("list bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

func (r *GormRepo) ListBidsByBidder(ctx context.Context, bidderID string) ([]models.Bid, error) {
	bids := []models.Bid{}
	if err := r.db.WithContext(ctx).Where("bidder_id = ?", bidderID).Order("bid_time, id").Find(&bids).Error; err != nil {
		return nil, fmt.Errorf("list bids for bidder %s: %w", bidderID, err)
	}
	return bids, nil
}

func (r *GormRepo) HighestBid(ctx context.Context, auctionID string) (models.Bid, error) {
	var bid models.Bid
	err := r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("amount DESC, bid_time ASC, id ASC").
		First(&bid).Error
	if err != nil {
		return models.Bid{}, wrapErr("get highest bid for auction "+auctionID, err, auctionerrors.ErrNoBids)
	}
	return bid, nil
}

func (r *GormRepo) BidStats(ctx context.Context, since time.Time) (models.BidStats, error) {
	var stats models.BidStats
	err := r.db.WithContext(ctx).Model(&models.Bid{}).
		Select("COUNT(*) AS total, COALESCE(AVG(amount), 0) AS average_amount, COALESCE(MAX(amount), 0) AS max_amount").
		Where("bid_time >= ?", since).
		Scan(&stats).Error
	if err != nil {
		return models.BidStats{}, fmt.Errorf("bid stats: %w", err)
	}
	return stats, nil
}

func (r *GormRepo) CreateTransaction(ctx context.Context, tx models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return fmt.Errorf("create transaction %s: %w", tx.ID, err)
	}
	return nil
}

func (r *GormRepo) GetTransaction(ctx context.Context, id string) (models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		return models.Transaction{}, wrapErr("get transaction "+id, err, auctionerrors.ErrTransactionNotFound)
	}
	return tx, nil
}

func (r *GormRepo) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	txs := []models.Transaction{}
	if err := r.db.WithContext(ctx).Order("transaction_date, id").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (r *GormRepo) ListTransactionsByAuction(ctx context.Context, auctionID string) ([]models.Transaction, error) {
	txs := []models.Transaction{}
	if err := r.db.WithContext(ctx).Where("auction_id = ?", auctionID).Order("transaction_date, id").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions for auction %s: %w", auctionID, err)
	}
	return txs, nil
}

func (r *GormRepo) ListTransactionsByBuyer(ctx context.Context, buyerID string) ([]models.Transaction, error) {
	txs := []models.Transaction{}
	if err := r.db.WithContext(ctx).Where("buyer_id = ?", buyerID).Order("transaction_date, id").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions for buyer %s: %w", buyerID, err)
	}
	return txs, nil
}

// TransitionTransaction uses a conditional UPDATE so only one of two racing settlements wins
func (r *GormRepo) TransitionTransaction(ctx context.Context, id string, from, to models.TransactionStatus) (models.Transaction, error) {
	res := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return models.Transaction{}, fmt.Errorf("transition transaction %s: %w", id, res.Error)
	}
	current, err := r.GetTransaction(ctx, id)
	if err != nil {
		return models.Transaction{}, err
	}
	if res.RowsAffected == 0 {
		return models.Transaction{}, fmt.Errorf("transition transaction %s from %s to %s: status is %s: %w", id, from, to, current.Status, auctionerrors.ErrIllegalTransition)
	}
	return current, nil
}

func (r *GormRepo) TransactionStats(ctx context.Context, since time.Time) (models.TransactionStats, error) {
	var rows []struct {
		Status    models.TransactionStatus
		Count     int64
		AmountSum float64
	}
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount_sum").
		Where("transaction_date >= ?", since).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return models.TransactionStats{}, fmt.Errorf("transaction stats: %w", err)
	}

	var stats models.TransactionStats
	for _, row := range rows {
		stats.Total += row.Count
		stats.TotalAmount += row.AmountSum
		switch row.Status {
		case models.TransactionPending:
			stats.Pending = row.Count
		case models.TransactionCompleted:
			stats.Completed = row.Count
		case models.TransactionFailed:
			stats.Failed = row.Count
		case models.TransactionRefunded:
			stats.Refunded = row.Count
		}
	}
	if stats.Total > 0 {
		stats.AverageAmount = stats.TotalAmount / float64(stats.Total)
	}
	return stats, nil
}

// CreateNotifications inserts the whole batch in one statement
func (r *GormRepo) CreateNotifications(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&notifications).Error; err != nil {
		return fmt.Errorf("create %d notifications: %w", len(notifications), err)
	}
	return nil
}

func (r *GormRepo) GetNotification(ctx context.Context, id string) (models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		return models.Notification{}, wrapErr("get notification "+id, err, auctionerrors.ErrNotificationNotFound)
	}
	return n, nil
}

func (r *GormRepo) ListNotificationsByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	notifications := []models.Notification{}
	if err := q.Order("created_at DESC, id ASC").Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("list notifications for user %s: %w", userID, err)
	}
	return notifications, nil
}

func (r *GormRepo) MarkNotificationRead(ctx context.Context, id string, at time.Time) (models.Notification, error) {
	if _, err := r.GetNotification(ctx, id); err != nil {
		return models.Notification{}, err
	}
	err := r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Updates(map[string]any{
		"is_read": true,
		"read_at": gorm.Expr("COALESCE(read_at, ?)", at),
	}).Error
	if err != nil {
		return models.Notification{}, fmt.Errorf("mark notification %s read: %w", id, err)
	}
	return r.GetNotification(ctx, id)
}

func (r *GormRepo) DeleteNotification(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Notification{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete notification %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete notification %s: %w", id, auctionerrors.ErrNotificationNotFound)
	}
	return nil
}

func (r *GormRepo) NotificationStats(ctx context.Context, since time.Time) (models.NotificationStats, error) {
	var rows []struct {
		IsRead bool
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Select("is_read, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("is_read").
		Scan(&rows).Error
	if err != nil {
		return models.NotificationStats{}, fmt.Errorf("notification stats: %w", err)
	}

	var stats models.NotificationStats
	for _, row := range rows {
		stats.Total += row.Count
		if row.IsRead {
			stats.Read += row.Count
		} else {
			stats.Unread += row.Count
		}
	}
	return stats, nil
}

func (r *GormRepo) CreateItem(ctx context.Context, item models.Item) error {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return fmt.Errorf("create item %s: %w", item.ID, err)
	}
	return nil
}

func (r *GormRepo) GetItem(ctx context.Context, id string) (models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return models.Item{}, wrapErr("get item "+id, err, auctionerrors.ErrItemNotFound)
	}
	return item, nil
}

func (r *GormRepo) ListItems(ctx context.Context) ([]models.Item, error) {
	items := []models.Item{}
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (r *GormRepo) UpdateItem(ctx context.Context, item models.Item) error {
	res := r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", item.ID).Updates(map[string]any{
		"name":        item.Name,
		"description": item.Description,
		"category_id": item.CategoryID,
		"owner_id":    item.OwnerID,
		"updated_at":  time.Now().UTC(),
	})
	if res.Error != nil {
		return fmt.Errorf("update item %s: %w", item.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		_, err := r.GetItem(ctx, item.ID)
		return err
	}
	return nil
}

func (r *GormRepo) DeleteItem(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete item %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete item %s: %w", id, auctionerrors.ErrItemNotFound)
	}
	return nil
}

func (r *GormRepo) ListItemsByCategory(ctx context.Context, categoryID string) ([]models.Item, error) {
	items := []models.Item{}
	if err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Order("created_at, id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list items in category %s: %w", categoryID, err)
	}
	return items, nil
}

func (r *GormRepo) ListItemsByOwner(ctx context.Context, ownerID string) ([]models.Item, error) {
	items := []models.Item{}
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at, id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list items for owner %s: %w", ownerID, err)
	}
	return items, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, user models.User) error {
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create user %s: %w", user.Email, auctionerrors.ErrEmailTaken)
		}
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}
	return nil
}

func (r *GormRepo) GetUser(ctx context.Context, id string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return models.User{}, wrapErr("get user "+id, err, auctionerrors.ErrUserNotFound)
	}
	return user, nil
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return models.User{}, wrapErr("get user by email "+email, err, auctionerrors.ErrUserNotFound)
	}
	return user, nil
}

func (r *GormRepo) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	q := r.db.WithContext(ctx).Order("created_at, id").Offset(skip)
	if limit > 0 {
		q = q.Limit(limit)
	}
	users := []models.User{}
	if err := q.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *GormRepo) UpdateUser(ctx context.Context, user models.User) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]any{
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("update user %s: %w", user.ID, auctionerrors.ErrEmailTaken)
		}
		return fmt.Errorf("update user %s: %w", user.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		_, err := r.GetUser(ctx, user.ID)
		return err
	}
	return nil
}

func (r *GormRepo) DeleteUser(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete user %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete user %s: %w", id, auctionerrors.ErrUserNotFound)
	}
	return nil
}

func (r *GormRepo) UserStats(ctx context.Context, since time.Time) (models.UserStats, error) {
	var stats models.UserStats
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("created_at >= ?", since).Count(&stats.Total).Error; err != nil {
		return models.UserStats{}, fmt.Errorf("user stats: %w", err)
	}
	return stats, nil
}
