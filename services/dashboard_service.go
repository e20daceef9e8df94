package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bookshop/models"
)

// LowStockThreshold is the stock level below which a book shows up in the
// dashboard's low-stock count.
const LowStockThreshold = 10

type DashboardService struct {
	orders OrderStore
	books  BookStore
}

func NewDashboardService(orders OrderStore, books BookStore) *DashboardService {
	return &DashboardService{orders: orders, books: books}
}

type DashboardStats struct {
	TotalOrders    int     `json:"totalOrders"`
	TotalRevenue   float64 `json:"totalRevenue"`
	TodaysOrders   int     `json:"todaysOrders"`
	TodaysRevenue  float64 `json:"todaysRevenue"`
	MonthlyOrders  int     `json:"monthlyOrders"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
	TotalBooks     int     `json:"totalBooks"`
	TotalBooksSold int     `json:"totalBooksSold"`
	LowStockBooks  int     `json:"lowStockBooks"`
	PendingOrders  int     `json:"pendingOrders"`
}

// Stats folds every order and book into the dashboard counters. Today and
// this-month boundaries come from the wall clock at query time.
func (s *DashboardService) Stats(ctx context.Context, now time.Time) (*DashboardStats, error) {
	orders, err := s.orders.List(ctx, OrderFilter{})
	if err != nil {
		return nil, err
	}
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, err
	}

	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &DashboardStats{
		TotalOrders: len(orders),
		TotalBooks:  len(books),
	}

	for _, order := range orders {
		stats.TotalRevenue += order.TotalAmount

		if !order.CreatedAt.Before(startOfToday) {
			stats.TodaysOrders++
			stats.TodaysRevenue += order.TotalAmount
		}
		if !order.CreatedAt.Before(startOfMonth) {
			stats.MonthlyOrders++
			stats.MonthlyRevenue += order.TotalAmount
		}

		for _, item := range order.Books {
			stats.TotalBooksSold += item.Quantity
		}

		if order.OrderStatus == models.OrderStatusPending {
			stats.PendingOrders++
		}
	}

	for _, book := range books {
		if book.Stock < LowStockThreshold {
			stats.LowStockBooks++
		}
	}

	return stats, nil
}

func (s *DashboardService) RecentOrders(ctx context.Context, limit int64) ([]models.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.orders.List(ctx, OrderFilter{Limit: limit})
}

type SalesBucket struct {
	Period      string  `json:"period"`
	TotalAmount float64 `json:"totalAmount"`
	Count       int     `json:"count"`
}

// Sales buckets order totals by day, ISO week or month, ascending by period
// key. Unknown periods fall back to monthly.
func (s *DashboardService) Sales(ctx context.Context, period string) ([]SalesBucket, error) {
	orders, err := s.orders.List(ctx, OrderFilter{})
	if err != nil {
		return nil, err
	}

	keyFor := func(t time.Time) string {
		switch period {
		case "daily":
			return t.Format("2006-01-02")
		case "weekly":
			year, week := t.ISOWeek()
			return fmt.Sprintf("%d-W%02d", year, week)
		default:
			return t.Format("2006-01")
		}
	}

	buckets := map[string]*SalesBucket{}
	for _, order := range orders {
		key := keyFor(order.CreatedAt)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &SalesBucket{Period: key}
			buckets[key] = bucket
		}
		bucket.TotalAmount += order.TotalAmount
		bucket.Count++
	}

	result := make([]SalesBucket, 0, len(buckets))
	for _, bucket := range buckets {
		result = append(result, *bucket)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Period < result[j].Period })
	return result, nil
}

type StatusCount struct {
	Status      models.OrderStatus `json:"status"`
	Count       int                `json:"count"`
	TotalAmount float64            `json:"totalAmount"`
}

func (s *DashboardService) StatusDistribution(ctx context.Context) ([]StatusCount, error) {
	orders, err := s.orders.List(ctx, OrderFilter{})
	if err != nil {
		return nil, err
	}

	counts := map[models.OrderStatus]*StatusCount{}
	for _, order := range orders {
		entry, ok := counts[order.OrderStatus]
		if !ok {
			entry = &StatusCount{Status: order.OrderStatus}
			counts[order.OrderStatus] = entry
		}
		entry.Count++
		entry.TotalAmount += order.TotalAmount
	}

	result := make([]StatusCount, 0, len(counts))
	for _, entry := range counts {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Status < result[j].Status })
	return result, nil
}
