package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"github.com/rogerio-castellano/inventory-billing/internal/redissvc"
	"go.uber.org/zap"
)

const (
	AlertLogKey      = "inventory:alerts:lowstock"
	DailyAlertLogKey = "inventory:alerts:lowstock:daily"
	maxAlertLog      = 1000
)

// RedisLog keeps alerts in two Redis lists: a capped history and the
// entries accumulated for the next daily summary.
type RedisLog struct {
	rdb    *redis.Client
	mailer *Mailer
}

func NewRedisLog(rs *redissvc.RedisService, mailer *Mailer) *RedisLog {
	return &RedisLog{rdb: rs.Rdb(), mailer: mailer}
}

func (l *RedisLog) LowStock(ctx context.Context, p models.Product) error {
	entry := NewLowStockAlert(p)
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	pipe := l.rdb.TxPipeline()
	pipe.RPush(ctx, AlertLogKey, data)
	pipe.LTrim(ctx, AlertLogKey, -maxAlertLog, -1)
	pipe.RPush(ctx, DailyAlertLogKey, data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to log low stock alert: %w", err)
	}

	l.mailer.SendText(alertSubject(entry), alertBody(entry))
	return nil
}

func decodeEntries(items []string) []LowStockAlert {
	entries := make([]LowStockAlert, 0, len(items))
	for _, item := range items {
		var entry LowStockAlert
		if err := json.Unmarshal([]byte(item), &entry); err == nil {
			entries = append(entries, entry)
		}
	}
	return entries
}

func (l *RedisLog) Recent(ctx context.Context, n int) ([]LowStockAlert, error) {
	if n <= 0 {
		return []LowStockAlert{}, nil
	}
	items, err := l.rdb.LRange(ctx, AlertLogKey, int64(-n), -1).Result()
	if err != nil {
		return nil, err
	}
	entries := decodeEntries(items)
	slices.Reverse(entries)
	return entries, nil
}

// DrainDaily returns and clears the alerts gathered since the last summary.
func (l *RedisLog) DrainDaily(ctx context.Context) ([]LowStockAlert, error) {
	pipe := l.rdb.TxPipeline()
	lrange := pipe.LRange(ctx, DailyAlertLogKey, 0, -1)
	pipe.Del(ctx, DailyAlertLogKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return decodeEntries(lrange.Val()), nil
}

// SendDailySummary mails the digest of the day's alerts, if any.
func (l *RedisLog) SendDailySummary(ctx context.Context) {
	entries, err := l.DrainDaily(ctx)
	if err != nil {
		zap.L().Error("failed to read daily alert log", zap.Error(err))
		return
	}
	if len(entries) == 0 {
		return
	}
	zap.L().Info("daily low stock summary", zap.Int("alerts", len(entries)))
	l.mailer.SendHTML("📊 Daily Low Stock Report", composeSummary(entries), "📬 Daily low stock summary sent via SMTP.")
}

// StartDailySummary sends the summary every day at 23:59 until ctx is done.
func (l *RedisLog) StartDailySummary(ctx context.Context) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(24 * time.Hour)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
			l.SendDailySummary(ctx)
		}
	}
}
