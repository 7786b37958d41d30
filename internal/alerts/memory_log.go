package alerts

import (
	"context"
	"sync"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
)

// MemoryLog is the Notifier used when Redis is not configured.
type MemoryLog struct {
	mu      sync.Mutex
	entries []LowStockAlert
	mailer  *Mailer
}

func NewMemoryLog(mailer *Mailer) *MemoryLog {
	return &MemoryLog{mailer: mailer}
}

func (l *MemoryLog) LowStock(_ context.Context, p models.Product) error {
	entry := NewLowStockAlert(p)

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	if len(l.entries) > maxAlertLog {
		l.entries = l.entries[len(l.entries)-maxAlertLog:]
	}
	l.mu.Unlock()

	l.mailer.SendText(alertSubject(entry), alertBody(entry))
	return nil
}

func (l *MemoryLog) Recent(_ context.Context, n int) ([]LowStockAlert, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := []LowStockAlert{}
	for i := len(l.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.entries[i])
	}
	return out, nil
}

func (l *MemoryLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
}
