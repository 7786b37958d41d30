package handlers

import (
	"context"

	"github.com/rogerio-castellano/inventory-billing/internal/alerts"
	"github.com/rogerio-castellano/inventory-billing/internal/auth"
	"github.com/rogerio-castellano/inventory-billing/internal/billing"
	"github.com/rogerio-castellano/inventory-billing/internal/report"
	"github.com/rogerio-castellano/inventory-billing/internal/repo"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

var (
	productRepo  repo.ProductRepository
	movementRepo repo.MovementRepository
	userRepo     repo.UserRepository
	requestRepo  repo.AccessRequestRepository

	billingService *billing.Service
	authService    *auth.Service
	reportService  *report.Service
	notifier       alerts.Notifier

	healthChecks = map[string]HealthCheck{}
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetMovementRepo(r repo.MovementRepository) {
	movementRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetAccessRequestRepo(r repo.AccessRequestRepository) {
	requestRepo = r
}

func SetBillingService(s *billing.Service) {
	billingService = s
}

func SetAuthService(s *auth.Service) {
	authService = s
}

func SetReportService(s *report.Service) {
	reportService = s
}

func SetNotifier(n alerts.Notifier) {
	notifier = n
}

func SetHealthChecks(checks map[string]HealthCheck) {
	healthChecks = checks
}
