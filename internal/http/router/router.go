package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/rogerio-castellano/inventory-billing/docs"
	"github.com/rogerio-castellano/inventory-billing/internal/http/handlers"
	mw "github.com/rogerio-castellano/inventory-billing/internal/http/middleware"
	"github.com/rogerio-castellano/inventory-billing/internal/metrics"
	"github.com/rogerio-castellano/inventory-billing/internal/models"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(mw.Metrics)

	r.Get("/healthz", handlers.HealthHandler)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/auth", func(r chi.Router) {
		r.Use(mw.RateLimit)
		r.Post("/login", handlers.LoginHandler)
		r.Post("/register", handlers.RegisterHandler)
	})

	r.Route("/bill", func(r chi.Router) {
		r.Get("/", handlers.GetBillsHandler)
		r.Get("/{billNumber}", handlers.GetBillHandler)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuth)
			r.Post("/create", handlers.CreateBillHandler)
			r.Delete("/delete/{billNumber}", handlers.DeleteBillHandler)
			r.Put("/mark-paid/{billNumber}", handlers.MarkBillPaidHandler)
		})
	})

	r.Route("/product", func(r chi.Router) {
		r.Get("/", handlers.GetProductsHandler)
		r.Get("/{sku}", handlers.GetProductHandler)
		r.Get("/{sku}/movements", handlers.GetMovementsHandler)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuth)
			r.Post("/add", handlers.CreateProductHandler)
			r.Put("/update/{sku}", handlers.UpdateProductHandler)
			r.Post("/adjust/{sku}", handlers.AdjustStockHandler)
			r.Delete("/delete/{sku}", handlers.DeleteProductHandler)
			r.Post("/import", handlers.ImportProductsHandler)
		})
	})

	r.Route("/user", func(r chi.Router) {
		r.Use(mw.RequireAuth, mw.RequireRole(models.RoleAdmin))
		r.Get("/", handlers.GetUsersHandler)
		r.Post("/add", handlers.CreateUserHandler)
		r.Get("/{email}", handlers.GetUserHandler)
		r.Put("/{email}", handlers.UpdateUserHandler)
		r.Delete("/{email}", handlers.DeleteUserHandler)
	})

	r.Route("/request", func(r chi.Router) {
		r.Post("/", handlers.CreateAccessRequestHandler)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuth, mw.RequireRole(models.RoleAdmin))
			r.Get("/", handlers.GetAccessRequestsHandler)
			r.Put("/approve-reject/{id}", handlers.UpdateAccessRequestHandler)
		})
	})

	r.Route("/report", func(r chi.Router) {
		r.Get("/dashboard", handlers.GetDashboardHandler)
		r.Get("/sales", handlers.GetSalesReportHandler)
		r.Get("/low-stock", handlers.GetLowStockReportHandler)
		r.Get("/restock", handlers.GetRestockReportHandler)
	})

	r.With(mw.RequireAuth).Get("/alerts/low-stock", handlers.GetLowStockAlertsHandler)

	return r
}
