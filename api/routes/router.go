package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sejacapricho/printshop-backend/api/controllers"
	"github.com/sejacapricho/printshop-backend/api/middleware"
	authsvc "github.com/sejacapricho/printshop-backend/internal/auth"
	"github.com/sejacapricho/printshop-backend/internal/budgets"
	"github.com/sejacapricho/printshop-backend/internal/customers"
	"github.com/sejacapricho/printshop-backend/internal/documents"
	"github.com/sejacapricho/printshop-backend/internal/orders"
	"github.com/sejacapricho/printshop-backend/internal/pricing"
	"github.com/sejacapricho/printshop-backend/internal/products"
	"github.com/sejacapricho/printshop-backend/internal/settings"
	"github.com/sejacapricho/printshop-backend/internal/suppliers"
	"github.com/sejacapricho/printshop-backend/pkg/auth/session"
	"github.com/sejacapricho/printshop-backend/pkg/config"
	"github.com/sejacapricho/printshop-backend/pkg/db"
	"github.com/sejacapricho/printshop-backend/pkg/logger"
	"github.com/sejacapricho/printshop-backend/pkg/metrics"
)

// Services bundles everything the router needs wired in.
type Services struct {
	Auth      authsvc.Service
	Products  products.Service
	Customers customers.Service
	Suppliers suppliers.Service
	Budgets   budgets.Service
	Orders    orders.Service
	Settings  settings.Service
	Quoter    *pricing.Quoter
	Renderer  *documents.Renderer
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database db.Pinger,
	cache db.Pinger,
	sessions session.AccessSessionChecker,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	httpMetrics := metrics.NewHTTPMetrics(registry)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, database, cache, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.Login(svcs.Auth, logg))
		r.Post("/refresh", controllers.Refresh(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Post("/auth/logout", controllers.Logout(svcs.Auth, logg))
		r.With(middleware.RequireAdmin(logg)).Post("/auth/register", controllers.Register(svcs.Auth, logg))

		r.Post("/pricing/quote", controllers.Quote(svcs.Quoter, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(svcs.Products, logg))
			r.Post("/", controllers.CreateProduct(svcs.Products, logg))
			r.Get("/{id}", controllers.GetProduct(svcs.Products, logg))
			r.Patch("/{id}", controllers.UpdateProduct(svcs.Products, logg))
			r.Delete("/{id}", controllers.DeactivateProduct(svcs.Products, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.ListCustomers(svcs.Customers, logg))
			r.Post("/", controllers.CreateCustomer(svcs.Customers, logg))
			r.Get("/{id}", controllers.GetCustomer(svcs.Customers, logg))
			r.Put("/{id}", controllers.UpdateCustomer(svcs.Customers, logg))
			r.Delete("/{id}", controllers.DeleteCustomer(svcs.Customers, logg))
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", controllers.ListSuppliers(svcs.Suppliers, logg))
			r.Post("/", controllers.CreateSupplier(svcs.Suppliers, logg))
			r.Get("/{id}", controllers.GetSupplier(svcs.Suppliers, logg))
			r.Put("/{id}", controllers.UpdateSupplier(svcs.Suppliers, logg))
			r.Delete("/{id}", controllers.DeleteSupplier(svcs.Suppliers, logg))
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Get("/", controllers.ListBudgets(svcs.Budgets, logg))
			r.Post("/", controllers.CreateBudget(svcs.Budgets, logg))
			r.Get("/{id}", controllers.GetBudget(svcs.Budgets, logg))
			r.Delete("/{id}", controllers.DeleteBudget(svcs.Budgets, logg))
			r.Get("/{id}/document", controllers.BudgetDocument(svcs.Budgets, svcs.Renderer, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(svcs.Orders, logg))
			r.Post("/", controllers.CreateOrder(svcs.Orders, logg))
			r.Get("/dashboard", controllers.OrdersDashboard(svcs.Orders, logg))
			r.Get("/{id}", controllers.GetOrder(svcs.Orders, logg))
			r.Post("/{id}/pay", controllers.MarkOrderPaid(svcs.Orders, logg))
			r.Post("/{id}/deliver", controllers.MarkOrderDelivered(svcs.Orders, logg))
			r.Get("/{id}/document", controllers.OrderDocument(svcs.Orders, svcs.Renderer, logg))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.ListSettings(svcs.Settings, logg))
			r.With(middleware.RequireAdmin(logg)).Put("/", controllers.UpdateSettings(svcs.Settings, logg))
		})
	})

	return r
}
