package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/millstone-erp/millstone-erp/internal/accounting/cart"
	"github.com/millstone-erp/millstone-erp/internal/accounting/fiscal"
	"github.com/millstone-erp/millstone-erp/internal/accounting/ledgers"
	"github.com/millstone-erp/millstone-erp/internal/accounting/posting"
	"github.com/millstone-erp/millstone-erp/internal/accounting/reconcile"
	"github.com/millstone-erp/millstone-erp/internal/accounting/reports"
	"github.com/millstone-erp/millstone-erp/internal/accounting/vouchers"
	"github.com/millstone-erp/millstone-erp/internal/auth"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	SessionManager   *auth.SessionManager
	AuthHandler      *auth.Handler
	LedgerHandler    *ledgers.Handler
	VoucherHandler   *vouchers.Handler
	FiscalHandler    *fiscal.Handler
	CartHandler      *cart.Handler
	PostingHandler   *posting.Handler
	ReconcileHandler *reconcile.Handler
	ReportsHandler   *reports.Handler
}

// NewRouter constructs the chi.Router with Millstone defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)
	r.Use(auth.Middleware(params.SessionManager, params.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	params.AuthHandler.MountRoutes(r)

	r.Group(func(gr chi.Router) {
		gr.Use(auth.RequireActor)
		params.LedgerHandler.MountRoutes(gr)
		params.VoucherHandler.MountRoutes(gr)
		params.FiscalHandler.MountRoutes(gr)
		params.CartHandler.MountRoutes(gr)
		params.PostingHandler.MountRoutes(gr)
		params.ReconcileHandler.MountRoutes(gr)
		params.ReportsHandler.MountRoutes(gr)
	})

	return r
}
