package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/api/handlers"
	custommiddleware "github.com/mdelacruz/Church-Fund-Manager-Backend/internal/api/middleware"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/config"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/service"
)

// Services bundles the service-layer dependencies the router wires into
// handlers.
type Services struct {
	System     *service.SystemService
	Fund       *service.FundService
	Allocation *service.AllocationService
	Reversal   *service.ReversalService
	Report     *service.ReportService
	Treasurer  *service.TreasurerService
	Snapshot   *service.SnapshotService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
		})

		reportHandler := handlers.NewReportHandler(services.Report, services.Snapshot)
		r.Get("/summary", reportHandler.Summary)
		r.Post("/snapshot/run", reportHandler.RunSnapshot)

		r.Route("/fund", func(r chi.Router) {
			fundHandler := handlers.NewFundHandler(services.Fund)
			r.Get("/", fundHandler.ListFunds)
			r.Post("/", fundHandler.CreateFund)
			r.Get("/total-balance", fundHandler.TotalBalance)
			r.Post("/default-split", fundHandler.SaveDefaultSplit)
			r.Get("/remainder", fundHandler.GetRemainderFund)
			r.Route("/remainder/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Put("/", fundHandler.SetRemainderFund)
			})
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", fundHandler.GetFund)
				r.Delete("/", fundHandler.DeleteFund)
			})
		})

		allocationHandler := handlers.NewAllocationHandler(services.Allocation)
		r.Route("/offering", func(r chi.Router) {
			r.Post("/quick-split", allocationHandler.QuickSplit)
			r.Post("/specific", allocationHandler.DepositSpecific)
		})
		r.Post("/withdrawal", allocationHandler.Withdraw)

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(services.Report, services.Reversal)
			r.Get("/", transactionHandler.ListTransactions)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Post("/undo", transactionHandler.UndoTransaction)
			})
		})

		r.Route("/treasurer", func(r chi.Router) {
			treasurerHandler := handlers.NewTreasurerHandler(services.Treasurer)
			r.Get("/", treasurerHandler.ListTreasurers)
			r.Post("/register", treasurerHandler.Register)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", treasurerHandler.GetTreasurer)
				r.Put("/", treasurerHandler.UpdateProfile)
				r.Post("/approve", treasurerHandler.Approve)
				r.Post("/disable", treasurerHandler.Disable)
				r.Post("/enable", treasurerHandler.Enable)
			})
		})
	})

	return r
}
