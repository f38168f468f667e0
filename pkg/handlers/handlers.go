package handlers

import (
	"log/slog"
	"net/http"

	"github.com/chris/card-transaction-pipeline/pkg/handlers/transactions"
	"github.com/chris/card-transaction-pipeline/pkg/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the transaction endpoints on a chi router.
func NewRouter(txHandler *transactions.TransactionsHandler, logger *slog.Logger) http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.NewStructuredLogger(logger))

	router.Post("/charges", txHandler.Charge)
	router.Post("/preauthorizations", txHandler.Preauthorize)
	router.Post("/captures/{ticketNumber}", txHandler.Capture)
	router.Post("/voids/{ticketNumber}", txHandler.Void)
	router.Get("/transactions/{transactionId}", txHandler.GetTransactionById)

	return router
}
