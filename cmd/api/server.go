package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	"flowershop/pkg/inventory"
	"flowershop/pkg/logger"
	"flowershop/pkg/order"
	"flowershop/pkg/otel"
	"flowershop/pkg/shop"
)

type userKey struct{}

// transactionHistory reads transactions persisted across restarts.
type transactionHistory interface {
	List(ctx context.Context) ([]inventory.Transaction, error)
}

// server holds the dependencies shared by the HTTP handlers.
type server struct {
	store         *inventory.Store
	repo          order.Repository
	history       transactionHistory
	notifier      order.Notifier
	sessions      sessionStore
	log           *logger.Logger
	tracer        trace.Tracer
	threshold     int
	freshnessDays int
	now           func() time.Time
}

func (s *server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.traceMiddleware)
	r.HandleFunc("/login", s.loginHandler).Methods(http.MethodPost)

	api := r.NewRoute().Subrouter()
	api.Use(s.authMiddleware)
	api.HandleFunc("/flowers", s.listFlowersHandler).Methods(http.MethodGet)
	api.HandleFunc("/flowers", s.addFlowerHandler).Methods(http.MethodPost)
	api.HandleFunc("/flowers/{name}", s.getFlowerHandler).Methods(http.MethodGet)
	api.HandleFunc("/flowers/{name}/restock", s.restockHandler).Methods(http.MethodPost)
	api.HandleFunc("/transactions", s.listTransactionsHandler).Methods(http.MethodGet)
	api.HandleFunc("/transactions/history", s.transactionHistoryHandler).Methods(http.MethodGet)
	api.HandleFunc("/orders", s.createOrderHandler).Methods(http.MethodPost)
	api.HandleFunc("/orders", s.listOrdersHandler).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", s.getOrderHandler).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", s.deleteOrderHandler).Methods(http.MethodDelete)
	api.HandleFunc("/reports/daily", s.dailyReportHandler).Methods(http.MethodGet)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	return r
}

func (s *server) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.InjectTracing(r.Context(), s.tracer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authMiddleware ensures a valid session exists.
func (s *server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookie)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}
		user, err := s.sessions.Lookup(r.Context(), c.Value)
		if err != nil {
			if !errors.Is(err, errNoSession) {
				s.log.Error(r.Context(), "session lookup", "error", err)
			}
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}
		ctx := context.WithValue(r.Context(), userKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and writes it as JSON.
func (s *server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error(ctx, "request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: shop.Code(err)})
}

func statusFor(err error) int {
	var (
		flowerErr  *shop.InvalidFlowerDataError
		orderErr   *shop.InvalidOrderError
		stockErr   *shop.OutOfStockError
		expiredErr *shop.ExpiredFlowerError
	)
	switch {
	case errors.As(err, &flowerErr), errors.As(err, &orderErr):
		return http.StatusBadRequest
	case errors.Is(err, shop.ErrFlowerNotFound), errors.Is(err, order.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &stockErr), errors.As(err, &expiredErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
