package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"flowershop/pkg/flower"
	"flowershop/pkg/inventory"
	"flowershop/pkg/order"
	"flowershop/pkg/otel"
	"flowershop/pkg/report"
)

// loginRequest represents login credentials.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// addFlowerRequest describes a flower to stock. FreshnessDays defaults to
// the configured window.
type addFlowerRequest struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	FreshnessDays int     `json:"freshness_days,omitempty"`
}

type restockRequest struct {
	Quantity int `json:"quantity"`
}

type orderItemRequest struct {
	Flower   string `json:"flower"`
	Quantity int    `json:"quantity"`
}

type createOrderRequest struct {
	Customer string             `json:"customer"`
	Items    []orderItemRequest `json:"items"`
}

// loginHandler handles user login and session creation.
// @Summary Login
// @Description Authenticates user and sets session cookie
// @Accept json
// @Produce json
// @Param creds body loginRequest true "Credentials"
// @Success 200
// @Router /login [post]
func (s *server) loginHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "loginHandler")
	defer span.End()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid credentials"})
		return
	}
	sid, err := s.sessions.Create(ctx, req.Username)
	if err != nil {
		s.log.Error(ctx, "create session", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "session error"})
		return
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: sid, Path: "/", Expires: s.now().Add(sessionTTL), HttpOnly: true})
	w.WriteHeader(http.StatusOK)
}

// listFlowersHandler lists the stocked flowers.
// @Summary List flowers
// @Produce json
// @Success 200 {array} flower.Flower
// @Security ApiKeyAuth
// @Router /flowers [get]
func (s *server) listFlowersHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "listFlowersHandler")
	defer span.End()

	writeJSON(w, http.StatusOK, s.store.Flowers())
}

// addFlowerHandler stocks a new flower or adds to an existing one.
// @Summary Add flower
// @Accept json
// @Produce json
// @Param flower body addFlowerRequest true "Flower"
// @Success 201 {object} flower.Flower
// @Failure 400 {object} errorResponse
// @Security ApiKeyAuth
// @Router /flowers [post]
func (s *server) addFlowerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "addFlowerHandler")
	defer span.End()

	var req addFlowerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	days := s.freshnessDays
	if req.FreshnessDays > 0 {
		days = req.FreshnessDays
	}
	f, err := flower.New(req.Name, req.Price, req.Quantity, flower.WithFreshnessDays(days), flower.WithClock(s.now))
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}
	stored, err := s.store.AddFlower(ctx, f)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

// getFlowerHandler retrieves a flower by name.
// @Summary Get flower
// @Produce json
// @Param name path string true "Flower name"
// @Success 200 {object} flower.Flower
// @Failure 404 {object} errorResponse
// @Security ApiKeyAuth
// @Router /flowers/{name} [get]
func (s *server) getFlowerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getFlowerHandler")
	defer span.End()

	f, err := s.store.Flower(mux.Vars(r)["name"])
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// restockHandler adds stock to an existing flower.
// @Summary Restock flower
// @Accept json
// @Produce json
// @Param name path string true "Flower name"
// @Param restock body restockRequest true "Quantity"
// @Success 200 {object} flower.Flower
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Security ApiKeyAuth
// @Router /flowers/{name}/restock [post]
func (s *server) restockHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "restockHandler")
	defer span.End()

	var req restockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	f, err := s.store.Restock(ctx, mux.Vars(r)["name"], req.Quantity)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// listTransactionsHandler returns the transaction log.
// @Summary List transactions
// @Produce json
// @Success 200 {array} inventory.Transaction
// @Security ApiKeyAuth
// @Router /transactions [get]
func (s *server) listTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "listTransactionsHandler")
	defer span.End()

	writeJSON(w, http.StatusOK, s.store.Transactions())
}

// transactionHistoryHandler returns the persisted transaction journal, or
// the in-memory log when no database is configured.
// @Summary Transaction history
// @Produce json
// @Success 200 {array} inventory.Transaction
// @Security ApiKeyAuth
// @Router /transactions/history [get]
func (s *server) transactionHistoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "transactionHistoryHandler")
	defer span.End()

	if s.history == nil {
		writeJSON(w, http.StatusOK, s.store.Transactions())
		return
	}
	txs, err := s.history.List(ctx)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}
	if txs == nil {
		txs = []inventory.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

// createOrderHandler creates and processes an order. A processed order
// returns 201, a failed one 422 with its rollback applied.
// @Summary Create order
// @Accept json
// @Produce json
// @Param order body createOrderRequest true "Order"
// @Success 201 {object} order.Order
// @Failure 400 {object} errorResponse
// @Failure 422 {object} order.Order
// @Security ApiKeyAuth
// @Router /orders [post]
func (s *server) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createOrderHandler")
	defer span.End()

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	o, err := order.New(req.Customer, s.store, order.WithLogger(s.log), order.WithTracer(s.tracer))
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}
	for _, it := range req.Items {
		if err := o.AddItem(ctx, it.Flower, it.Quantity); err != nil {
			s.writeError(ctx, w, err)
			return
		}
	}

	if err := o.Process(ctx); err != nil && o.Status == order.StatusNew {
		s.writeError(ctx, w, err)
		return
	}
	if err := s.repo.Create(ctx, *o); err != nil {
		s.log.Error(ctx, "create order", "order_id", o.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if s.notifier != nil {
		if err := s.notifier.OrderFinalized(ctx, *o); err != nil {
			s.log.Warn(ctx, "notify order", "order_id", o.ID, "error", err)
		}
	}

	status := http.StatusCreated
	if o.Status == order.StatusFailed {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, o)
}

// listOrdersHandler lists orders.
// @Summary List orders
// @Produce json
// @Success 200 {array} order.Order
// @Security ApiKeyAuth
// @Router /orders [get]
func (s *server) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listOrdersHandler")
	defer span.End()

	orders, err := s.repo.List(ctx)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// getOrderHandler retrieves an order by ID.
// @Summary Get order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} order.Order
// @Failure 404 {object} errorResponse
// @Security ApiKeyAuth
// @Router /orders/{id} [get]
func (s *server) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getOrderHandler")
	defer span.End()

	o, err := s.repo.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// deleteOrderHandler removes an order record. Stock is not returned.
// @Summary Delete order
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Security ApiKeyAuth
// @Router /orders/{id} [delete]
func (s *server) deleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteOrderHandler")
	defer span.End()

	if err := s.repo.Delete(ctx, mux.Vars(r)["id"]); err != nil {
		s.writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// dailyReportHandler summarizes stock and transactions.
// @Summary Daily report
// @Produce json
// @Param threshold query int false "Low stock threshold"
// @Success 200 {object} report.Daily
// @Failure 400 {object} errorResponse
// @Security ApiKeyAuth
// @Router /reports/daily [get]
func (s *server) dailyReportHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "dailyReportHandler")
	defer span.End()

	threshold := s.threshold
	if v := r.URL.Query().Get("threshold"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "threshold must be a positive integer"})
			return
		}
		threshold = n
	}
	d := report.Generator{Threshold: threshold, Now: s.now, Logger: s.log}.Generate(s.store)
	writeJSON(w, http.StatusOK, d)
}
