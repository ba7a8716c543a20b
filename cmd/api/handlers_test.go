package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"flowershop/pkg/flower"
	"flowershop/pkg/inventory"
	"flowershop/pkg/logger"
	"flowershop/pkg/order"
	"flowershop/pkg/order/memory"
	"flowershop/pkg/report"
	"flowershop/pkg/shop"
)

var now = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]string
	err      error
}

func (f *fakeSessions) Create(_ context.Context, user string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	sid := fmt.Sprintf("sid-%d", len(f.sessions)+1)
	f.sessions[sid] = user
	return sid, nil
}

func (f *fakeSessions) Lookup(_ context.Context, sid string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.sessions[sid]
	if !ok {
		return "", errNoSession
	}
	return user, nil
}

type fakeNotifier struct {
	orders []order.Order
}

func (f *fakeNotifier) OrderFinalized(_ context.Context, o order.Order) error {
	f.orders = append(f.orders, o)
	return nil
}

type testServer struct {
	*server
	handler  http.Handler
	notifier *fakeNotifier
	cookie   *http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	clock := func() time.Time { return now }
	store := inventory.New(inventory.WithClock(clock))
	for _, s := range []struct {
		name  string
		price float64
		qty   int
	}{{"Rose", 2.00, 10}, {"Tulip", 1.50, 5}} {
		f, err := flower.New(s.name, s.price, s.qty, flower.WithClock(clock))
		require.NoError(t, err)
		_, err = store.AddFlower(context.Background(), f)
		require.NoError(t, err)
	}

	n := &fakeNotifier{}
	srv := &server{
		store:         store,
		repo:          memory.New(),
		notifier:      n,
		sessions:      &fakeSessions{sessions: map[string]string{}},
		log:           logger.NewNop(),
		tracer:        noop.NewTracerProvider().Tracer("test"),
		threshold:     report.DefaultThreshold,
		freshnessDays: 7,
		now:           clock,
	}
	ts := &testServer{server: srv, handler: srv.routes(), notifier: n}

	rec := ts.do(t, http.MethodPost, "/login", loginRequest{Username: "jane", Password: "secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	ts.cookie = cookies[0]
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if ts.cookie != nil {
		req.AddCookie(ts.cookie)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)
	ts.cookie = nil
	assert.Equal(t, http.StatusUnauthorized, ts.do(t, http.MethodGet, "/flowers", nil).Code)

	ts.cookie = &http.Cookie{Name: sessionCookie, Value: "forged"}
	assert.Equal(t, http.StatusUnauthorized, ts.do(t, http.MethodGet, "/flowers", nil).Code)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	assert.Equal(t, sessionCookie, ts.cookie.Name)
	assert.True(t, ts.cookie.HttpOnly)

	ts.cookie = nil
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/login", loginRequest{}).Code)

	ts.sessions.(*fakeSessions).err = errors.New("redis down")
	assert.Equal(t, http.StatusInternalServerError, ts.do(t, http.MethodPost, "/login", loginRequest{Username: "jane"}).Code)
}

func TestFlowers(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/flowers", addFlowerRequest{Name: "Lily", Price: 3.00, Quantity: 4, FreshnessDays: 2})
	require.Equal(t, http.StatusCreated, rec.Code)
	lily := decode[flower.Flower](t, rec)
	assert.Equal(t, now.Add(48*time.Hour), lily.ExpiresAt)

	rec = ts.do(t, http.MethodGet, "/flowers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	flowers := decode[[]flower.Flower](t, rec)
	require.Len(t, flowers, 3)
	assert.Equal(t, "Lily", flowers[2].Name)

	rec = ts.do(t, http.MethodGet, "/flowers/Rose", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, decode[flower.Flower](t, rec).Quantity)

	rec = ts.do(t, http.MethodGet, "/flowers/Orchid", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, shop.CodeNotFound, decode[errorResponse](t, rec).Code)

	rec = ts.do(t, http.MethodPost, "/flowers", addFlowerRequest{Name: "Rose", Price: -1, Quantity: 4})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, shop.CodeNonPositivePrice, decode[errorResponse](t, rec).Code)
}

func TestRestock(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/flowers/Tulip/restock", restockRequest{Quantity: 7})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 12, decode[flower.Flower](t, rec).Quantity)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/flowers/Tulip/restock", restockRequest{Quantity: 0}).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodPost, "/flowers/Orchid/restock", restockRequest{Quantity: 1}).Code)
}

func TestCreateOrderProcessed(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/orders", createOrderRequest{
		Customer: "John",
		Items:    []orderItemRequest{{Flower: "Rose", Quantity: 3}, {Flower: "Tulip", Quantity: 2}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	o := decode[order.Order](t, rec)
	assert.Equal(t, order.StatusProcessed, o.Status)
	assert.InDelta(t, 9.00, o.Total, 1e-9)

	rose, err := ts.store.CheckStock("Rose")
	require.NoError(t, err)
	assert.Equal(t, 7, rose)

	rec = ts.do(t, http.MethodGet, "/orders/"+o.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "John", decode[order.Order](t, rec).Customer)

	require.Len(t, ts.notifier.orders, 1)
	assert.Equal(t, o.ID, ts.notifier.orders[0].ID)
}

func TestCreateOrderFailedRollsBack(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/orders", createOrderRequest{
		Customer: "Jane",
		Items:    []orderItemRequest{{Flower: "Rose", Quantity: 3}, {Flower: "Tulip", Quantity: 8}},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	o := decode[order.Order](t, rec)
	assert.Equal(t, order.StatusFailed, o.Status)
	assert.Contains(t, o.Error, "Insufficient stock for Tulip")

	for name, want := range map[string]int{"Rose": 10, "Tulip": 5} {
		got, err := ts.store.CheckStock(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}

	rec = ts.do(t, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]order.Order](t, rec), 1)
	assert.Len(t, ts.notifier.orders, 1)

	rec = ts.do(t, http.MethodGet, "/transactions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	txs := decode[[]inventory.Transaction](t, rec)
	require.Len(t, txs, 5)
	assert.Equal(t, inventory.StatusFailed, txs[3].Status)
	assert.Equal(t, inventory.TxAdd, txs[4].Type)
}

func TestCreateOrderRejected(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		req  createOrderRequest
	}{
		{"no customer", createOrderRequest{Items: []orderItemRequest{{Flower: "Rose", Quantity: 1}}}},
		{"unknown flower", createOrderRequest{Customer: "Jane", Items: []orderItemRequest{{Flower: "Orchid", Quantity: 1}}}},
		{"zero quantity", createOrderRequest{Customer: "Jane", Items: []orderItemRequest{{Flower: "Rose", Quantity: 0}}}},
		{"empty order", createOrderRequest{Customer: "Jane"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/orders", tt.req)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, shop.CodeInvalidOrder, decode[errorResponse](t, rec).Code)
		})
	}

	list := decode[[]order.Order](t, ts.do(t, http.MethodGet, "/orders", nil))
	assert.Empty(t, list)
	assert.Empty(t, ts.notifier.orders)
}

func TestDeleteOrder(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/orders", createOrderRequest{Customer: "John", Items: []orderItemRequest{{Flower: "Rose", Quantity: 1}}})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[order.Order](t, rec).ID

	assert.Equal(t, http.StatusNoContent, ts.do(t, http.MethodDelete, "/orders/"+id, nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/orders/"+id, nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodDelete, "/orders/"+id, nil).Code)
}

func TestDailyReport(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/reports/daily?threshold=6", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	d := decode[report.Daily](t, rec)
	assert.Equal(t, "2026-10-17", d.Date)
	require.Len(t, d.LowStock, 1)
	assert.Equal(t, "Tulip", d.LowStock[0].Flower)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/reports/daily?threshold=-1", nil).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/reports/daily?threshold=many", nil).Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&shop.InvalidFlowerDataError{Code: shop.CodeEmptyName}, http.StatusBadRequest},
		{&shop.InvalidOrderError{Reason: "x", Err: &shop.OutOfStockError{}}, http.StatusBadRequest},
		{&shop.NotFoundError{Flower: "Orchid"}, http.StatusNotFound},
		{fmt.Errorf("get: %w", order.ErrNotFound), http.StatusNotFound},
		{&shop.OutOfStockError{Flower: "Rose"}, http.StatusConflict},
		{&shop.ExpiredFlowerError{Flower: "Lily"}, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestSwaggerDoc(t *testing.T) {
	ts := newTestServer(t)
	ts.cookie = nil

	rec := ts.do(t, http.MethodGet, "/swagger/doc.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Info  struct{ Title string } `json:"info"`
		Paths map[string]any         `json:"paths"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&doc))
	assert.Equal(t, "Flowershop API", doc.Info.Title)
	assert.Contains(t, doc.Paths, "/orders/{id}")
	assert.Contains(t, doc.Paths, "/reports/daily")
}

type fakeHistory struct {
	txs []inventory.Transaction
	err error
}

func (f fakeHistory) List(context.Context) ([]inventory.Transaction, error) {
	return f.txs, f.err
}

func TestTransactionHistory(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/transactions/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]inventory.Transaction](t, rec), 2)

	persisted := []inventory.Transaction{{Type: inventory.TxRemove, Flower: "Rose", Quantity: 1, Status: inventory.StatusCompleted}}
	ts.history = fakeHistory{txs: persisted}
	rec = ts.do(t, http.MethodGet, "/transactions/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]inventory.Transaction](t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, "Rose", got[0].Flower)

	ts.history = fakeHistory{err: errors.New("db down")}
	assert.Equal(t, http.StatusInternalServerError, ts.do(t, http.MethodGet, "/transactions/history", nil).Code)
}
