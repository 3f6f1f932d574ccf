package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"school-store/internal/cart"
	"school-store/internal/handlers"
	"school-store/internal/hashing"
	"school-store/internal/models"
	"school-store/internal/router"
	"school-store/internal/service"
	"school-store/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memStore — хранилище сессий в памяти вместо redis
type memStore struct {
	mu     sync.Mutex
	states map[string]*session.State
}

func newMemStore() *memStore {
	return &memStore{states: make(map[string]*session.State)}
}

func (m *memStore) Get(ctx context.Context, sid string) (*session.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.states[sid]; ok {
		cp := *st
		return &cp, nil
	}
	return session.NewState(), nil
}

func (m *memStore) Save(ctx context.Context, sid string, st *session.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *st
	m.states[sid] = &cp
	return nil
}

func (m *memStore) Destroy(ctx context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, sid)
	return nil
}

// MockCatalog
type MockCatalog struct {
	ListActiveFunc func(ctx context.Context) ([]models.Product, error)
	ListAllFunc    func(ctx context.Context) ([]models.Product, error)
	GetFunc        func(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

func (m *MockCatalog) ListActive(ctx context.Context) ([]models.Product, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *MockCatalog) ListAll(ctx context.Context) ([]models.Product, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockCatalog) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, service.ErrProductNotFound
}

func (m *MockCatalog) Create(ctx context.Context, in service.CreateProductInput) (*models.Product, error) {
	return &models.Product{ID: uuid.New(), Name: in.Name, PriceCents: in.PriceCents}, nil
}

func (m *MockCatalog) Update(ctx context.Context, id uuid.UUID, in service.UpdateProductInput) error {
	return nil
}

func (m *MockCatalog) ToggleActive(ctx context.Context, id uuid.UUID) error { return nil }

// MockCarts
type MockCarts struct {
	AddToCartFunc func(ctx context.Context, c *cart.Cart, productID uuid.UUID) (int, error)
}

func (m *MockCarts) AddToCart(ctx context.Context, c *cart.Cart, productID uuid.UUID) (int, error) {
	if m.AddToCartFunc != nil {
		return m.AddToCartFunc(ctx, c, productID)
	}
	return 0, service.ErrProductNotFound
}

func (m *MockCarts) SetQuantity(c *cart.Cart, productID uuid.UUID, qty int) {
	c.SetQuantity(productID, qty)
}

func (m *MockCarts) Clear(c *cart.Cart) { c.Clear() }

// MockOrders
type MockOrders struct {
	PlaceOrderFunc func(ctx context.Context, c *cart.Cart, in service.CheckoutInput) (*models.Order, error)
	GetOrderFunc   func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	CountsFunc     func(ctx context.Context) (service.DashboardCounts, error)
}

func (m *MockOrders) PlaceOrder(ctx context.Context, c *cart.Cart, in service.CheckoutInput) (*models.Order, error) {
	if m.PlaceOrderFunc != nil {
		return m.PlaceOrderFunc(ctx, c, in)
	}
	return nil, service.ErrCartEmpty
}

func (m *MockOrders) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.GetOrderFunc != nil {
		return m.GetOrderFunc(ctx, id)
	}
	return nil, service.ErrOrderNotFound
}

func (m *MockOrders) ListOrders(ctx context.Context) ([]models.Order, int64, error) {
	return nil, 0, nil
}

func (m *MockOrders) TogglePaid(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return nil, service.ErrOrderNotFound
}

func (m *MockOrders) MarkCancelled(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return nil, service.ErrOrderNotFound
}

func (m *MockOrders) Counts(ctx context.Context) (service.DashboardCounts, error) {
	if m.CountsFunc != nil {
		return m.CountsFunc(ctx)
	}
	return service.DashboardCounts{}, nil
}

type testEnv struct {
	engine   *gin.Engine
	sessions *memStore
}

func newTestEnv(catalog *MockCatalog, carts *MockCarts, orders *MockOrders, adminHash string, paymentBase string) *testEnv {
	log := zap.NewNop()
	sessions := newMemStore()

	store := handlers.NewStoreHandler(catalog, carts, orders, service.NewPaymentRedirect(paymentBase), sessions, log)
	admin := handlers.NewAdminHandler(catalog, orders, service.NewAdminAuth("admin", adminHash), sessions, log)

	engine := router.Router(store, admin, sessions, 30*24*time.Hour, log)
	return &testEnv{engine: engine, sessions: sessions}
}

func sidFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "sid" {
			return ck.Value
		}
	}
	t.Fatal("sid cookie not issued")
	return ""
}

func TestCartAdd_JSONContract(t *testing.T) {
	pid := uuid.New()
	carts := &MockCarts{
		AddToCartFunc: func(ctx context.Context, c *cart.Cart, productID uuid.UUID) (int, error) {
			if productID != pid {
				return 0, service.ErrProductNotFound
			}
			return c.Add(productID, "Hoodie", 1800, ""), nil
		},
	}
	env := newTestEnv(&MockCatalog{}, carts, &MockOrders{}, "", "")

	// Известный товар: {ok:true, count}
	body := strings.NewReader(`{"id":"` + pid.String() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/cart/add", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		OK    bool `json:"ok"`
		Count int  `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.OK || resp.Count != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	// Мутация дошла до хранилища сессий
	sid := sidFrom(t, w)
	st, _ := env.sessions.Get(context.Background(), sid)
	if st.Cart.Count() != 1 {
		t.Fatalf("cart not persisted to session store: %+v", st.Cart)
	}

	// Неизвестный товар: 404 {ok:false}
	body = strings.NewReader(`{"id":"` + uuid.NewString() + `"}`)
	req = httptest.NewRequest(http.MethodPost, "/cart/add", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	w = httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.OK {
		t.Fatalf("expected ok=false: %+v", resp)
	}
}

func TestCartAdd_FormRedirects(t *testing.T) {
	pid := uuid.New()
	carts := &MockCarts{
		AddToCartFunc: func(ctx context.Context, c *cart.Cart, productID uuid.UUID) (int, error) {
			if productID != pid {
				return 0, service.ErrProductNotFound
			}
			return c.Add(productID, "Hoodie", 1800, ""), nil
		},
	}
	env := newTestEnv(&MockCatalog{}, carts, &MockOrders{}, "", "")

	form := url.Values{"id": {pid.String()}}
	req := httptest.NewRequest(http.MethodPost, "/cart/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/cart" {
		t.Fatalf("expected 302 to /cart, got %d %s", w.Code, w.Header().Get("Location"))
	}

	// Промах без JSON — обратно на витрину
	form = url.Values{"id": {uuid.NewString()}}
	req = httptest.NewRequest(http.MethodPost, "/cart/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("expected 302 to /, got %d %s", w.Code, w.Header().Get("Location"))
	}
}

func TestAdminGate_RedirectsToLogin(t *testing.T) {
	env := newTestEnv(&MockCatalog{}, &MockCarts{}, &MockOrders{}, "", "")

	for _, path := range []string{"/admin", "/admin/items", "/admin/orders"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		env.engine.ServeHTTP(w, req)

		if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/login" {
			t.Fatalf("%s: expected 302 to /admin/login, got %d %s", path, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestAdminLogin_GrantsDashboardAccess(t *testing.T) {
	hash, err := hashing.NewBcrypt(4).Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	orders := &MockOrders{
		CountsFunc: func(ctx context.Context) (service.DashboardCounts, error) {
			return service.DashboardCounts{Products: 4, Orders: 9, UnpaidOrders: 2}, nil
		},
	}
	env := newTestEnv(&MockCatalog{}, &MockCarts{}, orders, hash, "")

	// Неверный пароль — 401
	form := url.Values{"username": {"admin"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	// Верные креды — редирект в админку, сессия получает право
	form = url.Values{"username": {"admin"}, "password": {"s3cret"}}
	req = httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin" {
		t.Fatalf("expected 302 to /admin, got %d %s", w.Code, w.Header().Get("Location"))
	}
	sid := sidFrom(t, w)

	// С той же кукой дашборд открывается
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	w = httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 dashboard, got %d: %s", w.Code, w.Body.String())
	}
	var dash struct {
		ProductCount int64 `json:"product_count"`
		OrderCount   int64 `json:"order_count"`
		UnpaidCount  int64 `json:"unpaid_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &dash); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if dash.ProductCount != 4 || dash.OrderCount != 9 || dash.UnpaidCount != 2 {
		t.Fatalf("dashboard mismatch: %+v", dash)
	}

	// Logout гасит сессию: админка снова закрыта
	req = httptest.NewRequest(http.MethodGet, "/admin/logout", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	w = httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("logout: expected 302 to /, got %d %s", w.Code, w.Header().Get("Location"))
	}

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	w = httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/login" {
		t.Fatalf("after logout: expected 302 to /admin/login, got %d", w.Code)
	}
}

func TestCheckout_CardHandoffRedirect(t *testing.T) {
	pid := uuid.New()
	carts := &MockCarts{
		AddToCartFunc: func(ctx context.Context, c *cart.Cart, productID uuid.UUID) (int, error) {
			return c.Add(productID, "Hoodie", 1800, ""), nil
		},
	}
	orderID := uuid.New()
	orders := &MockOrders{
		PlaceOrderFunc: func(ctx context.Context, c *cart.Cart, in service.CheckoutInput) (*models.Order, error) {
			c.Clear()
			return &models.Order{
				ID:            orderID,
				PaymentMethod: models.PaymentMethodCard,
				Status:        models.OrderStatusUnpaid,
				TotalCents:    1800,
			}, nil
		},
	}
	env := newTestEnv(&MockCatalog{}, carts, orders, "", "https://pay.example.com/checkout")

	// Кладём товар в корзину, запоминаем sid
	form := url.Values{"id": {pid.String()}}
	req := httptest.NewRequest(http.MethodPost, "/cart/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	sid := sidFrom(t, w)

	// Оплата картой — передача на платёжную страницу с суммой
	form = url.Values{
		"customer_name":  {"Aisha"},
		"customer_phone": {"0501234567"},
		"customer_class": {"9B"},
		"payment_method": {"card"},
	}
	req = httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	w = httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "https://pay.example.com/checkout?amount=18.00" {
		t.Fatalf("unexpected handoff location: %s", loc)
	}

	// Корзина после заказа пуста
	st, _ := env.sessions.Get(context.Background(), sid)
	if !st.Cart.IsEmpty() {
		t.Fatalf("cart must be empty after checkout: %+v", st.Cart)
	}
}

func TestOrderPlaced_UnknownOrder(t *testing.T) {
	env := newTestEnv(&MockCatalog{}, &MockCarts{}, &MockOrders{}, "", "")

	// JSON-клиент получает 404 с кодом ошибки
	req := httptest.NewRequest(http.MethodGet, "/order/placed/"+uuid.NewString(), nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != "not_found" {
		t.Fatalf("expected not_found code, got %q", resp.Code)
	}

	// Браузерная навигация — обратно на витрину
	req = httptest.NewRequest(http.MethodGet, "/order/placed/"+uuid.NewString(), nil)
	w = httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("expected 302 to /, got %d %s", w.Code, w.Header().Get("Location"))
	}
}

func TestCheckout_EmptyCartRedirectsHome(t *testing.T) {
	env := newTestEnv(&MockCatalog{}, &MockCarts{}, &MockOrders{}, "", "")

	form := url.Values{
		"customer_name":  {"Aisha"},
		"customer_phone": {"0501234567"},
		"customer_class": {"9B"},
		"payment_method": {"cash"},
	}
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("expected 302 to /, got %d %s", w.Code, w.Header().Get("Location"))
	}
}
