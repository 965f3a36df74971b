package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"shop_service/internal/domain"
	"shop_service/internal/middleware"
	"shop_service/internal/session"
	"shop_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// memStorage is an in-memory domain.Storage. calls counts every gateway
// invocation so tests can assert that rejected requests never reach it.
type memStorage struct {
	mu       sync.Mutex
	nextID   map[string]int
	users    map[int]domain.User
	products map[int]domain.Product
	orders   map[int]domain.Order
	reviews  map[int]domain.Review
	calls    int
	pingErr  error
}

var _ domain.Storage = (*memStorage)(nil)

func newMemStorage() *memStorage {
	return &memStorage{
		nextID:   map[string]int{},
		users:    map[int]domain.User{},
		products: map[int]domain.Product{},
		orders:   map[int]domain.Order{},
		reviews:  map[int]domain.Review{},
	}
}

func (m *memStorage) id(table string) int {
	m.nextID[table]++
	return m.nextID[table]
}

func (m *memStorage) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *memStorage) Ping(context.Context) error { return m.pingErr }

func (m *memStorage) GetUser(_ context.Context, id int) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user with id %d %w", id, domain.ErrNotFound)
	}
	return &u, nil
}

func (m *memStorage) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %s %w", username, domain.ErrNotFound)
}

func (m *memStorage) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	for _, u := range m.users {
		if u.Username == user.Username {
			return nil, fmt.Errorf("user with username '%s' %w", user.Username, domain.ErrConflict)
		}
	}
	created := *user
	created.ID = m.id("users")
	m.users[created.ID] = created
	return &created, nil
}

func (m *memStorage) GetProducts(context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	products := []domain.Product{}
	for _, p := range m.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (m *memStorage) GetProduct(_ context.Context, id int) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	p, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("product with id %d %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func (m *memStorage) CreateProduct(_ context.Context, product *domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	created := *product
	created.ID = m.id("products")
	m.products[created.ID] = created
	return &created, nil
}

func (m *memStorage) UpdateProduct(_ context.Context, id int, u domain.ProductUpdate) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	p, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("product with id %d %w", id, domain.ErrNotFound)
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	m.products[id] = p
	return &p, nil
}

func (m *memStorage) DeleteProduct(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, ok := m.products[id]; !ok {
		return fmt.Errorf("product with id %d %w", id, domain.ErrNotFound)
	}
	delete(m.products, id)
	return nil
}

func (m *memStorage) sortedOrders(keep func(domain.Order) bool) []domain.Order {
	orders := []domain.Order{}
	for _, o := range m.orders {
		if keep(o) {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders
}

func (m *memStorage) GetOrders(context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.sortedOrders(func(domain.Order) bool { return true }), nil
}

func (m *memStorage) GetUserOrders(_ context.Context, userID int) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.sortedOrders(func(o domain.Order) bool { return o.UserID == userID }), nil
}

func (m *memStorage) CreateOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	created := *order
	created.ID = m.id("orders")
	created.CreatedAt = time.Now().UTC()
	m.orders[created.ID] = created
	return &created, nil
}

func (m *memStorage) UpdateOrderStatus(_ context.Context, id int, status domain.OrderStatus) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	o, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with id %d %w", id, domain.ErrNotFound)
	}
	o.Status = status
	m.orders[id] = o
	return &o, nil
}

func (m *memStorage) GetProductReviews(_ context.Context, productID int) ([]domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	reviews := []domain.Review{}
	for _, r := range m.reviews {
		if r.ProductID == productID {
			reviews = append(reviews, r)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID < reviews[j].ID })
	return reviews, nil
}

func (m *memStorage) CreateReview(_ context.Context, review *domain.Review) (*domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, ok := m.products[review.ProductID]; !ok {
		return nil, fmt.Errorf("product with id %d %w", review.ProductID, domain.ErrNotFound)
	}
	created := *review
	created.ID = m.id("reviews")
	created.CreatedAt = time.Now().UTC()
	m.reviews[created.ID] = created
	return &created, nil
}

type testServer struct {
	router   *gin.Engine
	storage  *memStorage
	sessions *session.MemoryStore
}

const cookieName = "shop.sid"

func newTestServer(t *testing.T, pick Picker) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	storage := newMemStorage()
	sessions := session.NewMemoryStore(logger)
	router := NewRouter(RouterDeps{
		Storage:  storage,
		Auth:     usecase.NewAuthUseCase(storage, logger),
		Sessions: sessions,
		Session:  middleware.SessionConfig{CookieName: cookieName, TTL: time.Hour},
		Picker:   pick,
		Log:      logger,
	})
	return &testServer{router: router, storage: storage, sessions: sessions}
}

// loginAs seeds a user and a live session for it, bypassing password checks.
func (s *testServer) loginAs(t *testing.T, username string, admin bool) (*domain.User, *http.Cookie) {
	t.Helper()
	user, err := s.storage.CreateUser(context.Background(), &domain.User{Username: username, Password: "x", IsAdmin: admin})
	require.NoError(t, err)
	sess := session.New(user.ID, time.Hour, time.Now())
	require.NoError(t, s.sessions.Save(context.Background(), sess))
	return user, &http.Cookie{Name: cookieName, Value: sess.ID}
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
