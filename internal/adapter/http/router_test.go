package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/adapter/http/handler"
	apimiddleware "github.com/iho/dealerledger/internal/adapter/http/middleware"
	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"name":"Cash","opening_balance":"500"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/accounts/",
		"GET /api/v1/accounts/",
		"GET /api/v1/accounts/{id}",
		"GET /api/v1/accounts/{id}/reconciliation",
		"POST /api/v1/movements/",
		"PUT /api/v1/movements/{id}",
		"DELETE /api/v1/movements/{id}",
		"POST /api/v1/movements/{id}/reverse",
		"GET /api/v1/movements/{id}/installments",
		"POST /api/v1/movements/{id}/installments/{sequence}/settle",
		"POST /api/v1/schedule/preview",
		"POST /api/v1/allocations/preview",
		"GET /api/v1/reconciliation",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	accountHandler := handler.NewAccountHandler(&stubAccountService{}, &stubReconciliationService{})
	movementHandler := handler.NewMovementHandler(&stubMovementService{}, &stubInstallmentService{})
	scheduleHandler := handler.NewScheduleHandler(usecase.NewScheduleUseCase())
	allocationHandler := handler.NewAllocationHandler(usecase.NewAllocationUseCase())

	cfg := RouterConfig{
		HealthHandler:     &handler.HealthHandler{},
		AccountHandler:    accountHandler,
		MovementHandler:   movementHandler,
		ScheduleHandler:   scheduleHandler,
		AllocationHandler: allocationHandler,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubAccountService struct{}

func (stubAccountService) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return &domain.Account{ID: "acc"}, nil
}

func (stubAccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return &domain.Account{ID: id}, nil
}

func (stubAccountService) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return []*domain.Account{}, nil
}

type stubReconciliationService struct{}

func (stubReconciliationService) ReconcileAccount(ctx context.Context, accountID string) (*usecase.ReconciliationResult, error) {
	return &usecase.ReconciliationResult{AccountID: accountID, IsReconciled: true}, nil
}

func (stubReconciliationService) GenerateReconciliationReport(ctx context.Context) (*usecase.ReconciliationReport, error) {
	return &usecase.ReconciliationReport{}, nil
}

type stubMovementService struct{}

func (stubMovementService) ConfirmMovement(ctx context.Context, input usecase.ConfirmMovementInput) (*domain.Movement, error) {
	return &domain.Movement{ID: "mov"}, nil
}

func (stubMovementService) GetMovement(ctx context.Context, id string) (*domain.Movement, error) {
	return &domain.Movement{ID: id}, nil
}

func (stubMovementService) ListMovements(ctx context.Context, input usecase.ListMovementsInput) ([]*domain.Movement, error) {
	return []*domain.Movement{}, nil
}

func (stubMovementService) ReverseMovement(ctx context.Context, movementID string) (*domain.Movement, error) {
	return &domain.Movement{ID: movementID, Status: domain.MovementStatusReversed}, nil
}

func (stubMovementService) DeleteMovement(ctx context.Context, movementID string) error {
	return nil
}

func (stubMovementService) EditMovement(ctx context.Context, movementID string, input usecase.ConfirmMovementInput) (*domain.Movement, error) {
	return &domain.Movement{ID: "mov-new"}, nil
}

func (stubMovementService) SettleInstallment(ctx context.Context, input usecase.SettleInstallmentInput) (*domain.Installment, error) {
	return &domain.Installment{MovementID: input.MovementID, Sequence: input.Sequence, Amount: decimal.Zero}, nil
}

type stubInstallmentService struct{}

func (stubInstallmentService) ListByMovement(ctx context.Context, movementID string) ([]*domain.Installment, error) {
	return []*domain.Installment{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
