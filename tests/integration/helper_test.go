package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	adaptershttp "github.com/iho/dealerledger/internal/adapter/http"
	"github.com/iho/dealerledger/internal/adapter/http/handler"
	"github.com/iho/dealerledger/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/dealerledger/internal/adapter/repository/redis"
	"github.com/iho/dealerledger/internal/infrastructure/metrics"
	infraredis "github.com/iho/dealerledger/internal/infrastructure/redis"
	"github.com/iho/dealerledger/internal/usecase"
	"github.com/iho/dealerledger/tests/testutil"
)

var appMetrics = metrics.New()

type testServer struct {
	DB     *testutil.TestDB
	Router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)

	pool := testDB.Pool
	accountRepo := postgres.NewAccountRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	installmentRepo := postgres.NewInstallmentRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	txManager := postgres.NewTxManager(pool)
	idGen := postgres.NewULIDGenerator()

	scheduleUC := usecase.NewScheduleUseCase()
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen)
	movementUC := usecase.NewMovementUseCase(txManager, accountRepo, movementRepo, installmentRepo, outboxRepo, auditRepo, scheduleUC, idGen, appMetrics)
	installmentUC := usecase.NewInstallmentUseCase(installmentRepo)
	allocationUC := usecase.NewAllocationUseCase()
	reconciliationUC := usecase.NewReconciliationUseCase(accountRepo, installmentRepo)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:    handler.NewAccountHandler(accountUC, reconciliationUC),
		MovementHandler:   handler.NewMovementHandler(movementUC, installmentUC),
		ScheduleHandler:   handler.NewScheduleHandler(scheduleUC),
		AllocationHandler: handler.NewAllocationHandler(allocationUC),
		HealthHandler:     handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:  idempotencyStore,
	})

	return &testServer{DB: testDB, Router: router}
}

func (s *testServer) do(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %s: %v", rec.Body.String(), err)
	}
	return out
}
