package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/adapter/http/dto"
	"github.com/iho/dealerledger/internal/domain"
)

func countOutboxEvents(ctx context.Context, t *testing.T, srv *testServer, aggregateID, eventType string) int {
	t.Helper()

	var count int
	err := srv.DB.Pool.QueryRow(ctx,
		`SELECT count(*) FROM outbox_events WHERE aggregate_id = $1 AND event_type = $2 AND NOT published`,
		aggregateID, eventType,
	).Scan(&count)
	if err != nil {
		t.Fatalf("count outbox events: %v", err)
	}

	return count
}

func TestOutboxEvents(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	srv := newTestServer(t)

	t.Run("confirm writes an unpublished event", func(t *testing.T) {
		srv.DB.TruncateAll(ctx)

		origin := srv.DB.CreateTestAccountWithBalance(ctx, "cash", decimal.NewFromInt(1000))
		dest := srv.DB.CreateTestAccount(ctx, "bank")

		rec := srv.do(t, http.MethodPost, "/api/v1/movements/", dto.ConfirmMovementRequest{
			Kind:                 "transfer",
			OriginAccountID:      &origin.ID,
			DestinationAccountID: &dest.ID,
			Amount:               decimal.RequireFromString("250"),
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		movement := decodeJSON[dto.MovementResponse](t, rec)

		if got := countOutboxEvents(ctx, t, srv, movement.ID, domain.EventTypeMovementConfirmed); got != 1 {
			t.Fatalf("expected 1 confirmed event, got %d", got)
		}
	})

	t.Run("reverse writes a second event", func(t *testing.T) {
		srv.DB.TruncateAll(ctx)

		origin := srv.DB.CreateTestAccountWithBalance(ctx, "cash", decimal.NewFromInt(1000))
		dest := srv.DB.CreateTestAccount(ctx, "bank")

		rec := srv.do(t, http.MethodPost, "/api/v1/movements/", dto.ConfirmMovementRequest{
			Kind:                 "transfer",
			OriginAccountID:      &origin.ID,
			DestinationAccountID: &dest.ID,
			Amount:               decimal.RequireFromString("100"),
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		movement := decodeJSON[dto.MovementResponse](t, rec)

		rec = srv.do(t, http.MethodPost, "/api/v1/movements/"+movement.ID+"/reverse", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		if got := countOutboxEvents(ctx, t, srv, movement.ID, domain.EventTypeMovementReversed); got != 1 {
			t.Fatalf("expected 1 reversed event, got %d", got)
		}
	})
}
