package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/adapter/http/dto"
)

func TestConfirmMovement(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	srv := newTestServer(t)

	t.Run("transfer applies immediately", func(t *testing.T) {
		srv.DB.TruncateAll(ctx)

		origin := srv.DB.CreateTestAccountWithBalance(ctx, "cash", decimal.NewFromInt(1000))
		dest := srv.DB.CreateTestAccount(ctx, "bank")

		rec := srv.do(t, http.MethodPost, "/api/v1/movements/", dto.ConfirmMovementRequest{
			Kind:                 "transfer",
			OriginAccountID:      &origin.ID,
			DestinationAccountID: &dest.ID,
			Amount:               decimal.RequireFromString("300"),
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		movement := decodeJSON[dto.MovementResponse](t, rec)
		if movement.Status != "confirmed" {
			t.Fatalf("expected confirmed, got %s", movement.Status)
		}

		originAfter := decodeJSON[dto.AccountResponse](t, srv.do(t, http.MethodGet, "/api/v1/accounts/"+origin.ID, nil))
		if !originAfter.Balance.Equal(decimal.NewFromInt(700)) {
			t.Fatalf("origin balance = %s, want 700", originAfter.Balance)
		}

		destAfter := decodeJSON[dto.AccountResponse](t, srv.do(t, http.MethodGet, "/api/v1/accounts/"+dest.ID, nil))
		if !destAfter.Balance.Equal(decimal.NewFromInt(300)) {
			t.Fatalf("dest balance = %s, want 300", destAfter.Balance)
		}
	})

	t.Run("installment schedule applies only due installments", func(t *testing.T) {
		srv.DB.TruncateAll(ctx)

		origin := srv.DB.CreateTestAccountWithBalance(ctx, "cash", decimal.NewFromInt(1000))
		dest := srv.DB.CreateTestAccount(ctx, "supplier")

		rec := srv.do(t, http.MethodPost, "/api/v1/movements/", dto.ConfirmMovementRequest{
			Kind:                 "transfer",
			OriginAccountID:      &origin.ID,
			DestinationAccountID: &dest.ID,
			Amount:               decimal.RequireFromString("600"),
			Schedule:             dto.ScheduleRequest{DayOffsets: []int{0, 30, 60}},
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		movement := decodeJSON[dto.MovementResponse](t, rec)

		installments := decodeJSON[[]dto.InstallmentResponse](t,
			srv.do(t, http.MethodGet, "/api/v1/movements/"+movement.ID+"/installments", nil))
		if len(installments) != 3 {
			t.Fatalf("expected 3 installments, got %d", len(installments))
		}
		if !installments[0].Applied {
			t.Fatalf("expected first installment applied")
		}
		if installments[1].Applied || installments[2].Applied {
			t.Fatalf("expected future installments pending")
		}

		originAfter := decodeJSON[dto.AccountResponse](t, srv.do(t, http.MethodGet, "/api/v1/accounts/"+origin.ID, nil))
		if !originAfter.Balance.Equal(decimal.NewFromInt(800)) {
			t.Fatalf("origin balance = %s, want 800", originAfter.Balance)
		}
	})

	t.Run("receivable without destination stays pending", func(t *testing.T) {
		srv.DB.TruncateAll(ctx)

		rec := srv.do(t, http.MethodPost, "/api/v1/movements/", dto.ConfirmMovementRequest{
			Kind:        "receivable",
			Amount:      decimal.RequireFromString("9000"),
			Description: "vehicle sale on credit",
			Schedule:    dto.ScheduleRequest{DayOffsets: []int{30, 60, 90}},
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		movement := decodeJSON[dto.MovementResponse](t, rec)
		installments := decodeJSON[[]dto.InstallmentResponse](t,
			srv.do(t, http.MethodGet, "/api/v1/movements/"+movement.ID+"/installments", nil))
		for _, inst := range installments {
			if inst.Applied {
				t.Fatalf("expected no applied installments, got %+v", inst)
			}
		}
	})

	t.Run("same account rejected", func(t *testing.T) {
		srv.DB.TruncateAll(ctx)

		acc := srv.DB.CreateTestAccountWithBalance(ctx, "cash", decimal.NewFromInt(100))

		rec := srv.do(t, http.MethodPost, "/api/v1/movements/", dto.ConfirmMovementRequest{
			Kind:                 "transfer",
			OriginAccountID:      &acc.ID,
			DestinationAccountID: &acc.ID,
			Amount:               decimal.RequireFromString("10"),
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		srv.DB.TruncateAll(ctx)

		origin := srv.DB.CreateTestAccountWithBalance(ctx, "cash", decimal.NewFromInt(100))
		dest := srv.DB.CreateTestAccount(ctx, "bank")

		rec := srv.do(t, http.MethodPost, "/api/v1/movements/", dto.ConfirmMovementRequest{
			Kind:                 "transfer",
			OriginAccountID:      &origin.ID,
			DestinationAccountID: &dest.ID,
			Amount:               decimal.Zero,
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
