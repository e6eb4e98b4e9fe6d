package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/adapter/http/dto"
)

func TestSettleInstallment(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	srv := newTestServer(t)

	t.Run("settles a pending receivable installment", func(t *testing.T) {
		srv.DB.TruncateAll(ctx)

		bank := srv.DB.CreateTestAccount(ctx, "bank")

		rec := srv.do(t, http.MethodPost, "/api/v1/movements/", dto.ConfirmMovementRequest{
			Kind:     "receivable",
			Amount:   decimal.RequireFromString("9000"),
			Schedule: dto.ScheduleRequest{DayOffsets: []int{30, 60, 90}},
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		movement := decodeJSON[dto.MovementResponse](t, rec)

		settleRec := srv.do(t, http.MethodPost,
			"/api/v1/movements/"+movement.ID+"/installments/2/settle",
			dto.SettleInstallmentRequest{AccountID: &bank.ID})
		if settleRec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", settleRec.Code, settleRec.Body.String())
		}

		installment := decodeJSON[dto.InstallmentResponse](t, settleRec)
		if !installment.Applied || installment.Sequence != 2 {
			t.Fatalf("unexpected installment: %+v", installment)
		}

		bankAfter := decodeJSON[dto.AccountResponse](t, srv.do(t, http.MethodGet, "/api/v1/accounts/"+bank.ID, nil))
		if !bankAfter.Balance.Equal(decimal.NewFromInt(3000)) {
			t.Fatalf("bank balance = %s, want 3000", bankAfter.Balance)
		}
	})

	t.Run("double settlement rejected", func(t *testing.T) {
		srv.DB.TruncateAll(ctx)

		bank := srv.DB.CreateTestAccount(ctx, "bank")

		rec := srv.do(t, http.MethodPost, "/api/v1/movements/", dto.ConfirmMovementRequest{
			Kind:     "receivable",
			Amount:   decimal.RequireFromString("6000"),
			Schedule: dto.ScheduleRequest{DayOffsets: []int{30, 60}},
		})
		movement := decodeJSON[dto.MovementResponse](t, rec)

		path := "/api/v1/movements/" + movement.ID + "/installments/1/settle"
		first := srv.do(t, http.MethodPost, path, dto.SettleInstallmentRequest{AccountID: &bank.ID})
		if first.Code != http.StatusOK {
			t.Fatalf("first settlement failed: %d %s", first.Code, first.Body.String())
		}

		second := srv.do(t, http.MethodPost, path, dto.SettleInstallmentRequest{AccountID: &bank.ID})
		if second.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", second.Code, second.Body.String())
		}

		bankAfter := decodeJSON[dto.AccountResponse](t, srv.do(t, http.MethodGet, "/api/v1/accounts/"+bank.ID, nil))
		if !bankAfter.Balance.Equal(decimal.NewFromInt(3000)) {
			t.Fatalf("bank balance = %s, want 3000 after retry", bankAfter.Balance)
		}
	})

	t.Run("settlement without account rejected", func(t *testing.T) {
		srv.DB.TruncateAll(ctx)

		rec := srv.do(t, http.MethodPost, "/api/v1/movements/", dto.ConfirmMovementRequest{
			Kind:     "receivable",
			Amount:   decimal.RequireFromString("1000"),
			Schedule: dto.ScheduleRequest{DayOffsets: []int{30}},
		})
		movement := decodeJSON[dto.MovementResponse](t, rec)

		settleRec := srv.do(t, http.MethodPost,
			"/api/v1/movements/"+movement.ID+"/installments/1/settle", nil)
		if settleRec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", settleRec.Code, settleRec.Body.String())
		}
	})
}
