package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/adapter/http/dto"
)

func TestReverseMovement(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	srv := newTestServer(t)

	t.Run("reversal restores balances exactly", func(t *testing.T) {
		srv.DB.TruncateAll(ctx)

		origin := srv.DB.CreateTestAccountWithBalance(ctx, "cash", decimal.NewFromInt(1000))
		dest := srv.DB.CreateTestAccount(ctx, "bank")

		rec := srv.do(t, http.MethodPost, "/api/v1/movements/", dto.ConfirmMovementRequest{
			Kind:                 "transfer",
			OriginAccountID:      &origin.ID,
			DestinationAccountID: &dest.ID,
			Amount:               decimal.RequireFromString("333.33"),
		})
		movement := decodeJSON[dto.MovementResponse](t, rec)

		reverseRec := srv.do(t, http.MethodPost, "/api/v1/movements/"+movement.ID+"/reverse", nil)
		if reverseRec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", reverseRec.Code, reverseRec.Body.String())
		}

		reversed := decodeJSON[dto.MovementResponse](t, reverseRec)
		if reversed.Status != "reversed" {
			t.Fatalf("expected reversed status, got %s", reversed.Status)
		}

		originAfter := decodeJSON[dto.AccountResponse](t, srv.do(t, http.MethodGet, "/api/v1/accounts/"+origin.ID, nil))
		if !originAfter.Balance.Equal(decimal.NewFromInt(1000)) {
			t.Fatalf("origin balance = %s, want 1000", originAfter.Balance)
		}

		destAfter := decodeJSON[dto.AccountResponse](t, srv.do(t, http.MethodGet, "/api/v1/accounts/"+dest.ID, nil))
		if !destAfter.Balance.Equal(decimal.Zero) {
			t.Fatalf("dest balance = %s, want 0", destAfter.Balance)
		}
	})

	t.Run("double reversal rejected", func(t *testing.T) {
		srv.DB.TruncateAll(ctx)

		origin := srv.DB.CreateTestAccountWithBalance(ctx, "cash", decimal.NewFromInt(500))
		dest := srv.DB.CreateTestAccount(ctx, "bank")

		rec := srv.do(t, http.MethodPost, "/api/v1/movements/", dto.ConfirmMovementRequest{
			Kind:                 "transfer",
			OriginAccountID:      &origin.ID,
			DestinationAccountID: &dest.ID,
			Amount:               decimal.RequireFromString("100"),
		})
		movement := decodeJSON[dto.MovementResponse](t, rec)

		path := "/api/v1/movements/" + movement.ID + "/reverse"
		if first := srv.do(t, http.MethodPost, path, nil); first.Code != http.StatusOK {
			t.Fatalf("first reversal failed: %d", first.Code)
		}
		if second := srv.do(t, http.MethodPost, path, nil); second.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", second.Code)
		}
	})

	t.Run("delete removes movement and restores balances", func(t *testing.T) {
		srv.DB.TruncateAll(ctx)

		origin := srv.DB.CreateTestAccountWithBalance(ctx, "cash", decimal.NewFromInt(500))
		dest := srv.DB.CreateTestAccount(ctx, "bank")

		rec := srv.do(t, http.MethodPost, "/api/v1/movements/", dto.ConfirmMovementRequest{
			Kind:                 "transfer",
			OriginAccountID:      &origin.ID,
			DestinationAccountID: &dest.ID,
			Amount:               decimal.RequireFromString("200"),
		})
		movement := decodeJSON[dto.MovementResponse](t, rec)

		deleteRec := srv.do(t, http.MethodDelete, "/api/v1/movements/"+movement.ID, nil)
		if deleteRec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", deleteRec.Code)
		}

		getRec := srv.do(t, http.MethodGet, "/api/v1/movements/"+movement.ID, nil)
		if getRec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", getRec.Code)
		}

		originAfter := decodeJSON[dto.AccountResponse](t, srv.do(t, http.MethodGet, "/api/v1/accounts/"+origin.ID, nil))
		if !originAfter.Balance.Equal(decimal.NewFromInt(500)) {
			t.Fatalf("origin balance = %s, want 500", originAfter.Balance)
		}
	})

	t.Run("reconciliation detects tampered balance", func(t *testing.T) {
		srv.DB.TruncateAll(ctx)

		origin := srv.DB.CreateTestAccountWithBalance(ctx, "cash", decimal.NewFromInt(1000))
		dest := srv.DB.CreateTestAccount(ctx, "bank")

		srv.do(t, http.MethodPost, "/api/v1/movements/", dto.ConfirmMovementRequest{
			Kind:                 "transfer",
			OriginAccountID:      &origin.ID,
			DestinationAccountID: &dest.ID,
			Amount:               decimal.RequireFromString("250"),
		})

		reconRec := srv.do(t, http.MethodGet, "/api/v1/accounts/"+origin.ID+"/reconciliation", nil)
		if reconRec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", reconRec.Code, reconRec.Body.String())
		}
		recon := decodeJSON[dto.ReconciliationResponse](t, reconRec)
		if !recon.IsReconciled {
			t.Fatalf("expected reconciled account, got %+v", recon)
		}

		// Corrupt the stored balance behind the ledger's back.
		if _, err := srv.DB.Pool.Exec(ctx, `UPDATE accounts SET balance = balance + 50 WHERE id = $1`, origin.ID); err != nil {
			t.Fatalf("failed to tamper balance: %v", err)
		}

		reconRec = srv.do(t, http.MethodGet, "/api/v1/accounts/"+origin.ID+"/reconciliation", nil)
		recon = decodeJSON[dto.ReconciliationResponse](t, reconRec)
		if recon.IsReconciled {
			t.Fatalf("expected discrepancy, got %+v", recon)
		}
		if !recon.Difference.Equal(decimal.NewFromInt(50)) {
			t.Fatalf("difference = %s, want 50", recon.Difference)
		}
	})
}
