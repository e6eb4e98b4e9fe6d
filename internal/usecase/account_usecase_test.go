package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/usecase"
	"github.com/iho/dealerledger/internal/usecase/mocks"
)

func TestAccountUseCase_CreateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := mocks.NewMockAccountRepository()
		uc := usecase.NewAccountUseCase(repo, mocks.NewMockIDGenerator())

		account, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{
			Name:           "Cash Desk",
			OpeningBalance: decimal.NewFromInt(5000),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if account.ID == "" {
			t.Error("expected a generated ID")
		}

		if !account.Balance.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("expected balance 5000, got %s", account.Balance)
		}

		if !account.OpeningBalance.Equal(account.Balance) {
			t.Error("expected opening balance to equal initial balance")
		}

		if !account.Active {
			t.Error("expected new account to be active")
		}

		stored, err := repo.GetByID(ctx, account.ID)
		if err != nil {
			t.Fatalf("account not persisted: %v", err)
		}

		if stored.Name != "Cash Desk" {
			t.Errorf("expected name Cash Desk, got %s", stored.Name)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		uc := usecase.NewAccountUseCase(mocks.NewMockAccountRepository(), mocks.NewMockIDGenerator())

		for _, name := range []string{"", "  ", strings.Repeat("x", 300)} {
			if _, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{Name: name}); err == nil {
				t.Errorf("expected error for name %q", name)
			}
		}
	})
}

func TestAccountUseCase_GetAccount(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(repo, mocks.NewMockIDGenerator())

	created, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{Name: "Bank"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := uc.GetAccount(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.ID != created.ID {
		t.Errorf("expected ID %s, got %s", created.ID, got.ID)
	}

	if _, err := uc.GetAccount(ctx, "missing"); err != domain.ErrAccountNotFound {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(repo, mocks.NewMockIDGenerator())

	for _, name := range []string{"Cash", "Bank", "Safe"} {
		if _, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	var gotLimit int
	repo.ListFunc = func(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
		gotLimit = limit
		return nil, nil
	}

	if _, err := uc.ListAccounts(ctx, usecase.ListAccountsInput{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotLimit != 20 {
		t.Errorf("expected default limit 20, got %d", gotLimit)
	}

	if _, err := uc.ListAccounts(ctx, usecase.ListAccountsInput{Limit: 500}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotLimit != 100 {
		t.Errorf("expected limit capped at 100, got %d", gotLimit)
	}
}
