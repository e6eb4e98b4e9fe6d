package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/adapter/http/dto"
	"github.com/iho/dealerledger/internal/usecase"
)

func TestAllocationHandler_Preview(t *testing.T) {
	handler := NewAllocationHandler(usecase.NewAllocationUseCase())

	body, _ := json.Marshal(dto.AllocationPreviewRequest{
		TotalRevenue: decimal.RequireFromString("12000"),
		TotalCost:    decimal.RequireFromString("10000"),
		Shares: []dto.AllocationShareRequest{
			{StakeholderID: "partner-a", Percentage: decimal.RequireFromString("60")},
			{StakeholderID: "partner-b", Percentage: decimal.RequireFromString("40")},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/allocations/preview", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Preview(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp []*dto.AllocationResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp))
	}
	if resp[0].StakeholderID != "partner-a" || !resp[0].Revenue.Equal(decimal.RequireFromString("7200")) {
		t.Fatalf("unexpected first result: %+v", resp[0])
	}
	if !resp[0].Profit.Equal(decimal.RequireFromString("1200")) {
		t.Fatalf("Profit = %s", resp[0].Profit)
	}
}

func TestAllocationHandler_Preview_InvalidPercentage(t *testing.T) {
	handler := NewAllocationHandler(usecase.NewAllocationUseCase())

	body, _ := json.Marshal(dto.AllocationPreviewRequest{
		TotalRevenue: decimal.RequireFromString("1000"),
		TotalCost:    decimal.RequireFromString("800"),
		Shares: []dto.AllocationShareRequest{
			{StakeholderID: "partner-a", Percentage: decimal.RequireFromString("120")},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/allocations/preview", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Preview(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAllocationHandler_Preview_InvalidBody(t *testing.T) {
	handler := NewAllocationHandler(usecase.NewAllocationUseCase())

	req := httptest.NewRequest(http.MethodPost, "/allocations/preview", bytes.NewBufferString("not json"))
	rec := httptest.NewRecorder()

	handler.Preview(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
