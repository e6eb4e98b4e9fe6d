package handler

import (
	"encoding/json"
	"net/http"

	"github.com/iho/dealerledger/internal/adapter/http/dto"
	"github.com/iho/dealerledger/internal/usecase"
)

// AllocationHandler handles profit allocation preview requests.
type AllocationHandler struct {
	allocationUC *usecase.AllocationUseCase
}

// NewAllocationHandler creates a new AllocationHandler.
func NewAllocationHandler(allocationUC *usecase.AllocationUseCase) *AllocationHandler {
	return &AllocationHandler{allocationUC: allocationUC}
}

// Preview computes per-stakeholder cost, revenue, profit and margin shares.
// The result is derived on demand and never persisted.
func (h *AllocationHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.AllocationPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	results, err := h.allocationUC.Allocate(req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to allocate", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AllocationsFromDomain(results))
}
