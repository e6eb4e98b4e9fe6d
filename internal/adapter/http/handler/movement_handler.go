package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/dealerledger/internal/adapter/http/dto"
	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/usecase"
)

// MovementService defines the behavior needed by MovementHandler.
type MovementService interface {
	ConfirmMovement(ctx context.Context, input usecase.ConfirmMovementInput) (*domain.Movement, error)
	GetMovement(ctx context.Context, id string) (*domain.Movement, error)
	ListMovements(ctx context.Context, input usecase.ListMovementsInput) ([]*domain.Movement, error)
	ReverseMovement(ctx context.Context, movementID string) (*domain.Movement, error)
	DeleteMovement(ctx context.Context, movementID string) error
	EditMovement(ctx context.Context, movementID string, input usecase.ConfirmMovementInput) (*domain.Movement, error)
	SettleInstallment(ctx context.Context, input usecase.SettleInstallmentInput) (*domain.Installment, error)
}

// InstallmentService defines the behavior needed for installment listing.
type InstallmentService interface {
	ListByMovement(ctx context.Context, movementID string) ([]*domain.Installment, error)
}

// MovementHandler handles movement-related HTTP requests.
type MovementHandler struct {
	movementUC    MovementService
	installmentUC InstallmentService
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(movementUC MovementService, installmentUC InstallmentService) *MovementHandler {
	return &MovementHandler{
		movementUC:    movementUC,
		installmentUC: installmentUC,
	}
}

// Confirm confirms a new movement, generating its installment schedule and
// applying everything already due.
func (h *MovementHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req dto.ConfirmMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.movementUC.ConfirmMovement(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to confirm movement", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromDomain(movement))
}

// Get retrieves a movement by ID.
func (h *MovementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing movement ID", "")
		return
	}

	movement, err := h.movementUC.GetMovement(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get movement", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// List lists movements, optionally filtered by account.
func (h *MovementHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)
	accountID := r.URL.Query().Get("account_id")

	movements, err := h.movementUC.ListMovements(r.Context(), usecase.ListMovementsInput{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementsFromDomain(movements))
}

// ListByAccount lists movements touching an account.
func (h *MovementHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	movements, err := h.movementUC.ListMovements(r.Context(), usecase.ListMovementsInput{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementsFromDomain(movements))
}

// Reverse undoes every applied installment of a movement.
func (h *MovementHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing movement ID", "")
		return
	}

	movement, err := h.movementUC.ReverseMovement(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reverse movement", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// Delete reverses a movement's effects and removes its records.
func (h *MovementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing movement ID", "")
		return
	}

	if err := h.movementUC.DeleteMovement(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete movement", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Edit reverses a movement and confirms a replacement in one transaction.
func (h *MovementHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing movement ID", "")
		return
	}

	var req dto.ConfirmMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.movementUC.EditMovement(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to edit movement", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// ListInstallments lists the installment schedule of a movement.
func (h *MovementHandler) ListInstallments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing movement ID", "")
		return
	}

	installments, err := h.installmentUC.ListByMovement(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list installments", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.InstallmentsFromDomain(installments))
}

// SettleInstallment applies one installment's balance effect.
func (h *MovementHandler) SettleInstallment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing movement ID", "")
		return
	}

	sequence, err := strconv.Atoi(chi.URLParam(r, "sequence"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid installment sequence", err.Error())
		return
	}

	var req dto.SettleInstallmentRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
	}

	installment, err := h.movementUC.SettleInstallment(r.Context(), req.ToUseCaseInput(id, sequence))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to settle installment", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.InstallmentFromDomain(installment))
}
