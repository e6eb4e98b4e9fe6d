package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/infrastructure/metrics"
)

// MovementUseCase handles the movement lifecycle: confirmation, settlement,
// reversal, deletion and edit. Every public operation runs inside a single
// database transaction; either all balance effects land or none do.
type MovementUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	movementRepo    MovementRepository
	installmentRepo InstallmentRepository
	outboxRepo      OutboxRepository
	auditRepo       AuditRepository
	scheduler       *ScheduleUseCase
	idGen           IDGenerator
	metrics         *metrics.Metrics
	retry           RetryPolicy
}

// NewMovementUseCase creates a new MovementUseCase.
func NewMovementUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	movementRepo MovementRepository,
	installmentRepo InstallmentRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	scheduler *ScheduleUseCase,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *MovementUseCase {
	return &MovementUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		movementRepo:    movementRepo,
		installmentRepo: installmentRepo,
		outboxRepo:      outboxRepo,
		auditRepo:       auditRepo,
		scheduler:       scheduler,
		idGen:           idGen,
		metrics:         metrics,
	}
}

// WithRetry installs a retry policy for movement transactions. Confirm and
// reverse lock two accounts and can lose a deadlock race under load.
func (uc *MovementUseCase) WithRetry(retry RetryPolicy) *MovementUseCase {
	uc.retry = retry
	return uc
}

// runTx executes fn inside a bounded transaction, retrying when a retry
// policy is installed and the whole transaction failed with a retryable
// error.
func (uc *MovementUseCase) runTx(ctx context.Context, fn func(txCtx context.Context, tx Transaction) error) error {
	op := func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		if err := fn(txCtx, tx); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	}

	if uc.retry != nil {
		return uc.retry.Retry(ctx, op)
	}

	return op()
}

// SchedulePolicy describes how a movement total is split into installments.
// When DayOffsets is set it takes precedence over the uniform interval.
type SchedulePolicy struct {
	Count              int
	FirstDueOffsetDays int
	IntervalDays       int
	DayOffsets         []int
}

// ConfirmMovementInput represents input for confirming a movement.
type ConfirmMovementInput struct {
	Kind                 domain.MovementKind
	OriginAccountID      *string
	DestinationAccountID *string
	StakeholderID        *string
	SaleRef              *string
	Category             string
	Description          string
	Amount               decimal.Decimal
	EventDate            time.Time
	Schedule             SchedulePolicy
}

// ConfirmMovement validates the request, generates the installment schedule
// and applies every installment that is already due, all in one transaction.
func (uc *MovementUseCase) ConfirmMovement(ctx context.Context, input ConfirmMovementInput) (*domain.Movement, error) {
	now := time.Now().UTC()

	movement, installments, err := uc.prepare(input, now)
	if err != nil {
		return nil, err
	}

	err = uc.runTx(ctx, func(txCtx context.Context, tx Transaction) error {
		return uc.confirmTx(txCtx, tx, movement, installments, now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MovementsConfirmed.WithLabelValues(string(movement.Kind)).Inc()
		uc.metrics.MovementAmount.Observe(movement.Amount.InexactFloat64())
	}

	return movement, nil
}

// prepare validates input and builds the movement and its schedule before
// any transaction is opened. Validation failures never touch the store.
func (uc *MovementUseCase) prepare(input ConfirmMovementInput, now time.Time) (*domain.Movement, []*domain.Installment, error) {
	if err := domain.ValidateMovementAmount(input.Amount); err != nil {
		return nil, nil, err
	}

	eventDate := input.EventDate
	if eventDate.IsZero() {
		eventDate = now
	}

	movement := &domain.Movement{
		ID:                   uc.idGen.Generate(),
		Kind:                 input.Kind,
		Status:               domain.MovementStatusDraft,
		OriginAccountID:      input.OriginAccountID,
		DestinationAccountID: input.DestinationAccountID,
		StakeholderID:        input.StakeholderID,
		SaleRef:              input.SaleRef,
		Category:             input.Category,
		Description:          input.Description,
		Amount:               input.Amount,
		EventDate:            eventDate,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := movement.Validate(); err != nil {
		return nil, nil, err
	}

	installments, err := uc.generateSchedule(input, eventDate)
	if err != nil {
		return nil, nil, err
	}

	for _, inst := range installments {
		inst.ID = uc.idGen.Generate()
		inst.MovementID = movement.ID
		inst.CreatedAt = now
		inst.UpdatedAt = now
	}

	// A confirmation with a due installment needs an account to settle
	// against right away.
	for _, inst := range installments {
		if inst.Due(now) && !movement.CanSettle() {
			return nil, nil, domain.ErrMissingDestinationAccount
		}
	}

	return movement, installments, nil
}

func (uc *MovementUseCase) generateSchedule(input ConfirmMovementInput, anchor time.Time) ([]*domain.Installment, error) {
	if len(input.Schedule.DayOffsets) > 0 {
		return uc.scheduler.GenerateFromOffsets(GenerateFromOffsetsInput{
			Total:      input.Amount,
			DayOffsets: input.Schedule.DayOffsets,
			AnchorDate: anchor,
		})
	}

	return uc.scheduler.Generate(GenerateScheduleInput{
		Total:              input.Amount,
		Count:              input.Schedule.Count,
		FirstDueOffsetDays: input.Schedule.FirstDueOffsetDays,
		IntervalDays:       input.Schedule.IntervalDays,
		AnchorDate:         anchor,
	})
}

// confirmTx inserts the movement and its installments and applies every due
// installment. It runs inside the caller's transaction so that edit flows
// can reverse and reconfirm atomically.
func (uc *MovementUseCase) confirmTx(ctx context.Context, tx Transaction, movement *domain.Movement, installments []*domain.Installment, now time.Time) error {
	accounts, err := uc.lockAccounts(ctx, tx, movement.SettlementAccounts())
	if err != nil {
		return err
	}

	movement.Status = domain.MovementStatusConfirmed
	if err := uc.movementRepo.Create(ctx, tx, movement); err != nil {
		return err
	}

	for _, inst := range installments {
		if err := uc.installmentRepo.Create(ctx, tx, inst); err != nil {
			return err
		}
	}

	for _, inst := range installments {
		if !inst.Due(now) {
			continue
		}

		if err := uc.applyInstallment(ctx, tx, movement, accounts, inst, now); err != nil {
			return err
		}
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   movement.ID,
		AggregateType: domain.AggregateTypeMovement,
		EventType:     domain.EventTypeMovementConfirmed,
		Payload: map[string]any{
			"movement_id":  movement.ID,
			"kind":         string(movement.Kind),
			"amount":       movement.Amount.String(),
			"installments": len(installments),
			"event_date":   movement.EventDate.Format(time.RFC3339),
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return err
	}

	uc.audit(ctx, tx, domain.AuditActionMovementConfirm, movement, now)

	return nil
}

// applyInstallment settles one installment: each account it touches gets its
// signed delta, and the applied magnitude is recorded on the installment so
// reversal replays a known value.
func (uc *MovementUseCase) applyInstallment(ctx context.Context, tx Transaction, movement *domain.Movement, accounts map[string]*domain.Account, inst *domain.Installment, now time.Time) error {
	if inst.Applied {
		return domain.ErrInstallmentAlreadyApplied
	}

	effects := movement.Effects(inst.Amount)
	if len(effects) == 0 {
		return domain.ErrMissingDestinationAccount
	}

	for _, effect := range effects {
		account := accounts[effect.AccountID]
		if account == nil {
			return domain.ErrAccountNotFound
		}

		newBalance := account.ApplyDelta(effect.Delta)
		if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
			return err
		}

		account.Balance = newBalance
		account.Version++
	}

	delta := inst.Amount
	if err := uc.installmentRepo.MarkApplied(ctx, tx, inst.ID, delta, now); err != nil {
		return err
	}

	inst.Applied = true
	inst.AppliedDelta = &delta
	appliedAt := now
	inst.AppliedAt = &appliedAt

	return nil
}

// reverseInstallment undoes a previously applied installment by negating the
// stored applied delta. Unapplied installments are left untouched.
func (uc *MovementUseCase) reverseInstallment(ctx context.Context, tx Transaction, movement *domain.Movement, accounts map[string]*domain.Account, inst *domain.Installment, now time.Time) error {
	if !inst.Applied {
		return nil
	}

	if inst.AppliedDelta == nil {
		return domain.ErrPartialApplicationDetected
	}

	for _, effect := range movement.Effects(*inst.AppliedDelta) {
		account := accounts[effect.AccountID]
		if account == nil {
			return domain.ErrAccountNotFound
		}

		newBalance := account.ApplyDelta(effect.Delta.Neg())
		if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
			return err
		}

		account.Balance = newBalance
		account.Version++
	}

	if err := uc.installmentRepo.MarkUnapplied(ctx, tx, inst.ID, now); err != nil {
		return err
	}

	inst.Applied = false
	inst.AppliedDelta = nil
	inst.AppliedAt = nil

	return nil
}

// SettleInstallmentInput represents input for settling a single installment.
// AccountID assigns the settlement account when the movement does not have
// one yet (expense paid later, receivable collected later).
type SettleInstallmentInput struct {
	MovementID string
	Sequence   int
	AccountID  *string
}

// SettleInstallment applies one installment's balance effect. Settling an
// already applied installment fails with ErrInstallmentAlreadyApplied, so a
// retry can never double-credit.
func (uc *MovementUseCase) SettleInstallment(ctx context.Context, input SettleInstallmentInput) (*domain.Installment, error) {
	now := time.Now().UTC()

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	movement, err := uc.movementRepo.GetByIDForUpdate(txCtx, tx, input.MovementID)
	if err != nil {
		return nil, err
	}

	if movement.Status != domain.MovementStatusConfirmed {
		return nil, domain.ErrMovementNotConfirmed
	}

	if !movement.CanSettle() && input.AccountID != nil {
		if err := uc.assignSettlementAccount(txCtx, tx, movement, *input.AccountID, now); err != nil {
			return nil, err
		}
	}

	if !movement.CanSettle() {
		return nil, domain.ErrMissingDestinationAccount
	}

	inst, err := uc.installmentRepo.GetBySequenceForUpdate(txCtx, tx, input.MovementID, input.Sequence)
	if err != nil {
		return nil, err
	}

	accounts, err := uc.lockAccounts(txCtx, tx, movement.SettlementAccounts())
	if err != nil {
		return nil, err
	}

	if err := uc.applyInstallment(txCtx, tx, movement, accounts, inst, now); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   movement.ID,
		AggregateType: domain.AggregateTypeMovement,
		EventType:     domain.EventTypeInstallmentSettled,
		Payload: map[string]any{
			"movement_id": movement.ID,
			"sequence":    inst.Sequence,
			"amount":      inst.Amount.String(),
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	uc.audit(txCtx, tx, domain.AuditActionInstallmentSettle, movement, now)

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.InstallmentsSettled.Inc()
	}

	return inst, nil
}

func (uc *MovementUseCase) assignSettlementAccount(ctx context.Context, tx Transaction, movement *domain.Movement, accountID string, now time.Time) error {
	if err := uc.movementRepo.SetSettlementAccount(ctx, tx, movement.ID, accountID, now); err != nil {
		return err
	}

	switch movement.Kind {
	case domain.MovementKindReceivable:
		movement.DestinationAccountID = &accountID
	default:
		movement.OriginAccountID = &accountID
	}

	return nil
}

// ReverseMovement undoes every applied installment of a confirmed movement
// and marks the movement reversed. The movement record is kept for audit;
// DeleteMovement removes it entirely.
func (uc *MovementUseCase) ReverseMovement(ctx context.Context, movementID string) (*domain.Movement, error) {
	now := time.Now().UTC()

	var movement *domain.Movement

	err := uc.runTx(ctx, func(txCtx context.Context, tx Transaction) error {
		var err error
		movement, err = uc.reverseTx(txCtx, tx, movementID, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MovementsReversed.WithLabelValues(string(movement.Kind)).Inc()
	}

	return movement, nil
}

func (uc *MovementUseCase) reverseTx(ctx context.Context, tx Transaction, movementID string, now time.Time) (*domain.Movement, error) {
	movement, err := uc.movementRepo.GetByIDForUpdate(ctx, tx, movementID)
	if err != nil {
		return nil, err
	}

	switch movement.Status {
	case domain.MovementStatusConfirmed:
	case domain.MovementStatusReversed:
		return nil, domain.ErrMovementAlreadyReversed
	default:
		return nil, domain.ErrMovementNotConfirmed
	}

	accounts, err := uc.lockAccounts(ctx, tx, movement.SettlementAccounts())
	if err != nil {
		return nil, err
	}

	installments, err := uc.installmentRepo.ListByMovementForUpdate(ctx, tx, movementID)
	if err != nil {
		return nil, err
	}

	for _, inst := range installments {
		if err := uc.reverseInstallment(ctx, tx, movement, accounts, inst, now); err != nil {
			return nil, err
		}
	}

	if err := uc.movementRepo.UpdateStatus(ctx, tx, movementID, domain.MovementStatusReversed, now); err != nil {
		return nil, err
	}

	movement.Status = domain.MovementStatusReversed
	movement.UpdatedAt = now

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   movement.ID,
		AggregateType: domain.AggregateTypeMovement,
		EventType:     domain.EventTypeMovementReversed,
		Payload: map[string]any{
			"movement_id": movement.ID,
			"kind":        string(movement.Kind),
			"amount":      movement.Amount.String(),
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	uc.audit(ctx, tx, domain.AuditActionMovementReverse, movement, now)

	return movement, nil
}

// DeleteMovement reverses any applied effects and removes the movement with
// its installments and derived records.
func (uc *MovementUseCase) DeleteMovement(ctx context.Context, movementID string) error {
	now := time.Now().UTC()

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	movement, err := uc.movementRepo.GetByIDForUpdate(txCtx, tx, movementID)
	if err != nil {
		return err
	}

	if movement.Status == domain.MovementStatusConfirmed {
		if _, err := uc.reverseTx(txCtx, tx, movementID, now); err != nil {
			return err
		}
	}

	if err := uc.movementRepo.DeleteCascade(txCtx, tx, movementID); err != nil {
		return err
	}

	uc.audit(txCtx, tx, domain.AuditActionMovementDelete, movement, now)

	return tx.Commit(txCtx)
}

// EditMovement replaces a confirmed movement with a freshly confirmed one in
// a single transaction: the old effects are fully reversed before the new
// ones are applied, never mutated in place.
func (uc *MovementUseCase) EditMovement(ctx context.Context, movementID string, input ConfirmMovementInput) (*domain.Movement, error) {
	now := time.Now().UTC()

	movement, installments, err := uc.prepare(input, now)
	if err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if _, err := uc.reverseTx(txCtx, tx, movementID, now); err != nil {
		return nil, err
	}

	if err := uc.confirmTx(txCtx, tx, movement, installments, now); err != nil {
		return nil, err
	}

	uc.audit(txCtx, tx, domain.AuditActionMovementEdit, movement, now)

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MovementsConfirmed.WithLabelValues(string(movement.Kind)).Inc()
		uc.metrics.MovementsReversed.WithLabelValues(string(movement.Kind)).Inc()
	}

	return movement, nil
}

// GetMovement retrieves a movement by ID.
func (uc *MovementUseCase) GetMovement(ctx context.Context, id string) (*domain.Movement, error) {
	return uc.movementRepo.GetByID(ctx, id)
}

// ListMovementsInput represents input for listing movements.
type ListMovementsInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListMovements lists movements, optionally filtered by account.
func (uc *MovementUseCase) ListMovements(ctx context.Context, input ListMovementsInput) ([]*domain.Movement, error) {
	limit, offset, _ := domain.ValidatePagination(input.Limit, input.Offset)

	if input.AccountID != "" {
		return uc.movementRepo.ListByAccount(ctx, input.AccountID, limit, offset)
	}

	return uc.movementRepo.List(ctx, limit, offset)
}

func (uc *MovementUseCase) lockAccounts(ctx context.Context, tx Transaction, ids []string) (map[string]*domain.Account, error) {
	if len(ids) == 0 {
		return map[string]*domain.Account{}, nil
	}

	unique := uniqueStrings(ids)
	sort.Strings(unique)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, unique)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(unique) {
		return nil, domain.ErrAccountNotFound
	}

	accountMap := make(map[string]*domain.Account, len(accounts))
	for _, account := range accounts {
		accountMap[account.ID] = account
	}

	return accountMap, nil
}

func (uc *MovementUseCase) audit(ctx context.Context, tx Transaction, action domain.AuditAction, movement *domain.Movement, now time.Time) {
	if uc.auditRepo == nil {
		return
	}

	log := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		Actor:        "system",
		Action:       string(action),
		ResourceType: domain.AggregateTypeMovement,
		ResourceID:   movement.ID,
		AfterState:   domain.MarshalState(movement),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    now,
	}

	// Audit failures do not abort the business operation.
	_ = uc.auditRepo.CreateTx(ctx, tx, log)
}

func uniqueStrings(ids []string) []string {
	seen := make(map[string]bool, len(ids))

	var out []string
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	return out
}
