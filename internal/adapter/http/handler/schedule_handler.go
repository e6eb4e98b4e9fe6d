package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/iho/dealerledger/internal/adapter/http/dto"
	"github.com/iho/dealerledger/internal/usecase"
)

// ScheduleHandler handles schedule preview requests.
type ScheduleHandler struct {
	scheduleUC *usecase.ScheduleUseCase
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleUC *usecase.ScheduleUseCase) *ScheduleHandler {
	return &ScheduleHandler{scheduleUC: scheduleUC}
}

// Preview generates an installment schedule without persisting anything.
func (h *ScheduleHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.SchedulePreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	anchor := time.Now().UTC()
	if req.AnchorDate != nil {
		anchor = req.AnchorDate.UTC()
	}

	if len(req.Schedule.DayOffsets) > 0 {
		generated, err := h.scheduleUC.GenerateFromOffsets(usecase.GenerateFromOffsetsInput{
			Total:      req.Total,
			DayOffsets: req.Schedule.DayOffsets,
			AnchorDate: anchor,
		})
		if err != nil {
			status := mapDomainError(err)
			writeError(w, status, "failed to generate schedule", err.Error())

			return
		}

		writeJSON(w, http.StatusOK, dto.SchedulePreviewFromDomain(generated, req.Total))
		return
	}

	generated, err := h.scheduleUC.Generate(usecase.GenerateScheduleInput{
		Total:              req.Total,
		Count:              req.Schedule.Count,
		FirstDueOffsetDays: req.Schedule.FirstDueOffsetDays,
		IntervalDays:       req.Schedule.IntervalDays,
		AnchorDate:         anchor,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to generate schedule", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SchedulePreviewFromDomain(generated, req.Total))
}
