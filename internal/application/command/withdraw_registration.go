package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/faculty-hub/faculty-hub/internal/domain/exam"
	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

// WithdrawRegistrationCommand withdraws a registration before its result is
// recorded.
type WithdrawRegistrationCommand struct {
	RegistrationID string
}

// Validate validates the command.
func (c WithdrawRegistrationCommand) Validate() error {
	if c.RegistrationID == "" {
		return shared.NewDomainError("exam", "Withdraw", shared.ErrValidation, "registration_id is required")
	}
	return nil
}

// WithdrawRegistrationHandler handles the WithdrawRegistrationCommand.
type WithdrawRegistrationHandler struct {
	exams     exam.Repository
	publisher shared.EventPublisher
}

// NewWithdrawRegistrationHandler creates a new WithdrawRegistrationHandler.
func NewWithdrawRegistrationHandler(exams exam.Repository, publisher shared.EventPublisher) *WithdrawRegistrationHandler {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	return &WithdrawRegistrationHandler{exams: exams, publisher: publisher}
}

// Handle executes the withdraw command.
func (h *WithdrawRegistrationHandler) Handle(ctx context.Context, cmd WithdrawRegistrationCommand) (*exam.Registration, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	reg, err := h.exams.RegistrationByID(ctx, cmd.RegistrationID)
	if err != nil {
		if errors.Is(err, exam.ErrRegistrationNotFound) {
			return nil, shared.WrapError("exam", "Withdraw", shared.ErrNotFound, "registration not found", err)
		}
		return nil, fmt.Errorf("withdraw: resolve registration: %w", err)
	}

	if err := reg.Withdraw(); err != nil {
		return nil, shared.WrapError("exam", "Withdraw", shared.ErrValidation, "withdraw registration", err)
	}

	if err := h.exams.UpdateRegistration(ctx, reg); err != nil {
		return nil, shared.WrapError("exam", "Withdraw", shared.ErrInternal, "persist withdrawal", err)
	}

	_ = h.publisher.Publish(ctx, shared.NewBaseEvent(shared.EventRegistrationWithdrawn, reg.ID, map[string]interface{}{
		"student_id": reg.StudentID,
		"exam_id":    reg.ExamID,
	}))

	return reg, nil
}
