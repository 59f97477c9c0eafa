package exam

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExam(t *testing.T) *Exam {
	t.Helper()
	ex, err := NewExam("exam-1", "Matematika 1", "prof-1", time.Now().Add(48*time.Hour), "A-101")
	require.NoError(t, err)
	return ex
}

func TestNewExam_Validation(t *testing.T) {
	_, err := NewExam("exam-1", "", "prof-1", time.Now(), "A-101")
	assert.ErrorIs(t, err, ErrInvalidExam)

	_, err = NewExam("exam-1", "Matematika 1", "prof-1", time.Time{}, "A-101")
	assert.ErrorIs(t, err, ErrInvalidExam)
}

func TestExam_AcceptsRegistrations(t *testing.T) {
	now := time.Now()

	ex := newTestExam(t)
	assert.True(t, ex.AcceptsRegistrations(now), "scheduled exam without deadline")

	ex.RegistrationDeadline = now.Add(time.Hour)
	assert.True(t, ex.AcceptsRegistrations(now), "before deadline")
	assert.False(t, ex.AcceptsRegistrations(now.Add(2*time.Hour)), "after deadline")

	ex.Status = StatusCancelled
	assert.False(t, ex.AcceptsRegistrations(now), "cancelled exam")
}

func TestExam_HasCapacity(t *testing.T) {
	ex := newTestExam(t)
	assert.True(t, ex.HasCapacity(1000), "zero capacity means unlimited")

	ex.Capacity = 2
	assert.True(t, ex.HasCapacity(1))
	assert.False(t, ex.HasCapacity(2))
}

func TestExam_Cancel(t *testing.T) {
	ex := newTestExam(t)
	require.NoError(t, ex.Cancel())
	assert.Equal(t, StatusCancelled, ex.Status)

	// Cancelling again is a no-op.
	require.NoError(t, ex.Cancel())
	assert.Equal(t, StatusCancelled, ex.Status)

	ex.Status = StatusCompleted
	assert.ErrorIs(t, ex.Cancel(), ErrExamNotCancellable)
	assert.Equal(t, StatusCompleted, ex.Status)
}

func TestRegistration_RecordResult(t *testing.T) {
	reg, err := NewRegistration("reg-1", "student-1", "exam-1")
	require.NoError(t, err)
	assert.Equal(t, RegistrationRegistered, reg.Status)

	require.NoError(t, reg.RecordResult(85))
	require.NotNil(t, reg.Points)
	assert.Equal(t, 85, *reg.Points)
	assert.Equal(t, RegistrationPassed, reg.Status)
	assert.Equal(t, 9, reg.Grade())
	assert.Equal(t, "Odličan", reg.Description())
}

func TestRegistration_RecordResultFailing(t *testing.T) {
	reg, err := NewRegistration("reg-1", "student-1", "exam-1")
	require.NoError(t, err)

	require.NoError(t, reg.RecordResult(40))
	assert.Equal(t, RegistrationFailed, reg.Status)
	assert.Equal(t, 5, reg.Grade())
	assert.Equal(t, "Nedovoljan", reg.Description())
}

func TestRegistration_RecordResultRejectsOutOfRange(t *testing.T) {
	reg, err := NewRegistration("reg-1", "student-1", "exam-1")
	require.NoError(t, err)

	assert.Error(t, reg.RecordResult(-1))
	assert.Error(t, reg.RecordResult(101))
	assert.Nil(t, reg.Points)
}

func TestRegistration_Rerecord(t *testing.T) {
	reg, err := NewRegistration("reg-1", "student-1", "exam-1")
	require.NoError(t, err)

	require.NoError(t, reg.RecordResult(40))
	require.NoError(t, reg.RecordResult(95))

	assert.Equal(t, 95, *reg.Points)
	assert.Equal(t, RegistrationPassed, reg.Status)
	assert.Equal(t, 10, reg.Grade())
}

func TestRegistration_Withdraw(t *testing.T) {
	reg, err := NewRegistration("reg-1", "student-1", "exam-1")
	require.NoError(t, err)

	require.NoError(t, reg.Withdraw())
	assert.Equal(t, RegistrationWithdrawn, reg.Status)

	assert.ErrorIs(t, reg.Withdraw(), ErrNotWithdrawable)
	assert.ErrorIs(t, reg.RecordResult(70), ErrResultAlreadyFinal)
}

func TestRegistration_WithdrawAfterResult(t *testing.T) {
	reg, err := NewRegistration("reg-1", "student-1", "exam-1")
	require.NoError(t, err)

	require.NoError(t, reg.RecordResult(70))
	assert.ErrorIs(t, reg.Withdraw(), ErrNotWithdrawable)
}

func TestRegistration_GradeWithoutResult(t *testing.T) {
	reg, err := NewRegistration("reg-1", "student-1", "exam-1")
	require.NoError(t, err)

	assert.Equal(t, 0, reg.Grade())
	assert.Equal(t, "", reg.Description())
}
