package messaging

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

// collector records the events a handler receives.
type collector struct {
	mu     sync.Mutex
	events []shared.Event
	done   chan struct{}
	want   int
}

func newCollector(want int) *collector {
	return &collector{done: make(chan struct{}), want: want}
}

func (c *collector) Handle(_ context.Context, event shared.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	if len(c.events) == c.want {
		close(c.done)
	}
	return nil
}

func (c *collector) wait(t *testing.T) {
	t.Helper()
	select {
	case <-c.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for events")
	}
}

func TestInMemoryEventBus_DeliversToTypedSubscriber(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultConfig())
	defer bus.Close()

	c := newCollector(1)
	require.NoError(t, bus.Subscribe(shared.EventGradeRecorded, c))

	event := shared.NewBaseEvent(shared.EventGradeRecorded, "grade-1", map[string]interface{}{
		"student_id": "student-1",
	})
	require.NoError(t, bus.Publish(context.Background(), event))

	c.wait(t)
	c.mu.Lock()
	defer c.mu.Unlock()
	require.Len(t, c.events, 1)
	assert.Equal(t, "grade-1", c.events[0].AggregateID())
}

func TestInMemoryEventBus_SkipsOtherEventTypes(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultConfig())

	c := newCollector(1)
	require.NoError(t, bus.Subscribe(shared.EventGradeRecorded, c))

	event := shared.NewBaseEvent(shared.EventEnrollmentCreated, "enr-1", nil)
	require.NoError(t, bus.Publish(context.Background(), event))

	// Close drains the pool, so after it returns nothing more can arrive.
	require.NoError(t, bus.Close())

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Empty(t, c.events)
}

func TestInMemoryEventBus_SubscribeAllSeesEverything(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultConfig())
	defer bus.Close()

	c := newCollector(2)
	require.NoError(t, bus.SubscribeAll(c))

	require.NoError(t, bus.Publish(context.Background(),
		shared.NewBaseEvent(shared.EventGradeRecorded, "grade-1", nil),
		shared.NewBaseEvent(shared.EventEnrollmentCleared, "student-1", nil),
	))

	c.wait(t)
}

func TestInMemoryEventBus_PublishAfterClose(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultConfig())
	require.NoError(t, bus.Close())

	err := bus.Publish(context.Background(),
		shared.NewBaseEvent(shared.EventGradeRecorded, "grade-1", nil))
	assert.ErrorIs(t, err, ErrEventBusClosed)
}

// fakeInvalidator records invalidated student IDs.
type fakeInvalidator struct {
	mu  sync.Mutex
	ids []string
}

func (f *fakeInvalidator) Invalidate(_ context.Context, studentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, studentID)
	return nil
}

func TestProgressInvalidator_UsesPayloadStudentID(t *testing.T) {
	cache := &fakeInvalidator{}
	inv := NewProgressInvalidator(cache, nil)

	event := shared.NewBaseEvent(shared.EventGradeRecorded, "grade-1", map[string]interface{}{
		"student_id": "student-7",
	})
	require.NoError(t, inv.Handle(context.Background(), event))

	assert.Equal(t, []string{"student-7"}, cache.ids)
}

func TestProgressInvalidator_ClearedEventUsesAggregateID(t *testing.T) {
	cache := &fakeInvalidator{}
	inv := NewProgressInvalidator(cache, nil)

	event := shared.NewBaseEvent(shared.EventEnrollmentCleared, "student-3", nil)
	require.NoError(t, inv.Handle(context.Background(), event))

	assert.Equal(t, []string{"student-3"}, cache.ids)
}

func TestProgressInvalidator_IgnoresEventsWithoutStudent(t *testing.T) {
	cache := &fakeInvalidator{}
	inv := NewProgressInvalidator(cache, nil)

	event := shared.NewBaseEvent(shared.EventExamScheduled, "exam-1", map[string]interface{}{
		"subject": "Matematika 1",
	})
	require.NoError(t, inv.Handle(context.Background(), event))

	assert.Empty(t, cache.ids)
}
