package notify

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	ctx := context.Background()
	now := time.Now()
	laterID, err := engine.Schedule(ctx, Request{TaskID: "1", Title: "later", At: now.Add(80 * time.Millisecond)})
	if err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	soonerID, err := engine.Schedule(ctx, Request{TaskID: "2", Title: "sooner", At: now.Add(20 * time.Millisecond)})
	if err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}
	if laterID == soonerID {
		t.Fatalf("expected distinct reminder ids")
	}

	first := waitDelivery(t, engine.C(), time.Second)
	second := waitDelivery(t, engine.C(), time.Second)
	if first.ReminderID != soonerID || second.ReminderID != laterID {
		t.Fatalf("unexpected order: first=%s second=%s", first.Title, second.Title)
	}
}

func TestCancelRemovesPendingReminder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	ctx := context.Background()
	now := time.Now()
	cancelledID, err := engine.Schedule(ctx, Request{TaskID: "1", Title: "cancelled", At: now.Add(30 * time.Millisecond)})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	keptID, err := engine.Schedule(ctx, Request{TaskID: "2", Title: "kept", At: now.Add(60 * time.Millisecond)})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	if err := engine.Cancel(ctx, cancelledID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if engine.PendingCount() != 1 {
		t.Fatalf("expected 1 pending after cancel, got %d", engine.PendingCount())
	}

	got := waitDelivery(t, engine.C(), time.Second)
	if got.ReminderID != keptID {
		t.Fatalf("cancelled reminder fired: %#v", got)
	}
}

func TestCancelUnknownIDIsNoOp(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	ctx := context.Background()
	if err := engine.Cancel(ctx, "never-existed"); err != nil {
		t.Fatalf("cancel of unknown id should be silent, got: %v", err)
	}
	if err := engine.Cancel(ctx, ""); err != nil {
		t.Fatalf("cancel of blank id should be silent, got: %v", err)
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	_, err := engine.Schedule(context.Background(), Request{TaskID: "1", Title: "bad"})
	if !errors.Is(err, ErrInvalidTriggerTime) {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
	var schedErr *SchedulingError
	if !errors.As(err, &schedErr) {
		t.Fatalf("expected *SchedulingError, got %T", err)
	}
}

func TestScheduleAfterStopFails(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()

	_, err := engine.Schedule(context.Background(), Request{TaskID: "1", At: time.Now().Add(time.Minute)})
	if !errors.Is(err, ErrEngineStopped) {
		t.Fatalf("expected ErrEngineStopped, got %v", err)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	ctx := context.Background()
	at := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if _, err := engine.Schedule(ctx, Request{TaskID: "1", Title: "evt", At: at}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped deliveries > 0, got %d", engine.Dropped())
	}
}

func waitDelivery(t *testing.T, ch <-chan Delivery, timeout time.Duration) Delivery {
	t.Helper()
	select {
	case d := <-ch:
		return d
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for delivery")
		return Delivery{}
	}
}
