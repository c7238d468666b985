package notify

import (
	"container/heap"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var ErrEngineStopped = errors.New("notify: engine stopped")

type queueItem struct {
	delivery Delivery
}

type priorityQueue []queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].delivery.At.Before(pq[j].delivery.At)
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(queueItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

// Engine is an in-process stand-in for the OS notification scheduler. It
// assigns an opaque id per request, fires deliveries on a buffered channel
// when their instant arrives, and drops deliveries the consumer is too slow
// to drain rather than blocking the timer loop.
type Engine struct {
	mu      sync.Mutex
	queue   priorityQueue
	out     chan Delivery
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(priorityQueue, 0),
		out:    make(chan Delivery, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan Delivery {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Schedule enqueues a one-shot reminder and returns its assigned id. The id
// is never reused; cancelling it after the reminder fired is a no-op.
func (e *Engine) Schedule(_ context.Context, req Request) (string, error) {
	if req.At.IsZero() {
		return "", &SchedulingError{Reason: ErrInvalidTriggerTime}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return "", &SchedulingError{Reason: ErrEngineStopped}
	}

	id := uuid.NewString()
	heap.Push(&e.queue, queueItem{delivery: Delivery{
		ReminderID: id,
		TaskID:     req.TaskID,
		Title:      req.Title,
		Body:       req.Body,
		DeepLink:   req.DeepLink,
		At:         req.At,
	}})
	e.signalWakeup()
	return id, nil
}

// Cancel removes a pending reminder. Unknown ids are treated as already
// fired or expired and return nil.
func (e *Engine) Cancel(_ context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.queue {
		if e.queue[i].delivery.ReminderID == id {
			heap.Remove(&e.queue, i)
			e.signalWakeup()
			return nil
		}
	}
	return nil
}

// PendingCount reports how many reminders are still queued.
func (e *Engine) PendingCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.At)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now())
			for _, d := range due {
				select {
				case e.out <- d:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Delivery, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return Delivery{}, false
	}
	return e.queue[0].delivery, true
}

func (e *Engine) popDue(now time.Time) []Delivery {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Delivery, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].delivery
		if next.At.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		out = append(out, item.delivery)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
