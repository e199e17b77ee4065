package wizard

import (
	"sort"
	"sync"

	"github.com/goliatone/go-formwizard/pkg/formdata"
	"github.com/goliatone/go-formwizard/pkg/step"
)

// DataChange describes a FormData replacement. Field is the updated field and
// is empty for resets; Fields lists every field whose value differs between
// Previous and Current.
type DataChange struct {
	Field    string
	Fields   []string
	Previous formdata.FormData
	Current  formdata.FormData
}

// StepEvent reports a step state transition. Result is set once the state is
// terminal.
type StepEvent struct {
	Index  int
	State  State
	Result *step.Result
}

// Unsubscribe removes a previously registered observer. It is safe to call
// more than once.
type Unsubscribe func()

// Notifier fans out controller events to any number of observers. Delivery is
// synchronous in the caller's goroutine; the order between observers follows
// registration order.
type Notifier struct {
	data      listeners[DataChange]
	steps     listeners[StepEvent]
	readiness listeners[bool]
}

// NewNotifier returns an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// OnDataChange registers fn for FormData replacements.
func (n *Notifier) OnDataChange(fn func(DataChange)) Unsubscribe {
	return n.data.add(fn)
}

// OnStepEvent registers fn for step state transitions and committed results.
func (n *Notifier) OnStepEvent(fn func(StepEvent)) Unsubscribe {
	return n.steps.add(fn)
}

// OnReadinessChange registers fn for changes of the submit-ready flag. Changes
// are delivered in commit order; fn must not validate or reset the controller
// synchronously.
func (n *Notifier) OnReadinessChange(fn func(ready bool)) Unsubscribe {
	return n.readiness.add(fn)
}

func (n *Notifier) publishData(change DataChange) { n.data.publish(change) }
func (n *Notifier) publishStep(event StepEvent) { n.steps.publish(event) }
func (n *Notifier) publishReadiness(ready bool) { n.readiness.publish(ready) }

type listeners[T any] struct {
	mu     sync.Mutex
	nextID int
	fns    map[int]func(T)
}

func (l *listeners[T]) add(fn func(T)) Unsubscribe {
	if fn == nil {
		return func() {}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]func(T))
	}
	id := l.nextID
	l.nextID++
	l.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.fns, id)
			l.mu.Unlock()
		})
	}
}

func (l *listeners[T]) publish(value T) {
	l.mu.Lock()
	ids := make([]int, 0, len(l.fns))
	for id := range l.fns {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(T), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, l.fns[id])
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(value)
	}
}
