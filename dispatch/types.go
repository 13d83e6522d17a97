package dispatch

import "github.com/taxidispatch/simulator/query"

// Dispatcher holds the bookkeeping queues spec.md §4.4 mandates:
// FIFO-drained failures awaiting retry, the set of queries currently
// matched to a taxi and en route, and the append-only terminal outcome
// lists.
type Dispatcher struct {
	Failed    []query.QueryID
	Waiting   map[query.QueryID]struct{}
	Completed []query.QueryID
	Cancelled []query.QueryID
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		Waiting: make(map[query.QueryID]struct{}),
	}
}

// DrainFailed returns and clears the current Failed queue, for the
// simulation driver to append to a timestep's work queue after that
// timestep's newly-arrived queries.
func (d *Dispatcher) DrainFailed() []query.QueryID {
	drained := d.Failed
	d.Failed = nil
	return drained
}

// RecordCancellation moves a query out of Waiting (if present) and appends
// it to Cancelled.
func (d *Dispatcher) RecordCancellation(id query.QueryID) {
	delete(d.Waiting, id)
	d.Cancelled = append(d.Cancelled, id)
}

// RecordCompletion moves a query out of Waiting (if present) and appends it
// to Completed. A dispatched query keeps its Waiting entry through pickup
// and the ride, so at completion it is normally still present and this
// delete is what removes it.
func (d *Dispatcher) RecordCompletion(id query.QueryID) {
	delete(d.Waiting, id)
	d.Completed = append(d.Completed, id)
}
