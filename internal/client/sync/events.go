package sync

import (
	"time"

	"github.com/iudanet/fieldsync/internal/models"
)

// EventKind identifies what an Event reports
type EventKind string

const (
	// EventPassCompleted is emitted after every pass, Report is set
	EventPassCompleted EventKind = "pass_completed"
	// EventReconciled is emitted when a temporary id is replaced by a permanent one
	EventReconciled EventKind = "reconciled"
	// EventPendingChanged is emitted when pending counts may have changed, Pending is set
	EventPendingChanged EventKind = "pending_changed"
)

// Event is a notification published on Engine.Events
type Event struct {
	Report  *PassReport
	Pending map[models.EntityType]int
	Kind    EventKind
	Type    models.EntityType
	OldID   int64
	NewID   int64
}

// TypeReport counts the outcomes of one entity type in a pass
type TypeReport struct {
	Attempted int // количество выбранных из очереди id
	Created   int // созданы на сервере и переведены на постоянный id
	Updated   int // изменения приняты сервером
	Deleted   int // удаления приняты сервером
	Failed    int // ошибка сервера или хранилища, запись осталась в очереди
	Deferred  int // ссылается на еще не синхронизированную сущность
	Skipped   int // запись исчезла или уже чистая
}

func (r *TypeReport) add(o TypeReport) {
	r.Attempted += o.Attempted
	r.Created += o.Created
	r.Updated += o.Updated
	r.Deleted += o.Deleted
	r.Failed += o.Failed
	r.Deferred += o.Deferred
	r.Skipped += o.Skipped
}

// PassReport summarizes one sync pass
type PassReport struct {
	StartedAt   time.Time
	FinishedAt  time.Time
	Types       map[models.EntityType]*TypeReport
	Interrupted bool // pass stopped early by Shutdown or context cancellation
}

func newPassReport(now time.Time) *PassReport {
	r := &PassReport{
		StartedAt: now,
		Types:     make(map[models.EntityType]*TypeReport, len(models.AllTypes())),
	}
	for _, t := range models.AllTypes() {
		r.Types[t] = &TypeReport{}
	}
	return r
}

// Total sums the per-type counters
func (r *PassReport) Total() TypeReport {
	var total TypeReport
	for _, tr := range r.Types {
		total.add(*tr)
	}
	return total
}
