package services

import (
	"context"
	"sync"
	"time"

	"caseflow/internal/domain/assignment"
	"caseflow/internal/shared/goroutine"
	"caseflow/internal/shared/logger"
)

// QueueDrainer converts queued entries into assignments when capacity frees
// up. Signals for the same unit are debounced into a single drain pass, and
// a cross-instance lease guarantees only one drainer works a unit's backlog
// at a time. Entries are processed strictly sequentially so two entries
// never race for the same freed slot.
type QueueDrainer struct {
	queueRepo       assignment.QueueRepository
	tracker         *CapacityTracker
	assigner        *Assigner
	lease           DrainLease
	logger          logger.Interface
	debounceWindow  time.Duration
	batchSize       int
	nowFn           func() time.Time

	mu      sync.Mutex
	pending map[uint]*pendingDrain
}

type pendingDrain struct {
	timer  *time.Timer
	skills map[string]bool
}

func NewQueueDrainer(
	queueRepo assignment.QueueRepository,
	tracker *CapacityTracker,
	assigner *Assigner,
	lease DrainLease,
	debounceWindow time.Duration,
	batchSize int,
	log logger.Interface,
) *QueueDrainer {
	if debounceWindow <= 0 {
		debounceWindow = 5 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 10
	}
	return &QueueDrainer{
		queueRepo:      queueRepo,
		tracker:        tracker,
		assigner:       assigner,
		lease:          lease,
		logger:         log,
		debounceWindow: debounceWindow,
		batchSize:      batchSize,
		nowFn:          time.Now,
		pending:        make(map[uint]*pendingDrain),
	}
}

// WithNow overrides the clock, for deterministic tests.
func (d *QueueDrainer) WithNow(nowFn func() time.Time) *QueueDrainer {
	d.nowFn = nowFn
	return d
}

// Signal receives a capacity-freed event. Repeated signals for the same unit
// within the debounce window reset the pending timer and merge their freed
// skills, so a burst of completions triggers one drain pass.
func (d *QueueDrainer) Signal(unitID uint, freedSkills []string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[unitID]; ok {
		p.timer.Stop()
		for _, s := range freedSkills {
			p.skills[s] = true
		}
		p.timer.Reset(d.debounceWindow)
		return
	}

	skills := make(map[string]bool, len(freedSkills))
	for _, s := range freedSkills {
		skills[s] = true
	}
	p := &pendingDrain{skills: skills}
	p.timer = time.AfterFunc(d.debounceWindow, func() {
		d.fire(unitID)
	})
	d.pending[unitID] = p
}

func (d *QueueDrainer) fire(unitID uint) {
	d.mu.Lock()
	p, ok := d.pending[unitID]
	if !ok {
		d.mu.Unlock()
		return
	}
	delete(d.pending, unitID)
	skills := make([]string, 0, len(p.skills))
	for s := range p.skills {
		skills = append(skills, s)
	}
	d.mu.Unlock()

	goroutine.SafeGo(d.logger, "queue-drain", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		d.DrainUnit(ctx, unitID, skills)
	})
}

// DrainUnit runs one bounded drain pass for the unit. Once started it runs
// to completion or per-entry failure; there is no cancellation of a pass in
// flight. Returns how many entries were converted to assignments.
func (d *QueueDrainer) DrainUnit(ctx context.Context, unitID uint, freedSkills []string) int {
	acquired, err := d.lease.TryAcquire(ctx, unitID)
	if err != nil {
		d.logger.Errorw("failed to acquire drain lease", "unit_id", unitID, "error", err)
		return 0
	}
	if !acquired {
		d.logger.Debugw("drain lease held elsewhere, skipping pass", "unit_id", unitID)
		return 0
	}
	defer d.lease.Release(ctx, unitID)

	entries, err := d.queueRepo.ListMatching(ctx, unitID, freedSkills, d.batchSize)
	if err != nil {
		d.logger.Errorw("failed to list matching queue entries", "unit_id", unitID, "error", err)
		return 0
	}

	drained := 0
	for _, entry := range entries {
		ok, err := d.drainEntry(ctx, entry, unitID)
		if err != nil {
			// Partial-failure semantics: one bad entry never aborts the
			// batch. The entry stays queued for the next signal.
			d.logger.Errorw("queue entry drain failed",
				"queue_id", entry.ID(),
				"work_item_id", entry.WorkItemID(),
				"error", err)
			continue
		}
		if ok {
			drained++
		}
	}

	d.logger.Infow("drain pass finished",
		"unit_id", unitID,
		"attempted", len(entries),
		"drained", drained)
	return drained
}

func (d *QueueDrainer) drainEntry(ctx context.Context, entry *assignment.QueueEntry, unitID uint) (bool, error) {
	entry.RecordAttempt(d.nowFn())
	if err := d.queueRepo.Update(ctx, entry); err != nil {
		return false, err
	}

	candidates, err := d.tracker.FindAvailableStaffInUnit(ctx, unitID, entry.RequiredSkills())
	if err != nil {
		return false, err
	}

	item := WorkItem{
		ID:             entry.WorkItemID(),
		Type:           entry.WorkItemType(),
		Priority:       entry.Priority(),
		RequiredSkills: entry.RequiredSkills(),
		TargetUnitID:   entry.TargetUnitID(),
	}

	for _, c := range candidates {
		a, assigned, err := d.assigner.TryAssign(ctx, item, c.Profile.ID(), unitID)
		if err != nil {
			return false, err
		}
		if !assigned {
			// Slot race lost mid-batch; try the next candidate.
			continue
		}

		if err := d.queueRepo.Delete(ctx, entry.ID()); err != nil {
			// The assignment is committed; a dangling queue entry is
			// caught by the duplicate guard on the next drain.
			d.logger.Errorw("failed to dequeue converted entry",
				"queue_id", entry.ID(), "assignment_id", a.ID(), "error", err)
		}
		return true, nil
	}

	// Capacity re-exhausted; the entry stays queued for the next signal.
	return false, nil
}
