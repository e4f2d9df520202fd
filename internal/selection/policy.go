package selection

import (
	"log/slog"

	"github.com/google/uuid"

	"switchscan/internal/clock"
	"switchscan/internal/domain"
	"switchscan/internal/eventbus"
	"switchscan/internal/loop"
	"switchscan/internal/slogs"
)

type request struct {
	id        string
	candidate domain.Candidate
	kind      domain.StrategyKind
	gen       uint64
	timer     clock.Timer
}

// Policy commits candidates after a delay, or hands them to a chooser.
// Methods must be called from the engine's executor.
type Policy struct {
	source    clock.Source
	exec      loop.Executor
	bus       eventbus.EventBus
	opts      Options
	committer Committer
	chooser   ActionChooser
	restarter Restarter

	pending *request
	gen     uint64
}

// NewPolicy creates a policy with nothing pending
func NewPolicy(source clock.Source, exec loop.Executor, bus eventbus.EventBus, opts Options,
	committer Committer, chooser ActionChooser, restarter Restarter) *Policy {
	if bus == nil {
		bus = eventbus.Null{}
	}
	return &Policy{
		source:    source,
		exec:      exec,
		bus:       bus,
		opts:      opts,
		committer: committer,
		chooser:   chooser,
		restarter: restarter,
	}
}

// Pending reports whether a commit is waiting for its delay
func (p *Policy) Pending() bool {
	return p.pending != nil
}

// Request handles a chosen candidate. A request made while another is
// pending replaces it.
func (p *Policy) Request(c domain.Candidate, kind domain.StrategyKind) {
	if !p.opts.AutoSelect {
		p.Cancel()
		slog.Debug("Opening action chooser", slogs.Point, c.Point)
		if p.chooser != nil {
			p.chooser.Choose(c)
		}
		return
	}

	p.Cancel()
	p.gen++
	req := &request{
		id:        uuid.NewString(),
		candidate: c,
		kind:      kind,
		gen:       p.gen,
	}
	p.pending = req
	req.timer = p.source.AfterFunc(p.opts.Delay, func() {
		p.exec.Post(func() { p.expire(req.gen) })
	})

	slog.Debug("Commit scheduled", slogs.Request, req.id, slogs.Point, c.Point, slogs.Delay, p.opts.Delay)
	p.bus.Publish(domain.CommitScheduledEvent{RequestID: req.id, Point: c.Point, Delay: p.opts.Delay})
}

// Cancel drops the pending request, if any
func (p *Policy) Cancel() {
	req := p.pending
	if req == nil {
		return
	}
	p.pending = nil
	p.gen++
	if req.timer != nil {
		req.timer.Stop()
	}
	slog.Debug("Commit cancelled", slogs.Request, req.id)
	p.bus.Publish(domain.CommitCancelledEvent{RequestID: req.id})
}

// Interrupt cancels the pending request and returns its candidate
func (p *Policy) Interrupt() (domain.Candidate, bool) {
	req := p.pending
	if req == nil {
		return domain.Candidate{}, false
	}
	p.Cancel()
	return req.candidate, true
}

func (p *Policy) expire(gen uint64) {
	req := p.pending
	if req == nil || req.gen != gen {
		return
	}
	p.pending = nil

	if p.committer != nil {
		p.committer.Commit(req.candidate)
	}

	restarted := false
	if p.opts.AutoRestart && p.restarter != nil {
		if active := p.restarter.ActiveKind(); active == req.kind {
			p.restarter.StartScanning()
			restarted = true
		} else {
			slog.Debug("Strategy changed before commit, not restarting",
				slogs.Request, req.id, slogs.Strategy, active)
		}
	}

	slog.Debug("Committed", slogs.Request, req.id, slogs.Point, req.candidate.Point)
	p.bus.Publish(domain.CommittedEvent{RequestID: req.id, Point: req.candidate.Point, Restarted: restarted})
}
