package simnet

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"talentflow-backend/apperrors"
)

// OpKind separates read traffic from write traffic: writes fail more often
// because the flows that depend on them (reorder, stage change) are the ones
// exercising rollback.
type OpKind int

const (
	Read OpKind = iota
	Write
)

// Policy decides, per operation, how long the fake network stalls and whether
// it drops the call. Injectable so tests can script failures.
type Policy interface {
	Delay() time.Duration
	ShouldFail(kind OpKind) bool
}

var Active Policy = NoopPolicy{}

func Init(minDelay, maxDelay time.Duration, readFailRate, writeFailRate float64, enabled bool) {
	if !enabled {
		Active = NoopPolicy{}
		return
	}
	Active = NewRandomPolicy(minDelay, maxDelay, readFailRate, writeFailRate)
}

// Do wraps an operation with the active policy: sleep, maybe reject with a
// status-coded failure, otherwise run the operation. The delay is
// context-aware so abandoned callers do not hold goroutines.
func Do(ctx context.Context, kind OpKind, op func() error) error {
	if d := Active.Delay(); d > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}
	}
	if Active.ShouldFail(kind) {
		return apperrors.NewSimulatedNetwork(500, "simulated network failure")
	}
	return op()
}

// NoopPolicy never delays and never fails.
type NoopPolicy struct{}

func (NoopPolicy) Delay() time.Duration        { return 0 }
func (NoopPolicy) ShouldFail(kind OpKind) bool { return false }

// RandomPolicy draws the delay uniformly from [minDelay, maxDelay] and fails
// reads/writes at their configured rates.
type RandomPolicy struct {
	mu            sync.Mutex
	rnd           *rand.Rand
	minDelay      time.Duration
	maxDelay      time.Duration
	readFailRate  float64
	writeFailRate float64
}

func NewRandomPolicy(minDelay, maxDelay time.Duration, readFailRate, writeFailRate float64) *RandomPolicy {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &RandomPolicy{
		rnd:           rand.New(rand.NewSource(time.Now().UnixNano())),
		minDelay:      minDelay,
		maxDelay:      maxDelay,
		readFailRate:  readFailRate,
		writeFailRate: writeFailRate,
	}
}

func (p *RandomPolicy) Delay() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	spread := p.maxDelay - p.minDelay
	if spread <= 0 {
		return p.minDelay
	}
	return p.minDelay + time.Duration(p.rnd.Int63n(int64(spread)))
}

func (p *RandomPolicy) ShouldFail(kind OpKind) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	rate := p.readFailRate
	if kind == Write {
		rate = p.writeFailRate
	}
	return p.rnd.Float64() < rate
}

// ScriptedPolicy fails operations according to a fixed script and never
// delays. Each ShouldFail call consumes one script entry; past the end of the
// script every call succeeds.
type ScriptedPolicy struct {
	mu     sync.Mutex
	script []bool
	pos    int
}

func NewScriptedPolicy(script ...bool) *ScriptedPolicy {
	return &ScriptedPolicy{script: script}
}

func (p *ScriptedPolicy) Delay() time.Duration { return 0 }

func (p *ScriptedPolicy) ShouldFail(kind OpKind) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pos >= len(p.script) {
		return false
	}
	fail := p.script[p.pos]
	p.pos++
	return fail
}
