package prepare

import (
	"context"
	"sync/atomic"

	"github.com/dmitrymomot/launchpad/core/effect"
	"github.com/dmitrymomot/launchpad/pkg/async"
)

// Set is a group of preparers run concurrently. It is itself a Preparer, so sets
// can be used as a pipeline step or nested in another set.
//
// All members are started together and the set waits for every one of them, even
// after a failure. The first failing member in join order decides the error; on
// success the member effects are combined in join order, whatever order they
// finished in. On failure the set still returns the combined effects of every
// member, so their shutdown hooks can run. A set can be prepared once.
type Set[C any] struct {
	name     string
	members  []Preparer[C]
	consumed atomic.Bool
}

// NewSet returns an empty set. The optional name is used in errors and logs.
func NewSet[C any](name ...string) *Set[C] {
	s := &Set[C]{name: "concurrent"}
	if len(name) > 0 && name[0] != "" {
		s.name = name[0]
	}
	return s
}

// Join adds p to the set. Nil preparers are ignored.
func (s *Set[C]) Join(p Preparer[C]) *Set[C] {
	if p != nil {
		s.members = append(s.members, p)
	}
	return s
}

// JoinFunc adds fn as a named member.
func (s *Set[C]) JoinFunc(name string, fn func(ctx context.Context, cfg C) (effect.Effect, error)) *Set[C] {
	return s.Join(Func(name, fn))
}

// Len returns the number of members.
func (s *Set[C]) Len() int {
	return len(s.members)
}

// Name implements Named.
func (s *Set[C]) Name() string {
	return s.name
}

// Prepare runs every member concurrently and waits for all of them.
func (s *Set[C]) Prepare(ctx context.Context, cfg C) (effect.Effect, error) {
	if !s.consumed.CompareAndSwap(false, true) {
		return effect.Empty(), ErrSetConsumed
	}
	if len(s.members) == 0 {
		return effect.Empty(), nil
	}

	// Members start with a context that is never canceled by the set itself;
	// each preparer owns its own timeouts.
	runCtx := context.WithoutCancel(ctx)

	futures := make([]*async.Future[effect.Effect], len(s.members))
	for i, member := range s.members {
		futures[i] = async.Async(runCtx, member, func(ctx context.Context, p Preparer[C]) (effect.Effect, error) {
			return Run(ctx, p, cfg)
		})
	}

	outcomes := async.Settle(futures...)

	var err error
	effects := make([]effect.Effect, 0, len(outcomes))
	for i, o := range outcomes {
		if o.Err != nil && err == nil {
			err = asMember(o.Err, i+1, NameOf(s.members[i]))
		}
		effects = append(effects, o.Value)
	}
	return effect.Concat(effects...), err
}

func asMember(err error, member int, name string) error {
	if pe, ok := err.(*PrepareError); ok && pe.Member == 0 {
		out := *pe
		out.Member = member
		return &out
	}
	if _, ok := err.(*PrepareError); ok {
		// nested set: keep the innermost attribution
		return err
	}
	return &PrepareError{Member: member, Name: name, Err: err}
}
