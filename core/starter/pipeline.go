package starter

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/launchpad/core/effect"
	"github.com/dmitrymomot/launchpad/core/logger"
	"github.com/dmitrymomot/launchpad/core/prepare"
	"github.com/dmitrymomot/launchpad/core/server"
)

// PrepareStart runs the logger initialization and then every step in declared order.
// The first failing step aborts the run: later steps are never invoked and effects
// accumulated so far are dropped after their shutdown hooks ran, together with the
// hooks of whatever the failing step returned. Nothing happens until PrepareStart
// is called.
func (sp *ServerPrepare[C]) PrepareStart(ctx context.Context) (*Ready[C], error) {
	if _, err := sp.InitLogger(); err != nil {
		sp.opts.logger.ErrorContext(ctx, "logger initialization failed", logger.Error(err))
		return nil, err
	}

	runID := uuid.NewString()
	log := sp.logger.With(logger.Component("starter"), logger.RunID(runID))

	ctx, runSpan := sp.opts.tracer.Start(ctx, "launchpad.prepare",
		trace.WithAttributes(
			attribute.String("launchpad.run_id", runID),
			attribute.Int("launchpad.steps", len(sp.steps)),
		))
	defer runSpan.End()

	start := time.Now()
	log.InfoContext(ctx, "preparing server", logger.Count("steps", len(sp.steps)))

	acc := effect.Empty()
	for i, st := range sp.steps {
		n := i + 1

		e, err := sp.runStep(ctx, n, st)
		if err != nil {
			runSpan.RecordError(err)
			runSpan.SetStatus(codes.Error, "preparation failed")
			sp.metrics.setReady(false)
			log.ErrorContext(ctx, "preparation failed", logger.Step(n, st.name), logger.Error(err), logger.Elapsed(start))
			if relErr := sp.release(acc.Combine(e), log); relErr != nil {
				log.ErrorContext(ctx, "releasing prepared resources failed", logger.Error(relErr))
			}
			return nil, err
		}
		acc = acc.Combine(e)
	}

	sp.metrics.setReady(true)
	log.InfoContext(ctx, "server prepared", logger.Elapsed(start))

	return &Ready[C]{
		cfg:         sp.cfg,
		effect:      acc,
		logger:      sp.logger,
		runID:       runID,
		opts:        sp.opts,
		middlewares: append(sp.middlewares[:0:0], sp.middlewares...),
	}, nil
}

func (sp *ServerPrepare[C]) runStep(ctx context.Context, n int, st step[C]) (effect.Effect, error) {
	ctx, span := sp.opts.tracer.Start(ctx, "launchpad.prepare.step",
		trace.WithAttributes(
			attribute.Int("launchpad.step", n),
			attribute.String("launchpad.preparer", st.name),
		))
	defer span.End()

	log := sp.logger.With(logger.Step(n, st.name))
	log.DebugContext(ctx, "step started")

	start := time.Now()
	e, err := prepare.Run(ctx, st.preparer, sp.cfg)
	sp.metrics.observe(st.name, time.Since(start), err)

	if err != nil {
		err = prepare.AtStep(err, n, st.name)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return e, err
	}

	log.DebugContext(ctx, "step finished", logger.Elapsed(start))
	return e, nil
}

// release runs the shutdown hooks of e without binding anything. Routes,
// extensions and the graceful signal of e are discarded.
func (sp *ServerPrepare[C]) release(e effect.Effect, log *slog.Logger) error {
	if len(e.Server()) == 0 {
		return nil
	}
	opts := make([]server.Option, 0, 1+len(sp.opts.serverOpts)+len(e.Server()))
	opts = append(opts, server.WithLogger(log))
	opts = append(opts, sp.opts.serverOpts...)
	opts = append(opts, e.Server()...)
	return server.New(sp.cfg.ServeAddress(), opts...).Stop()
}
