package units

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ib-77/actionchain/pkg/action"
)

type logging[E any] struct {
	next   action.Action[E]
	logger *zap.Logger
	label  string
}

// Logging logs the execution of the rest of the chain. The first entry arg,
// when it is a string, labels the log lines. A nil logger falls back to the
// one carried by the invocation context.
func Logging[E any](logger *zap.Logger) *action.Unit[E] {
	return action.Define("logging", func(next action.Action[E], _ E, args []any, _ action.Block[E]) (action.Action[E], error) {
		return &logging[E]{next: next, logger: logger, label: stringArg(args, 0, "chain")}, nil
	})
}

func (l *logging[E]) Call(ctx context.Context, env E) error {
	logger := l.logger
	if logger == nil {
		logger = action.LoggerFrom(ctx)
	}
	logger = logger.With(zap.String("label", l.label))
	if inv, ok := action.InvocationFrom(ctx); ok {
		logger = logger.With(
			zap.String("invocation_id", inv.ID.String()),
			zap.String("chain_id", inv.ChainID.String()))
	}

	start := time.Now()
	logger.Debug("segment started")
	defer func() {
		if r := recover(); r != nil {
			logger.Error("segment failed",
				zap.Duration("duration", time.Since(start)),
				zap.Any("panic", r))
			panic(r)
		}
	}()

	err := l.next.Call(ctx, env)

	duration := time.Since(start)
	if err != nil {
		logger.Error("segment failed", zap.Duration("duration", duration), zap.Error(err))
		return err
	}
	logger.Info("segment completed", zap.Duration("duration", duration))
	return nil
}

func stringArg(args []any, i int, def string) string {
	if i < len(args) {
		if s, ok := args[i].(string); ok && s != "" {
			return s
		}
	}
	return def
}
