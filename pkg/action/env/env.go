package env

import (
	"sort"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Environment is a key/value bag shared by every unit of one invocation. It
// satisfies action.Halter and action.Interrupter.
//
// Environment is not safe for concurrent use.
type Environment struct {
	id          uuid.UUID
	values      map[string]any
	err         error
	halted      bool
	interrupted bool
	logger      *zap.Logger
}

type Option func(e *Environment)

// WithValues seeds the environment.
func WithValues(values map[string]any) Option {
	return func(e *Environment) {
		for k, v := range values {
			e.values[k] = v
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Environment) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func New(opts ...Option) *Environment {
	e := &Environment{
		id:     uuid.New(),
		values: make(map[string]any),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(zap.String("env_id", e.id.String()))
	return e
}

func (e *Environment) Id() uuid.UUID {
	return e.id
}

// Logger returns the environment's logger tagged with its id.
func (e *Environment) Logger() *zap.Logger {
	return e.logger
}

func (e *Environment) Get(key string) (any, bool) {
	v, ok := e.values[key]
	return v, ok
}

func (e *Environment) Set(key string, value any) {
	e.values[key] = value
}

func (e *Environment) Delete(key string) {
	delete(e.values, key)
}

// Keys returns the stored keys in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Halt marks the environment as failed and records err. Repeated halts
// accumulate their errors.
func (e *Environment) Halt(err error) {
	e.halted = true
	e.err = multierr.Append(e.err, err)
}

func (e *Environment) Halted() bool {
	return e.halted
}

func (e *Environment) Interrupt(err error) {
	e.interrupted = true
	e.logger.Debug("environment interrupted", zap.Error(err))
}

func (e *Environment) Interrupted() bool {
	return e.interrupted
}

// Err returns every error recorded by Halt, combined.
func (e *Environment) Err() error {
	return e.err
}

func (e *Environment) Errors() []error {
	return multierr.Errors(e.err)
}

// Reset clears the halted and interrupted state so the environment can be
// reused for another invocation. Values are kept.
func (e *Environment) Reset() {
	e.err = nil
	e.halted = false
	e.interrupted = false
}

// Lookup returns the value stored under key converted to T.
func Lookup[T any](e *Environment, key string) (T, bool) {
	var zero T
	v, ok := e.values[key]
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
