package pollexec

import (
	"github.com/joeycumines/logiface"
)

// reactorOptions holds configuration for Reactor creation.
type reactorOptions struct {
	logger         *logiface.Logger[logiface.Event]
	metricsEnabled bool
	dispatchBuffer int
}

// executorOptions holds configuration for Executor creation.
type executorOptions struct {
	logger         *logiface.Logger[logiface.Event]
	metricsEnabled bool
}

// ReactorOption configures a [Reactor] instance.
type ReactorOption interface {
	applyReactor(*reactorOptions) error
}

// ExecutorOption configures an [Executor] instance.
type ExecutorOption interface {
	applyExecutor(*executorOptions) error
}

// Option configures either a [Reactor] or an [Executor].
type Option interface {
	ReactorOption
	ExecutorOption
}

// optionImpl implements Option; either func may be nil for options that
// only apply to one side.
type optionImpl struct {
	reactor  func(*reactorOptions) error
	executor func(*executorOptions) error
}

func (o *optionImpl) applyReactor(opts *reactorOptions) error {
	if o.reactor == nil {
		return nil
	}
	return o.reactor(opts)
}

func (o *optionImpl) applyExecutor(opts *executorOptions) error {
	if o.executor == nil {
		return nil
	}
	return o.executor(opts)
}

// WithLogger attaches a structured logger. A nil logger disables logging
// (the default); diagnostics are emitted at debug level and below, so a
// logger with a higher level threshold costs nothing on the hot paths.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{
		reactor: func(opts *reactorOptions) error {
			opts.logger = logger
			return nil
		},
		executor: func(opts *executorOptions) error {
			opts.logger = logger
			return nil
		},
	}
}

// WithMetrics enables runtime metrics collection, accessible via the
// Metrics method of the constructed value. Disabled by default.
func WithMetrics(enabled bool) Option {
	return &optionImpl{
		reactor: func(opts *reactorOptions) error {
			opts.metricsEnabled = enabled
			return nil
		},
		executor: func(opts *executorOptions) error {
			opts.metricsEnabled = enabled
			return nil
		},
	}
}

// WithDispatchBuffer sets the capacity of the reactor's dispatch channel.
// Values below 1 fall back to the default.
func WithDispatchBuffer(n int) ReactorOption {
	return &optionImpl{
		reactor: func(opts *reactorOptions) error {
			if n > 0 {
				opts.dispatchBuffer = n
			}
			return nil
		},
	}
}

// resolveReactorOptions applies ReactorOption instances over the defaults.
func resolveReactorOptions(opts []ReactorOption) (*reactorOptions, error) {
	cfg := &reactorOptions{
		dispatchBuffer: defaultDispatchBuffer,
	}
	for _, opt := range opts {
		if opt == nil {
			continue // skip nil options gracefully
		}
		if err := opt.applyReactor(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// resolveExecutorOptions applies ExecutorOption instances over the defaults.
func resolveExecutorOptions(opts []ExecutorOption) (*executorOptions, error) {
	cfg := &executorOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyExecutor(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
