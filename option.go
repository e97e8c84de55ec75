package bptree

// Options configures tree behavior.
type Options struct {
	logger Logger // Receives structural events such as height changes.
}

// DefaultOptions returns the default configuration: events are discarded.
//
// goland:noinspection GoUnusedExportedFunction
func DefaultOptions() Options {
	return Options{
		logger: DiscardLogger{},
	}
}

// Option configures tree options using the functional options pattern.
type Option func(*Options)

// WithLogger routes structural events (root growth, root collapse, clear) to
// logger. A *slog.Logger satisfies Logger directly; see package logger for
// zap and logrus adapters. A nil logger restores the discarding default.
//
//goland:noinspection GoUnusedExportedFunction
func WithLogger(logger Logger) Option {
	return func(opts *Options) {
		if logger == nil {
			logger = DiscardLogger{}
		}
		opts.logger = logger
	}
}
