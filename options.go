package ohash

import "go.uber.org/zap"

const (
	// DefaultGrowthThreshold is the load percentage at which an insert doubles
	// the table.
	DefaultGrowthThreshold = 70
	// DefaultShrinkThreshold is the load percentage at which a remove halves
	// the table.
	DefaultShrinkThreshold = 30
	// DefaultCapacityLimit caps the number of slots a table will allocate.
	DefaultCapacityLimit = 1 << 30
)

// Option configures a Table at creation time.
type Option func(*Table)

// WithLogger sets the logger used for resize events.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Table) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithGrowthThreshold sets the growth threshold. Values outside 1..99 are
// ignored.
func WithGrowthThreshold(percent int) Option {
	return func(t *Table) {
		if validThreshold(percent) {
			t.growthPct = percent
		}
	}
}

// WithShrinkThreshold sets the shrink threshold. Values outside 1..99 are
// ignored.
func WithShrinkThreshold(percent int) Option {
	return func(t *Table) {
		if validThreshold(percent) {
			t.shrinkPct = percent
		}
	}
}

// WithCapacityLimit bounds the size of any slot array the table allocates,
// including the initial one. Requests above the limit fail with
// ErrAllocationFailure.
func WithCapacityLimit(slots int) Option {
	return func(t *Table) {
		if slots > 0 {
			t.limit = slots
		}
	}
}

func validThreshold(percent int) bool {
	return percent >= 1 && percent <= 99
}
