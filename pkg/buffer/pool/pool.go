package pool

import (
	"sync"

	"github.com/vnykmshr/goflush/pkg/common/validation"
	"github.com/vnykmshr/goflush/pkg/metrics"
)

// Pool hands out reusable byte buffers. Rented slices have zero length
// and a capacity of at least the requested size. A buffer must be
// returned at most once and never used after it is returned.
type Pool interface {
	// Rent returns a buffer with len 0 and cap >= minSize.
	Rent(minSize int) []byte

	// Return gives a rented buffer back to the pool. Returning nil is a no-op.
	Return(buf []byte)
}

// Default buffer size classes.
const (
	// DefaultSmallSize covers typical single-record writes (4KB)
	DefaultSmallSize = 4 << 10

	// DefaultMediumSize covers batched writes (64KB)
	DefaultMediumSize = 64 << 10

	// DefaultLargeSize covers bulk transfers (1MB)
	DefaultLargeSize = 1 << 20
)

// Config holds configuration for the tiered buffer pool.
type Config struct {
	// SmallSize is the capacity of small-class buffers (default: 4KB).
	SmallSize int

	// MediumSize is the capacity of medium-class buffers (default: 64KB).
	MediumSize int

	// LargeSize is the capacity of large-class buffers (default: 1MB).
	LargeSize int

	// Metrics, if non-nil, receives rent/return counters.
	Metrics *metrics.Registry

	// Name is the pool_name label used for metrics. Defaults to "default".
	Name string
}

// DefaultConfig returns the default pool configuration.
func DefaultConfig() Config {
	return Config{
		SmallSize:  DefaultSmallSize,
		MediumSize: DefaultMediumSize,
		LargeSize:  DefaultLargeSize,
	}
}

// tieredPool manages byte slices organized by size class. Rents above
// the large class fall through to plain allocation and are not pooled.
type tieredPool struct {
	small      sync.Pool
	medium     sync.Pool
	large      sync.Pool
	smallSize  int
	mediumSize int
	largeSize  int

	name    string
	metrics *metrics.Registry
}

// New creates a tiered buffer pool with the default size classes.
func New() Pool {
	p, err := NewWithConfig(DefaultConfig())
	if err != nil {
		panic("pool: default configuration is invalid: " + err.Error())
	}
	return p
}

// NewWithConfig creates a tiered buffer pool with the given configuration.
// Zero size values fall back to their defaults.
func NewWithConfig(config Config) (Pool, error) {
	if config.SmallSize == 0 {
		config.SmallSize = DefaultSmallSize
	}
	if config.MediumSize == 0 {
		config.MediumSize = DefaultMediumSize
	}
	if config.LargeSize == 0 {
		config.LargeSize = DefaultLargeSize
	}
	if config.Name == "" {
		config.Name = "default"
	}

	if err := validation.ValidatePositive("pool", "smallSize", config.SmallSize); err != nil {
		return nil, err
	}
	if err := validation.ValidateAtLeast("pool", "mediumSize", config.MediumSize, config.SmallSize); err != nil {
		return nil, err
	}
	if err := validation.ValidateAtLeast("pool", "largeSize", config.LargeSize, config.MediumSize); err != nil {
		return nil, err
	}

	p := &tieredPool{
		smallSize:  config.SmallSize,
		mediumSize: config.MediumSize,
		largeSize:  config.LargeSize,
		name:       config.Name,
		metrics:    config.Metrics,
	}

	p.small.New = func() any {
		buf := make([]byte, 0, p.smallSize)
		return &buf
	}
	p.medium.New = func() any {
		buf := make([]byte, 0, p.mediumSize)
		return &buf
	}
	p.large.New = func() any {
		buf := make([]byte, 0, p.largeSize)
		return &buf
	}

	return p, nil
}

// Rent implements Pool.Rent.
func (p *tieredPool) Rent(minSize int) []byte {
	if minSize < 0 {
		minSize = 0
	}

	var (
		buf   *[]byte
		class string
	)
	switch {
	case minSize <= p.smallSize:
		buf, class = p.small.Get().(*[]byte), "small"
	case minSize <= p.mediumSize:
		buf, class = p.medium.Get().(*[]byte), "medium"
	case minSize <= p.largeSize:
		buf, class = p.large.Get().(*[]byte), "large"
	default:
		// Too big to pool; allocate directly.
		if p.metrics != nil {
			p.metrics.PoolOversize.WithLabelValues(p.name).Inc()
			p.metrics.PoolRents.WithLabelValues(p.name, "oversize").Inc()
		}
		return make([]byte, 0, minSize)
	}

	if p.metrics != nil {
		p.metrics.PoolRents.WithLabelValues(p.name, class).Inc()
	}
	return (*buf)[:0]
}

// Return implements Pool.Return. Buffers that do not match a pooled size
// class (oversize rents, foreign slices) are dropped for the GC.
func (p *tieredPool) Return(buf []byte) {
	if buf == nil {
		return
	}

	var class string
	switch cap(buf) {
	case p.smallSize:
		buf = buf[:0]
		p.small.Put(&buf)
		class = "small"
	case p.mediumSize:
		buf = buf[:0]
		p.medium.Put(&buf)
		class = "medium"
	case p.largeSize:
		buf = buf[:0]
		p.large.Put(&buf)
		class = "large"
	default:
		class = "oversize"
	}

	if p.metrics != nil {
		p.metrics.PoolReturns.WithLabelValues(p.name, class).Inc()
	}
}
