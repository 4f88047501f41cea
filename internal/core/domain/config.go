package domain

import (
	"fmt"
	"time"
)

// MemoryPath is the reserved database path selecting a non-persistent in-memory database.
const MemoryPath = ":memory:"

// Default configuration values.
const (
	DefaultQueueSize     = 1024
	DefaultPollInterval  = time.Second
	DefaultCacheCapacity = 128
)

// EvictionPolicy selects which cached namespace handle is discarded when the cache is full.
type EvictionPolicy string

// Available eviction policies.
const (
	// EvictionRandom discards a uniformly random handle.
	EvictionRandom EvictionPolicy = "random"

	// EvictionLRU discards the least recently used handle.
	EvictionLRU EvictionPolicy = "lru"
)

// IsValid returns true if the eviction policy is recognised.
func (p EvictionPolicy) IsValid() bool {
	switch p {
	case EvictionRandom, EvictionLRU:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p EvictionPolicy) String() string {
	return string(p)
}

// OpaqueCodec selects the binary encoding used for values that are not JSON-representable.
type OpaqueCodec string

// Available opaque codecs.
const (
	// OpaqueCodecGob preserves concrete Go types registered with gob.
	OpaqueCodecGob OpaqueCodec = "gob"

	// OpaqueCodecCBOR writes language-neutral CBOR.
	OpaqueCodecCBOR OpaqueCodec = "cbor"
)

// IsValid returns true if the codec is recognised.
func (c OpaqueCodec) IsValid() bool {
	switch c {
	case OpaqueCodecGob, OpaqueCodecCBOR:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c OpaqueCodec) String() string {
	return string(c)
}

// DatabaseSettings configures the database file and its worker.
type DatabaseSettings struct {
	// Path is the database file, or MemoryPath.
	Path string `toml:"path" env:"PATH"`

	// QueueSize bounds the worker's command and response queues.
	QueueSize int `toml:"queue_size" env:"QUEUE_SIZE"`

	// PollInterval is how long the idle worker waits before re-evaluating autoquit.
	// Parsed with time.ParseDuration.
	PollInterval string `toml:"poll_interval" env:"POLL_INTERVAL"`

	// AutoQuit lets the worker stop on its own once the owner signals shutdown.
	AutoQuit bool `toml:"autoquit" env:"AUTOQUIT"`
}

// CacheSettings configures the namespace handle cache.
type CacheSettings struct {
	Capacity int            `toml:"capacity" env:"CAPACITY"`
	Eviction EvictionPolicy `toml:"eviction" env:"EVICTION"`
}

// CodecSettings configures value serialization.
type CodecSettings struct {
	Opaque OpaqueCodec `toml:"opaque" env:"OPAQUE"`
}

// LogSettings configures logging.
type LogSettings struct {
	Verbose bool `toml:"verbose" env:"VERBOSE"`
}

// Config is the complete runtime configuration.
type Config struct {
	Database DatabaseSettings `toml:"database" envPrefix:"DATABASE_"`
	Cache    CacheSettings    `toml:"cache" envPrefix:"CACHE_"`
	Codec    CodecSettings    `toml:"codec" envPrefix:"CODEC_"`
	Log      LogSettings      `toml:"log" envPrefix:"LOG_"`
}

// DefaultConfig returns a Config with every field at its default.
// The database path is left empty; callers choose where the file lives.
func DefaultConfig() Config {
	return Config{
		Database: DatabaseSettings{
			QueueSize:    DefaultQueueSize,
			PollInterval: DefaultPollInterval.String(),
			AutoQuit:     true,
		},
		Cache: CacheSettings{
			Capacity: DefaultCacheCapacity,
			Eviction: EvictionRandom,
		},
		Codec: CodecSettings{
			Opaque: OpaqueCodecGob,
		},
	}
}

// Poll returns the parsed poll interval, falling back to DefaultPollInterval.
func (c Config) Poll() time.Duration {
	d, err := time.ParseDuration(c.Database.PollInterval)
	if err != nil || d <= 0 {
		return DefaultPollInterval
	}
	return d
}

// Validate checks the configuration for values no component can work with.
func (c Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database path is required", ErrInvalidInput)
	}
	if c.Database.QueueSize <= 0 {
		return fmt.Errorf("%w: queue size must be positive, got %d", ErrInvalidInput, c.Database.QueueSize)
	}
	if c.Database.PollInterval != "" {
		if d, err := time.ParseDuration(c.Database.PollInterval); err != nil || d <= 0 {
			return fmt.Errorf("%w: invalid poll interval %q", ErrInvalidInput, c.Database.PollInterval)
		}
	}
	if c.Cache.Capacity <= 0 {
		return fmt.Errorf("%w: cache capacity must be positive, got %d", ErrInvalidInput, c.Cache.Capacity)
	}
	if !c.Cache.Eviction.IsValid() {
		return fmt.Errorf("%w: unknown eviction policy %q", ErrInvalidInput, c.Cache.Eviction)
	}
	if !c.Codec.Opaque.IsValid() {
		return fmt.Errorf("%w: unknown opaque codec %q", ErrInvalidInput, c.Codec.Opaque)
	}
	return nil
}
