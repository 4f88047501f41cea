package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.Database.Path = MemoryPath
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.Database.Path)
	assert.Equal(t, DefaultQueueSize, cfg.Database.QueueSize)
	assert.Equal(t, DefaultPollInterval, cfg.Poll())
	assert.True(t, cfg.Database.AutoQuit)
	assert.Equal(t, DefaultCacheCapacity, cfg.Cache.Capacity)
	assert.Equal(t, EvictionRandom, cfg.Cache.Eviction)
	assert.Equal(t, OpaqueCodecGob, cfg.Codec.Opaque)
	assert.False(t, cfg.Log.Verbose)
}

func TestConfig_Poll(t *testing.T) {
	cfg := validConfig()

	cfg.Database.PollInterval = "250ms"
	assert.Equal(t, 250*time.Millisecond, cfg.Poll())

	cfg.Database.PollInterval = "garbage"
	assert.Equal(t, DefaultPollInterval, cfg.Poll())

	cfg.Database.PollInterval = ""
	assert.Equal(t, DefaultPollInterval, cfg.Poll())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"empty path", func(c *Config) { c.Database.Path = "" }, true},
		{"zero queue", func(c *Config) { c.Database.QueueSize = 0 }, true},
		{"bad poll", func(c *Config) { c.Database.PollInterval = "soon" }, true},
		{"negative poll", func(c *Config) { c.Database.PollInterval = "-1s" }, true},
		{"empty poll uses default", func(c *Config) { c.Database.PollInterval = "" }, false},
		{"zero capacity", func(c *Config) { c.Cache.Capacity = 0 }, true},
		{"unknown eviction", func(c *Config) { c.Cache.Eviction = "fifo" }, true},
		{"lru", func(c *Config) { c.Cache.Eviction = EvictionLRU }, false},
		{"unknown codec", func(c *Config) { c.Codec.Opaque = "pickle" }, true},
		{"cbor", func(c *Config) { c.Codec.Opaque = OpaqueCodecCBOR }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "lru", EvictionLRU.String())
	assert.False(t, EvictionPolicy("").IsValid())
	assert.Equal(t, "cbor", OpaqueCodecCBOR.String())
	assert.False(t, OpaqueCodec("").IsValid())
}
