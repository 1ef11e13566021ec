package typewriter

import (
	"errors"
	"slices"
	"time"
)

// Defaults used when a Config leaves a duration at zero.
const (
	DefaultTypeInterval = 150 * time.Millisecond
	DefaultHold         = 2 * time.Second
)

var (
	ErrNoPhrases        = errors.New("typewriter: phrase list must not be empty")
	ErrNegativeInterval = errors.New("typewriter: intervals must not be negative")
	ErrClosed           = errors.New("typewriter: driver is closed")
)

// Config describes what a Driver types and how fast.
type Config struct {
	Phrases []string

	// TypeInterval is the delay between revealed characters.
	TypeInterval time.Duration
	// DeleteInterval is the delay between removed characters. Zero means
	// half of TypeInterval.
	DeleteInterval time.Duration
	// Hold is how long a fully typed phrase stays before deletion starts.
	Hold time.Duration
}

// Validate reports configuration errors without applying defaults.
func (c Config) Validate() error {
	if len(c.Phrases) == 0 {
		return ErrNoPhrases
	}
	if c.TypeInterval < 0 || c.DeleteInterval < 0 || c.Hold < 0 {
		return ErrNegativeInterval
	}
	return nil
}

// normalize validates c and returns a private copy with defaults filled in.
func (c Config) normalize() (Config, error) {
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	out := Config{
		Phrases:        slices.Clone(c.Phrases),
		TypeInterval:   c.TypeInterval,
		DeleteInterval: c.DeleteInterval,
		Hold:           c.Hold,
	}
	if out.TypeInterval == 0 {
		out.TypeInterval = DefaultTypeInterval
	}
	if out.DeleteInterval == 0 {
		out.DeleteInterval = out.TypeInterval / 2
		if out.DeleteInterval == 0 {
			out.DeleteInterval = out.TypeInterval
		}
	}
	if out.Hold == 0 {
		out.Hold = DefaultHold
	}
	return out, nil
}

// Delay returns how long the driver waits in mode m before the next tick.
func (c Config) Delay(m Mode) time.Duration {
	switch m {
	case Holding:
		return c.Hold
	case Shrinking:
		return c.DeleteInterval
	default:
		return c.TypeInterval
	}
}
