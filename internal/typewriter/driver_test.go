package typewriter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreyaw333/portfolio/internal/clock"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newFakeDriver(t *testing.T, cfg Config) (*Driver, *clock.FakeClock) {
	t.Helper()
	c := clock.Fake(epoch)
	d, err := New(cfg, WithClock(c))
	require.NoError(t, err)
	t.Cleanup(d.Close)
	return d, c
}

func TestNewRejectsEmptyPhrases(t *testing.T) {
	_, err := New(Config{})
	require.ErrorIs(t, err, ErrNoPhrases)

	_, err = New(Config{Phrases: []string{}})
	require.ErrorIs(t, err, ErrNoPhrases)
}

func TestNewRejectsNegativeIntervals(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"type", Config{Phrases: []string{"a"}, TypeInterval: -1}},
		{"delete", Config{Phrases: []string{"a"}, DeleteInterval: -time.Millisecond}},
		{"hold", Config{Phrases: []string{"a"}, Hold: -time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			require.ErrorIs(t, err, ErrNegativeInterval)
		})
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	d, err := New(Config{Phrases: []string{"a"}})
	require.NoError(t, err)

	cfg := d.Config()
	assert.Equal(t, 150*time.Millisecond, cfg.TypeInterval)
	assert.Equal(t, 75*time.Millisecond, cfg.DeleteInterval)
	assert.Equal(t, 2*time.Second, cfg.Hold)

	d, err = New(Config{Phrases: []string{"a"}, TypeInterval: 40 * time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, d.Config().DeleteInterval)

	d, err = New(Config{Phrases: []string{"a"}, TypeInterval: 1})
	require.NoError(t, err)
	assert.Equal(t, time.Duration(1), d.Config().DeleteInterval)
}

func TestNewCopiesPhrases(t *testing.T) {
	phrases := []string{"AB"}
	d, c := newFakeDriver(t, Config{Phrases: phrases, TypeInterval: 10 * time.Millisecond})
	phrases[0] = "ZZ"

	require.NoError(t, d.Start())
	c.Advance(10 * time.Millisecond)
	assert.Equal(t, "A", d.Text())
}

func TestDriverInitialState(t *testing.T) {
	d, c := newFakeDriver(t, Config{Phrases: []string{"Hi"}})
	assert.Equal(t, State{Mode: Growing}, d.Snapshot())
	assert.False(t, d.Running())
	assert.Equal(t, 0, c.PendingCount())
}

// The example trace: phrases ["Hi"], type 10ms, hold 20ms, delete 5ms.
func TestDriverTrace(t *testing.T) {
	d, c := newFakeDriver(t, Config{
		Phrases:        []string{"Hi"},
		TypeInterval:   10 * time.Millisecond,
		Hold:           20 * time.Millisecond,
		DeleteInterval: 5 * time.Millisecond,
	})
	require.NoError(t, d.Start())

	type step struct {
		at    time.Duration
		state State
	}
	steps := []step{
		{9 * time.Millisecond, State{Text: "", Index: 0, Mode: Growing}},
		{10 * time.Millisecond, State{Text: "H", Index: 0, Mode: Growing}},
		{20 * time.Millisecond, State{Text: "Hi", Index: 0, Mode: Holding}},
		{39 * time.Millisecond, State{Text: "Hi", Index: 0, Mode: Holding}},
		{40 * time.Millisecond, State{Text: "Hi", Index: 0, Mode: Shrinking}},
		{45 * time.Millisecond, State{Text: "H", Index: 0, Mode: Shrinking}},
		{50 * time.Millisecond, State{Text: "", Index: 0, Mode: Growing}},
		{59 * time.Millisecond, State{Text: "", Index: 0, Mode: Growing}},
		{60 * time.Millisecond, State{Text: "H", Index: 0, Mode: Growing}},
	}
	for _, s := range steps {
		c.Advance(epoch.Add(s.at).Sub(c.Now()))
		assert.Equal(t, s.state, d.Snapshot(), "at %v", s.at)
	}
}

// An empty phrase only holds; the next phrase starts typing right after.
func TestDriverEmptyPhraseTrace(t *testing.T) {
	d, c := newFakeDriver(t, Config{
		Phrases:        []string{"", "a"},
		TypeInterval:   10 * time.Millisecond,
		Hold:           20 * time.Millisecond,
		DeleteInterval: 5 * time.Millisecond,
	})
	assert.Equal(t, State{Index: 0, Mode: Holding}, d.Snapshot())
	require.NoError(t, d.Start())

	type step struct {
		at    time.Duration
		state State
	}
	steps := []step{
		{10 * time.Millisecond, State{Text: "", Index: 0, Mode: Holding}},
		{19 * time.Millisecond, State{Text: "", Index: 0, Mode: Holding}},
		{20 * time.Millisecond, State{Text: "", Index: 1, Mode: Growing}},
		{30 * time.Millisecond, State{Text: "a", Index: 1, Mode: Holding}},
		{50 * time.Millisecond, State{Text: "a", Index: 1, Mode: Shrinking}},
		{55 * time.Millisecond, State{Text: "", Index: 0, Mode: Holding}},
		{75 * time.Millisecond, State{Text: "", Index: 1, Mode: Growing}},
	}
	for _, s := range steps {
		c.Advance(epoch.Add(s.at).Sub(c.Now()))
		assert.Equal(t, s.state, d.Snapshot(), "at %v", s.at)
	}
}

func TestDriverOneTimerAtATime(t *testing.T) {
	d, c := newFakeDriver(t, Config{Phrases: []string{"AB", "C"}, TypeInterval: 10 * time.Millisecond})
	require.NoError(t, d.Start())
	require.NoError(t, d.Start())
	assert.Equal(t, 1, c.PendingCount())

	for i := 0; i < 50; i++ {
		c.Advance(5 * time.Millisecond)
		assert.Equal(t, 1, c.PendingCount())
	}
}

func TestDriverCloseStopsMutations(t *testing.T) {
	d, c := newFakeDriver(t, Config{Phrases: []string{"Software Developer"}, TypeInterval: 10 * time.Millisecond})
	require.NoError(t, d.Start())

	c.Advance(30 * time.Millisecond)
	before := d.Snapshot()
	require.Equal(t, "Sof", before.Text)

	d.Close()
	assert.Equal(t, 0, c.PendingCount())
	assert.False(t, d.Running())

	c.Advance(time.Minute)
	assert.Equal(t, before, d.Snapshot())

	require.ErrorIs(t, d.Start(), ErrClosed)
	require.ErrorIs(t, d.Reconfigure(Config{Phrases: []string{"x"}}), ErrClosed)
	d.Close()
}

func TestDriverStaleCallbackIsIgnored(t *testing.T) {
	d, c := newFakeDriver(t, Config{Phrases: []string{"AB"}, TypeInterval: 10 * time.Millisecond})
	require.NoError(t, d.Start())

	// A callback from an older generation that got past Timer.Stop.
	d.mu.Lock()
	stale := d.gen
	d.cancelLocked()
	d.scheduleLocked()
	d.mu.Unlock()

	d.tick(stale)
	assert.Equal(t, "", d.Text())

	c.Advance(10 * time.Millisecond)
	assert.Equal(t, "A", d.Text())
}

func TestDriverReconfigure(t *testing.T) {
	d, c := newFakeDriver(t, Config{Phrases: []string{"Fullstack"}, TypeInterval: 10 * time.Millisecond})
	require.NoError(t, d.Start())
	c.Advance(35 * time.Millisecond)
	require.Equal(t, "Ful", d.Text())

	require.NoError(t, d.Reconfigure(Config{Phrases: []string{"Data"}, TypeInterval: 20 * time.Millisecond}))
	assert.Equal(t, State{Mode: Growing}, d.Snapshot())
	assert.Equal(t, 1, c.PendingCount())

	// The old 10ms tick would have fired at 40ms.
	c.Advance(10 * time.Millisecond)
	assert.Equal(t, "", d.Text())
	c.Advance(10 * time.Millisecond)
	assert.Equal(t, "D", d.Text())
}

func TestDriverReconfigureInvalidKeepsState(t *testing.T) {
	d, c := newFakeDriver(t, Config{Phrases: []string{"AB"}, TypeInterval: 10 * time.Millisecond})
	require.NoError(t, d.Start())
	c.Advance(10 * time.Millisecond)

	require.ErrorIs(t, d.Reconfigure(Config{}), ErrNoPhrases)
	assert.Equal(t, "A", d.Text())
	c.Advance(10 * time.Millisecond)
	assert.Equal(t, "AB", d.Text())
}

func TestDriverReconfigureWhileStopped(t *testing.T) {
	d, c := newFakeDriver(t, Config{Phrases: []string{"AB"}})
	require.NoError(t, d.Reconfigure(Config{Phrases: []string{"C"}}))
	assert.Equal(t, 0, c.PendingCount())
	assert.Equal(t, []string{"C"}, d.Config().Phrases)
}

func TestDriverSubscribe(t *testing.T) {
	d, c := newFakeDriver(t, Config{Phrases: []string{"AB"}, TypeInterval: 10 * time.Millisecond})
	updates, cancel := d.Subscribe()
	defer cancel()

	assert.Equal(t, Initial([]string{"AB"}), <-updates)

	require.NoError(t, d.Start())
	c.Advance(10 * time.Millisecond)
	assert.Equal(t, State{Text: "A", Mode: Growing}, <-updates)

	// Unread updates collapse to the latest one.
	c.Advance(10 * time.Millisecond)
	c.Advance(2 * time.Second)
	assert.Equal(t, State{Text: "AB", Mode: Shrinking}, <-updates)

	select {
	case s := <-updates:
		t.Fatalf("unexpected extra state %+v", s)
	default:
	}
}

func TestDriverSubscribeCancel(t *testing.T) {
	d, c := newFakeDriver(t, Config{Phrases: []string{"AB"}, TypeInterval: 10 * time.Millisecond})
	updates, cancel := d.Subscribe()
	<-updates
	cancel()
	cancel()

	_, ok := <-updates
	assert.False(t, ok)

	require.NoError(t, d.Start())
	c.Advance(10 * time.Millisecond)
	assert.Equal(t, "A", d.Text())
}

func TestDriverCloseClosesSubscriptions(t *testing.T) {
	d, _ := newFakeDriver(t, Config{Phrases: []string{"AB"}})
	updates, cancel := d.Subscribe()
	<-updates

	d.Close()
	_, ok := <-updates
	assert.False(t, ok)
	cancel()

	late, _ := d.Subscribe()
	_, ok = <-late
	assert.False(t, ok)
}

func TestDriverRealClock(t *testing.T) {
	d, err := New(Config{Phrases: []string{"ok"}, TypeInterval: time.Millisecond, Hold: time.Hour})
	require.NoError(t, err)
	defer d.Close()

	updates, cancel := d.Subscribe()
	defer cancel()
	require.NoError(t, d.Start())

	deadline := time.After(5 * time.Second)
	for {
		select {
		case s := <-updates:
			if s.Mode == Holding {
				assert.Equal(t, "ok", s.Text)
				return
			}
		case <-deadline:
			t.Fatal("driver never reached Holding")
		}
	}
}
