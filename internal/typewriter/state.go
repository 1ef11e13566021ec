package typewriter

import "fmt"

// Caret is drawn right after the text by every surface that shows it.
const Caret = "|"

// Mode is the phase of one phrase's animation cycle.
type Mode int

const (
	// Growing reveals one more rune per tick.
	Growing Mode = iota
	// Holding keeps the full phrase on screen for one hold period.
	Holding
	// Shrinking removes one rune per tick.
	Shrinking
)

func (m Mode) String() string {
	switch m {
	case Growing:
		return "growing"
	case Holding:
		return "holding"
	case Shrinking:
		return "shrinking"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// MarshalText lets Mode appear by name in JSON and logs.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// State is what the driver currently shows.
type State struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
	Mode  Mode   `json:"mode"`
}

// Initial is the state a driver over phrases starts in.
func Initial(phrases []string) State {
	return enter(phrases, 0)
}

// enter starts phrase i with nothing on screen. An empty phrase has
// nothing to type, so it goes straight to Holding.
func enter(phrases []string, i int) State {
	if i < len(phrases) && phrases[i] == "" {
		return State{Index: i, Mode: Holding}
	}
	return State{Index: i, Mode: Growing}
}

// Next applies one tick to s. phrases must be non-empty and s.Index in
// range; Next never produces a state that breaks either condition.
func Next(phrases []string, s State) State {
	phrase := []rune(phrases[s.Index])
	n := len([]rune(s.Text))

	switch s.Mode {
	case Growing:
		if n < len(phrase) {
			n++
			s.Text = string(phrase[:n])
		}
		if n == len(phrase) {
			s.Mode = Holding
		}
	case Holding:
		if n == 0 {
			return enter(phrases, (s.Index+1)%len(phrases))
		}
		s.Mode = Shrinking
	case Shrinking:
		if n > 0 {
			n--
			s.Text = string(phrase[:n])
		}
		if n == 0 {
			return enter(phrases, (s.Index+1)%len(phrases))
		}
	}
	return s
}

// CycleTicks is the number of ticks after which the sequence of states
// produced by Next repeats.
func CycleTicks(phrases []string) int {
	total := 0
	for _, p := range phrases {
		total += 2*len([]rune(p)) + 1
	}
	return total
}
