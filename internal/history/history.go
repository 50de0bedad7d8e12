package history

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/chemical"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// DefaultCapacity is how many calculations a session keeps.
const DefaultCapacity = 10

var ErrNotFound = errors.New("history entry not found")

type Entry struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Name      string      `json:"name"`
	Input     tank.Input  `json:"input"`
	Output    tank.Output `json:"output"`
}

// Name labels a calculation the way saved entries are titled, e.g.
// "Aniline Tank - 14.634 m³/day".
func Name(in tank.Input) string {
	label := string(in.Chemical)
	if props, err := chemical.Lookup(in.Chemical); err == nil {
		label = props.Name
	}
	return fmt.Sprintf("%s Tank - %s m³/day", label, strconv.FormatFloat(in.DailyVolumeM3, 'f', -1, 64))
}

// History is a bounded list of saved calculations, newest first. It is
// safe for concurrent use.
type History struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
	clock    clockwork.Clock
}

func New(capacity int, clock clockwork.Clock) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &History{capacity: capacity, clock: clock}
}

// Add saves a calculation at the front, dropping the oldest entry once
// the history is full.
func (h *History) Add(in tank.Input, out tank.Output) Entry {
	e, _ := h.add(in, out)
	return e
}

// add reports whether an old entry was dropped to make room.
func (h *History) add(in tank.Input, out tank.Output) (Entry, bool) {
	e := Entry{
		ID:        uuid.NewString(),
		Timestamp: h.clock.Now(),
		Name:      Name(in),
		Input:     in,
		Output:    out,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append([]Entry{e}, h.entries...)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[:h.capacity]
		return e, true
	}
	return e, false
}

func (h *History) List() []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Get(id string) (Entry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, e := range h.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Clear removes every entry and reports how many there were.
func (h *History) Clear() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.entries)
	h.entries = nil
	return n
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}
