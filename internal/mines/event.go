package mines

type EventKind int8

const (
	StatusChanged EventKind = iota
	MarkChanged
)

func (k EventKind) String() string {
	if k == MarkChanged {
		return "mark"
	}
	return "status"
}

// Event describes one visible change to a cell. Cell holds the cell as it was
// when the operation that changed it returned.
type Event struct {
	Cell Cell
	Kind EventKind
}

// Observer is notified synchronously of every event produced by a [Game]
// operation, in the order the changes happened.
type Observer interface {
	CellChanged(Event)
}

type ObserverFunc func(Event)

// [ObserverFunc] implements [Observer]
func (f ObserverFunc) CellChanged(e Event) {
	f(e)
}

type change struct {
	pos  Position
	kind EventKind
}

type recorder struct {
	changes []change
}

func (r *recorder) record(c *Cell, kind EventKind) {
	if r == nil {
		return
	}
	r.changes = append(r.changes, change{pos: c.Position(), kind: kind})
}

func (r *recorder) flush(g *Grid) []Event {
	if r == nil || len(r.changes) == 0 {
		return nil
	}
	events := make([]Event, len(r.changes))
	for i, ch := range r.changes {
		events[i] = Event{Cell: *g.at(ch.pos), Kind: ch.kind}
	}
	r.changes = r.changes[:0]
	return events
}
