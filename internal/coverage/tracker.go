package coverage

// Data maps source files to the set of line numbers observed covered.
type Data map[string]map[int]bool

// Merge unions other into d. Existing entries are never overwritten,
// only extended.
func (d Data) Merge(other Data) {
	for file, lines := range other {
		set, ok := d[file]
		if !ok {
			set = make(map[int]bool, len(lines))
			d[file] = set
		}
		for line := range lines {
			set[line] = true
		}
	}
}

// Clone returns an independent copy of d.
func (d Data) Clone() Data {
	out := make(Data, len(d))
	out.Merge(d)
	return out
}

// Tracker is the coverage engine. It records line hits between Start
// and Stop calls; the live buffer is a single shared resource that the
// caller snapshots and resets between tests.
type Tracker struct {
	include map[string]bool
	sources []string
	active  bool
	live    Data

	lineCounts map[string]int
}

// New builds a tracker measuring the given source files. An empty
// source list is the engine-unavailable case: New returns nil, and
// every method on a nil tracker is a silent no-op.
func New(sources []string) *Tracker {
	if len(sources) == 0 {
		return nil
	}
	include := make(map[string]bool, len(sources))
	for _, s := range sources {
		include[s] = true
	}
	return &Tracker{
		include:    include,
		sources:    append([]string(nil), sources...),
		live:       Data{},
		lineCounts: map[string]int{},
	}
}

// Start begins measurement.
func (t *Tracker) Start() {
	if t == nil {
		return
	}
	t.active = true
}

// Stop halts measurement; the live buffer keeps its contents until
// Reset.
func (t *Tracker) Stop() {
	if t == nil {
		return
	}
	t.active = false
}

// Record notes a line hit. Instrumented code calls it; hits outside a
// Start/Stop window or for files outside the include set are dropped.
func (t *Tracker) Record(file string, line int) {
	if t == nil || !t.active || !t.include[file] {
		return
	}
	set, ok := t.live[file]
	if !ok {
		set = map[int]bool{}
		t.live[file] = set
	}
	set[line] = true
}

// Snapshot returns a copy of the live buffer.
func (t *Tracker) Snapshot() Data {
	if t == nil {
		return nil
	}
	return t.live.Clone()
}

// Reset clears the live buffer so the next measurement starts clean.
func (t *Tracker) Reset() {
	if t == nil {
		return
	}
	t.live = Data{}
}
