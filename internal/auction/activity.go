package auction

// ActivityLimit is the number of entries the audit trail keeps.
const ActivityLimit = 50

// ActivityLog is a bounded ring buffer of committed actions. It is not
// synchronised on its own; the engine lock guards it.
type ActivityLog struct {
	entries []ActivityEntry
	next    int
	full    bool
}

// NewActivityLog creates an empty log holding at most capacity entries.
func NewActivityLog(capacity int) *ActivityLog {
	if capacity <= 0 {
		capacity = ActivityLimit
	}
	return &ActivityLog{entries: make([]ActivityEntry, capacity)}
}

// Append records an entry, overwriting the oldest one once the log is full.
func (l *ActivityLog) Append(e ActivityEntry) {
	l.entries[l.next] = e
	l.next = (l.next + 1) % len(l.entries)
	if l.next == 0 {
		l.full = true
	}
}

// Len returns the number of stored entries.
func (l *ActivityLog) Len() int {
	if l.full {
		return len(l.entries)
	}
	return l.next
}

// Entries returns a copy of the log, most recent first.
func (l *ActivityLog) Entries() []ActivityEntry {
	n := l.Len()
	out := make([]ActivityEntry, 0, n)
	for i := 1; i <= n; i++ {
		idx := (l.next - i + len(l.entries)) % len(l.entries)
		out = append(out, l.entries[idx])
	}
	return out
}

// Reset drops every entry.
func (l *ActivityLog) Reset() {
	clear(l.entries)
	l.next = 0
	l.full = false
}
