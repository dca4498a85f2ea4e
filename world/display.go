package world

// MaxDisplayCommands caps the per-display pending command queue.
const MaxDisplayCommands = 1024

// DisplayQueue buffers packed graphics command words flushed from
// processors until the renderer drains them. Word layout is owned by the
// producer; the queue only enforces the cap.
type DisplayQueue struct {
	commands []uint64
}

// Len returns the number of pending commands.
func (q *DisplayQueue) Len() int { return len(q.commands) }

// CanAccept reports whether n more commands fit under the cap.
func (q *DisplayQueue) CanAccept(n int) bool {
	return len(q.commands)+n < MaxDisplayCommands
}

// Push appends one command word. Callers check CanAccept first; pushes
// past the cap are dropped.
func (q *DisplayQueue) Push(cmd uint64) {
	if len(q.commands) >= MaxDisplayCommands {
		return
	}
	q.commands = append(q.commands, cmd)
}

// Drain removes and returns all pending commands.
func (q *DisplayQueue) Drain() []uint64 {
	out := q.commands
	q.commands = nil
	return out
}

// Pending returns the queued commands without draining.
func (q *DisplayQueue) Pending() []uint64 { return q.commands }
