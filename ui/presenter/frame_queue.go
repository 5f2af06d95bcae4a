package presenter

// FrameQueue defers visual writes to the next frame tick. Tasks posted
// between ticks run together, in order, when Flush is called; tasks posted
// while a flush is running wait for the following one. Not safe for
// concurrent use: post and flush from the Tk thread.
type FrameQueue struct {
	tasks []func()
	spare []func()
}

// NewFrameQueue returns an empty queue.
func NewFrameQueue() *FrameQueue { return &FrameQueue{} }

// Post queues task for the next Flush.
func (q *FrameQueue) Post(task func()) {
	if q == nil || task == nil {
		return
	}
	q.tasks = append(q.tasks, task)
}

// Pending reports how many tasks wait for the next Flush.
func (q *FrameQueue) Pending() int {
	if q == nil {
		return 0
	}
	return len(q.tasks)
}

// Flush runs the queued tasks FIFO and returns how many ran.
func (q *FrameQueue) Flush() int {
	if q == nil || len(q.tasks) == 0 {
		return 0
	}
	run := q.tasks
	q.tasks = q.spare[:0]
	for i, task := range run {
		task()
		run[i] = nil
	}
	q.spare = run[:0]
	return len(run)
}
