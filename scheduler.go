package motor

// Scheduler batches per-node apply work into cycles. ScheduleApply registers
// apply to run once in the next cycle; further calls for the same node before
// that cycle runs are ignored.
type Scheduler interface {
	ScheduleApply(n *Node, apply func())
}

// applyTask is one queued apply call.
type applyTask struct {
	node  *Node
	apply func()
}

// FrameScheduler is the default Scheduler. Tasks are queued in the order
// they were first scheduled and run by RunCycle, usually once per frame from
// Scene.Update.
type FrameScheduler struct {
	queue   []applyTask
	pending map[*Node]struct{}
	running []applyTask
}

// NewFrameScheduler creates an empty FrameScheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{pending: make(map[*Node]struct{})}
}

// ScheduleApply implements Scheduler.
func (f *FrameScheduler) ScheduleApply(n *Node, apply func()) {
	if _, ok := f.pending[n]; ok {
		return
	}
	f.pending[n] = struct{}{}
	f.queue = append(f.queue, applyTask{node: n, apply: apply})
}

// Pending returns the number of tasks waiting for the next cycle.
func (f *FrameScheduler) Pending() int {
	return len(f.queue)
}

// RunCycle runs every queued task once and returns how many ran. Tasks
// scheduled while the cycle runs are deferred to the next cycle.
func (f *FrameScheduler) RunCycle() int {
	if len(f.queue) == 0 {
		return 0
	}
	// Swap buffers so applies that reschedule land in the next cycle.
	f.running, f.queue = f.queue, f.running[:0]
	clear(f.pending)
	for i := range f.running {
		f.running[i].apply()
	}
	ran := len(f.running)
	for i := range f.running {
		f.running[i] = applyTask{}
	}
	f.running = f.running[:0]
	return ran
}
