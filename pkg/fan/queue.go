package fan

// taskQueue serializes completions, timers and redraws. Everything that
// mutates the item tables outside a direct API call runs as a task, and the
// pending redraw runs only once no task is left.
type taskQueue struct {
	tasks    []func()
	redraw   bool
	posted   bool
	draining bool
}

func (f *Fan) enqueue(fn func()) {
	f.queue.tasks = append(f.queue.tasks, fn)
	f.schedule()
}

// Redraw requests a redraw. Requests made before the next tick coalesce into
// one redraw that diffs the collection as it is when the redraw runs.
func (f *Fan) Redraw() {
	f.queue.redraw = true
	f.schedule()
}

func (f *Fan) schedule() {
	if f.queue.posted || f.queue.draining {
		return
	}
	f.queue.posted = true
	f.env.Scheduler.Post(f.drain)
}

// Flush runs all queued tasks and any pending redraw immediately.
func (f *Fan) Flush() {
	f.drain()
}

func (f *Fan) drain() {
	if f.queue.draining {
		return
	}
	f.queue.posted = false
	f.queue.draining = true
	defer func() { f.queue.draining = false }()

	for {
		if len(f.queue.tasks) > 0 {
			t := f.queue.tasks[0]
			f.queue.tasks[0] = nil
			f.queue.tasks = f.queue.tasks[1:]
			t()
			continue
		}
		if f.queue.redraw {
			f.queue.redraw = false
			f.redraw()
			continue
		}
		return
	}
}

// Pending reports whether tasks or a redraw are waiting.
func (f *Fan) Pending() bool {
	return len(f.queue.tasks) > 0 || f.queue.redraw
}
