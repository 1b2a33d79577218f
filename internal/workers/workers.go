package workers

type Workers struct {
	workers []Worker
}

// NewWorkers aggregates the given workers. Order matters: Run starts them
// first to last, Stop stops them last to first.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
