package lane

// Lane serializes arbitrary work onto a single goroutine so callers never
// need their own locking around shared game state. Work is run in the
// order it is submitted; Run blocks the caller until its job has
// executed, matching §5's "lane blocks the requester until the handler
// returns".
type Lane struct {
	jobs chan func()
	done chan struct{}
}

// New starts the lane's worker goroutine. Call Close to stop it.
func New() *Lane {
	l := &Lane{
		jobs: make(chan func()),
		done: make(chan struct{}),
	}
	go l.loop()
	return l
}

func (l *Lane) loop() {
	for job := range l.jobs {
		job()
	}
	close(l.done)
}

// Run enqueues fn and blocks until it has executed. If Close has already
// been called, Run panics: no work may be submitted after shutdown.
func (l *Lane) Run(fn func()) {
	result := make(chan struct{})
	l.jobs <- func() {
		defer close(result)
		fn()
	}
	<-result
}

// Close drains any queued work and stops the worker goroutine. It blocks
// until the worker has exited.
func (l *Lane) Close() {
	close(l.jobs)
	<-l.done
}
