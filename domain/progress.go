package domain

// ProgressManager creates progress trackers for long-running tasks
type ProgressManager interface {
	// StartTask begins tracking a task with a description and total count
	StartTask(description string, total int) TaskProgress

	// IsInteractive reports whether progress is rendered to a terminal
	IsInteractive() bool

	// Close finishes all tracked tasks
	Close()
}

// TaskProgress tracks the progress of a single task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}
