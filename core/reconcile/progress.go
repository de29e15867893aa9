package reconcile

import "fmt"

// Progress receives human-readable progress lines during a reload.
// A nil Progress discards everything.
type Progress func(message string)

// Logf formats and emits a progress line.
func (p Progress) Logf(format string, args ...any) {
	if p == nil {
		return
	}
	p(fmt.Sprintf(format, args...))
}

// Tee returns a Progress that forwards each line to p and then to next.
func (p Progress) Tee(next Progress) Progress {
	return func(message string) {
		if p != nil {
			p(message)
		}
		if next != nil {
			next(message)
		}
	}
}
