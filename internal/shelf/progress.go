package shelf

import "fmt"

// Progress is a snapshot of reading percentages.
type Progress struct {
	completed  int
	toRead     int
	inProgress int
}

func NewProgress(completed, toRead, inProgress int) Progress {
	return Progress{completed: completed, toRead: toRead, inProgress: inProgress}
}

// NotStarted is the progress of an empty shelf.
func NotStarted() Progress {
	return Progress{}
}

func (p Progress) Completed() int  { return p.completed }
func (p Progress) ToRead() int     { return p.toRead }
func (p Progress) InProgress() int { return p.inProgress }

func (p Progress) String() string {
	return fmt.Sprintf("completed=%d%% in_progress=%d%% to_read=%d%%", p.completed, p.inProgress, p.toRead)
}

// Progress computes each percentage on its own with truncating integer
// division, so the three values can add up to less than 100.
func (s *Shelf) Progress() Progress {
	total := len(s.books)
	if total == 0 {
		return NotStarted()
	}

	var read, inProgress int
	for _, b := range s.books {
		switch {
		case b.IsRead():
			read++
		case b.IsInProgress():
			inProgress++
		}
	}
	toRead := total - read - inProgress

	return Progress{
		completed:  read * 100 / total,
		toRead:     toRead * 100 / total,
		inProgress: inProgress * 100 / total,
	}
}
