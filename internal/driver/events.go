package driver

// Status is a per-file progress state for interactive front ends.
type Status uint8

const (
	StatusQueued Status = iota
	StatusChecking
	StatusClean
	StatusIssues
	StatusCached
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusChecking:
		return "checking"
	case StatusClean:
		return "clean"
	case StatusIssues:
		return "issues"
	case StatusCached:
		return "cached"
	case StatusError:
		return "error"
	}
	return ""
}

// Event is one progress update. Sends block, so the consumer must drain the
// channel until CheckDir returns.
type Event struct {
	File   string
	Status Status
}

func (o *Options) emit(file string, status Status) {
	if o.Events != nil {
		o.Events <- Event{File: file, Status: status}
	}
}
