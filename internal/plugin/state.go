package plugin

// State is the observable phase of the most recent run.
type State int

const (
	Idle State = iota
	Running
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Done:
		return "done"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}
