package export

// State is the export lifecycle position.
type State int32

const (
	Idle State = iota
	Preparing
	AwaitingImages
	Printing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Preparing:
		return "preparing"
	case AwaitingImages:
		return "awaiting-images"
	case Printing:
		return "printing"
	}
	return "unknown"
}
