package session

// State is the playback state of a Session.
//
//	┌──────┐  Play (source + device acquired)  ┌──────────┐
//	│ Idle │ ─────────────────────────────────▶│ Sounding │
//	└──────┘ ◀───────────────────────────────── └──────────┘
//	           Stop, track end, Close
//
// Play while Sounding fails with ErrInvalidState. Stop while Idle is a no-op.
type State int

const (
	Idle State = iota
	Sounding
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Sounding:
		return "Sounding"
	default:
		return "Unknown"
	}
}
