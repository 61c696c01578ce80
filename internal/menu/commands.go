package menu

// Command is a numbered menu entry.
type Command int

const (
	CmdDisplay Command = iota + 1
	CmdToggle
	CmdStop
	CmdNext
	CmdPrevious
	CmdExit
	CmdShuffle
)

// menuOrder is the order entries are listed in; numbers stay as above.
var menuOrder = []Command{CmdDisplay, CmdToggle, CmdStop, CmdNext, CmdPrevious, CmdShuffle, CmdExit}

// Label returns the text shown next to the command number.
func (c Command) Label() string {
	switch c {
	case CmdDisplay:
		return "Display Playlist"
	case CmdToggle:
		return "Play/Stop Song"
	case CmdStop:
		return "Stop Song"
	case CmdNext:
		return "Next Song"
	case CmdPrevious:
		return "Previous Song"
	case CmdExit:
		return "Exit"
	case CmdShuffle:
		return "Display Shuffled Playlist"
	default:
		return ""
	}
}

// Valid reports whether c is a known command.
func (c Command) Valid() bool {
	return c >= CmdDisplay && c <= CmdShuffle
}
