package event

// Command is a discrete player intent delivered by an input source.
type Command int

const (
	CommandUnknown Command = iota
	CommandMoveLeft
	CommandMoveRight
	CommandSoftDrop
	CommandHardDrop
	CommandRotateCW
	CommandRotateCCW
	CommandQuit
)

func (c Command) String() string {
	switch c {
	case CommandMoveLeft:
		return "MoveLeft"
	case CommandMoveRight:
		return "MoveRight"
	case CommandSoftDrop:
		return "SoftDrop"
	case CommandHardDrop:
		return "HardDrop"
	case CommandRotateCW:
		return "Rotate"
	case CommandRotateCCW:
		return "RotateCCW"
	case CommandQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// CommandQueueSize is the buffer of the channel carrying commands from the
// input source to the game loop.
const CommandQueueSize = 64
