package event

// Source is the producing side of a command sequence. Commands returns a
// channel with a single producer; the game loop is its only consumer and
// polls it without blocking.
type Source interface {
	Commands() <-chan Command
}

// ChanSource adapts a plain channel, mostly for tests and scripted input.
type ChanSource chan Command

func (s ChanSource) Commands() <-chan Command {
	return s
}

// Script returns a closed, buffered channel holding cmds in order.
func Script(cmds ...Command) ChanSource {
	s := make(ChanSource, len(cmds))
	for _, c := range cmds {
		s <- c
	}
	close(s)

	return s
}
