package pkg

import (
	"fmt"
	"io"
	"log"
	"os"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitLog sends the standard logger to dest with prefix. The terminal
// belongs to the UI, so an empty dest discards everything.
func InitLog(dest, prefix string) (io.Closer, error) {
	log.SetPrefix(prefix)

	if dest == "" {
		log.SetOutput(io.Discard)
		return nopCloser{}, nil
	}

	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	log.SetOutput(f)

	return f, nil
}
