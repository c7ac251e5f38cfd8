package iojson

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrTerminalInput is returned when input would be read from an interactive
// terminal instead of a file or pipe.
var ErrTerminalInput = errors.New("no input provided (stdin is a terminal); use -f flag or pipe JSON input")

// FileReader reads a JSON document from the --file flag or from stdin.
// Bytes are returned undecoded; callers decode with their own rules.
type FileReader struct {
	fileFlagValue string

	stdin      io.Reader
	isTerminal func() bool
}

// NewFileReader returns a FileReader bound to the process stdin.
func NewFileReader() *FileReader {
	return &FileReader{
		stdin:      os.Stdin,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	}
}

// WithStdin replaces stdin, treating it as a pipe. Used by tests.
func (fr *FileReader) WithStdin(r io.Reader) *FileReader {
	fr.stdin = r
	fr.isTerminal = func() bool { return false }
	return fr
}

func (fr *FileReader) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &fr.fileFlagValue,
	}
}

// Read returns the raw input bytes.
func (fr *FileReader) Read() ([]byte, error) {
	if fr.fileFlagValue != "" {
		data, err := os.ReadFile(fr.fileFlagValue)
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		return data, nil
	}

	if fr.isTerminal != nil && fr.isTerminal() {
		return nil, ErrTerminalInput
	}

	data, err := io.ReadAll(fr.stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}
