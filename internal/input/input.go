// Package input reads interactive lines for the shell and confirmation prompts.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// ErrInterrupt is returned by ReadLine when the user presses ctrl+c.
var ErrInterrupt = readline.ErrInterrupt

// Reader reads one line after printing a prompt.
type Reader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// Basic reads lines from any io.Reader.
type Basic struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewBasic creates a Basic reader. Prompts go to out when it is non-nil.
func NewBasic(in io.Reader, out io.Writer) *Basic {
	return &Basic{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// ReadLine implements Reader. A final line without a newline is returned
// before io.EOF.
func (b *Basic) ReadLine(prompt string) (string, error) {
	if b.out != nil {
		fmt.Fprint(b.out, prompt)
	}
	line, err := b.reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close implements Reader.
func (b *Basic) Close() error { return nil }

// Readline reads lines from the terminal with editing and history.
type Readline struct {
	instance *readline.Instance
}

// NewReadline creates a terminal reader that keeps history in historyPath.
func NewReadline(historyPath string) (*Readline, error) {
	if historyPath != "" {
		if err := os.MkdirAll(filepath.Dir(historyPath), 0o700); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	instance, err := readline.NewEx(&readline.Config{
		Prompt:            "> ",
		HistoryFile:       historyPath,
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, err
	}
	return &Readline{instance: instance}, nil
}

// ReadLine implements Reader.
func (r *Readline) ReadLine(prompt string) (string, error) {
	r.instance.SetPrompt(prompt)
	return r.instance.Readline()
}

// Close implements Reader.
func (r *Readline) Close() error {
	if r == nil || r.instance == nil {
		return nil
	}
	return r.instance.Close()
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Open returns a Readline reader when stdin is a terminal and a Basic reader
// over stdin otherwise. The Basic reader is also returned, with the error,
// when readline cannot start.
func Open(historyPath string) (Reader, error) {
	if !IsTerminal(os.Stdin) {
		return NewBasic(os.Stdin, nil), nil
	}
	r, err := NewReadline(historyPath)
	if err == nil {
		return r, nil
	}
	return NewBasic(os.Stdin, os.Stdout), err
}

// Confirm asks a yes/no question. Only "y" and "yes" confirm; interrupt and
// end of input decline.
func Confirm(r Reader, prompt string) (bool, error) {
	line, err := r.ReadLine(prompt)
	if err != nil {
		if errors.Is(err, ErrInterrupt) || errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// SplitWords splits a shell line into words. Double quotes group words and
// are removed; an unterminated quote runs to the end of the line.
func SplitWords(line string) []string {
	var (
		words   []string
		current strings.Builder
		inQuote bool
		hasWord bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			hasWord = true
		case !inQuote && (r == ' ' || r == '\t'):
			if hasWord {
				words = append(words, current.String())
				current.Reset()
				hasWord = false
			}
		default:
			current.WriteRune(r)
			hasWord = true
		}
	}
	if hasWord {
		words = append(words, current.String())
	}
	return words
}
