package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio implements IO over a reader and a writer
type Stdio struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewStdio returns IO bound to os.Stdin and os.Stdout
func NewStdio() IO {
	return NewStdioFrom(os.Stdin, os.Stdout)
}

// NewStdioFrom returns IO reading from r and writing to w
func NewStdioFrom(r io.Reader, w io.Writer) IO {
	s := &Stdio{in: bufio.NewReader(r), out: w}
	// Интерактивен только настоящий терминал, а не pipe или файл
	if f, ok := r.(*os.File); ok {
		s.interactive = term.IsTerminal(int(f.Fd()))
	}
	return s
}

func (s *Stdio) IsInteractive() bool {
	return s.interactive
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// ReadInput печатает prompt и читает одну строку без завершающих пробелов.
// Последняя строка без перевода строки тоже возвращается.
func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	input, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
