// Package prompt is a synchronous question/answer layer over standard
// input, used by the interactive configuration flow.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/devlogdev/devlog/pkg/logger"
	"golang.org/x/term"
)

// Prompter asks questions on out and reads answers from in.
// The reader is buffered once, so multi-question flows never drop
// piped input between questions.
type Prompter struct {
	raw io.Reader
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		raw: in,
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Line asks for one line of input. An empty answer, or a read failure
// such as exhausted piped stdin, yields fallback.
func (p *Prompter) Line(label, fallback string) string {
	fmt.Fprintf(p.out, "%s: ", label)

	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		logger.Debug("Prompt read failed, using fallback: %v", err)
		fmt.Fprintln(p.out)
		return fallback
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return fallback
	}
	return answer
}

// Secret asks for sensitive input. On a terminal the answer is read
// without echo; otherwise it degrades to a plain line read so pipes and
// tests keep working. An empty answer yields fallback.
//
// ReadPassword reads the raw descriptor directly, so it only runs when
// no type-ahead is sitting in the buffered reader; a buffered line is
// consumed as the answer instead.
func (p *Prompter) Secret(label, fallback string) string {
	f, ok := p.raw.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) || p.in.Buffered() > 0 {
		return p.Line(label, fallback)
	}

	fmt.Fprintf(p.out, "%s: ", label)
	raw, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(p.out) // ReadPassword swallows the user's newline
	if err != nil {
		logger.Debug("Masked prompt read failed, using fallback: %v", err)
		return fallback
	}

	answer := strings.TrimSpace(string(raw))
	if answer == "" {
		return fallback
	}
	return answer
}

// YesNo asks a yes/no question. Answers starting with "n" mean no and
// "y" mean yes; an empty or unrecognized answer follows def.
func (p *Prompter) YesNo(label string, def bool) bool {
	suffix := "[Y/n]"
	if !def {
		suffix = "[y/N]"
	}
	fmt.Fprintf(p.out, "%s %s: ", label, suffix)

	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		logger.Debug("Prompt read failed, using default: %v", err)
		fmt.Fprintln(p.out)
		return def
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	switch {
	case answer == "":
		return def
	case strings.HasPrefix(answer, "n"):
		return false
	case strings.HasPrefix(answer, "y"):
		return true
	default:
		return def
	}
}
