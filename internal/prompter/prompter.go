package prompter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrInvalidChoice = errors.New("invalid choice")

type Prompter interface {
	Confirm(question string) (bool, error)
	Prompt(question string) (string, error)
	Choose(question string, options []string, def int) (int, error)
}

type TextPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *TextPrompter {
	return &TextPrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (p *TextPrompter) Confirm(q string) (bool, error) {
	if _, err := fmt.Fprintf(p.out, "%s [y/N]: ", q); err != nil {
		return false, err
	}

	resp, err := p.readLine()
	if err != nil {
		return false, err
	}

	r := strings.ToLower(resp)
	return r == "y" || r == "yes", nil
}

func (p *TextPrompter) Prompt(q string) (string, error) {
	if _, err := fmt.Fprint(p.out, q); err != nil {
		return "", err
	}
	return p.readLine()
}

// Choose lists options numbered from 1 and returns the picked index.
// An empty answer selects def.
func (p *TextPrompter) Choose(q string, options []string, def int) (int, error) {
	if def < 0 || def >= len(options) {
		return 0, fmt.Errorf("default %d out of range: %w", def, ErrInvalidChoice)
	}

	if _, err := fmt.Fprintln(p.out, q); err != nil {
		return 0, err
	}
	for i, o := range options {
		mark := " "
		if i == def {
			mark = "*"
		}
		if _, err := fmt.Fprintf(p.out, " %s %d) %s\n", mark, i+1, o); err != nil {
			return 0, err
		}
	}
	if _, err := fmt.Fprintf(p.out, "Choice [%d]: ", def+1); err != nil {
		return 0, err
	}

	resp, err := p.readLine()
	if err != nil {
		return 0, err
	}
	if resp == "" {
		return def, nil
	}

	n, err := strconv.Atoi(resp)
	if err != nil || n < 1 || n > len(options) {
		return 0, fmt.Errorf("%q: %w", resp, ErrInvalidChoice)
	}
	return n - 1, nil
}

// readLine accepts a last line without newline at EOF.
func (p *TextPrompter) readLine() (string, error) {
	resp, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && resp != "") {
		return "", err
	}
	return strings.TrimSpace(resp), nil
}
