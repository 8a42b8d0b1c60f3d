package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Prompter asks the user to pick one of a fixed set of choices.
type Prompter interface {
	// Ask prints the question and reads answers until one matches a choice.
	// An empty answer selects def. Choices are matched case-insensitively.
	Ask(question string, choices []string, def string) (string, error)
}

// StdinPrompter reads answers line by line, re-asking on invalid input.
type StdinPrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewStdinPrompter(in io.Reader, out io.Writer) *StdinPrompter {
	return &StdinPrompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (p *StdinPrompter) Ask(question string, choices []string, def string) (string, error) {
	questionColor := color.New(color.FgCyan, color.Bold)
	prompt := fmt.Sprintf("%s [%s] ", questionColor.Sprint(question), strings.Join(choices, "/"))

	for {
		_, _ = fmt.Fprint(p.out, prompt)

		line, err := p.reader.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("error reading answer: %w", err)
		}

		answer := strings.ToLower(strings.TrimSpace(line))
		if answer == "" {
			answer = def
		}
		for _, choice := range choices {
			if answer == strings.ToLower(choice) {
				return answer, nil
			}
		}
		PrintWarning(p.out, fmt.Sprintf("Please answer one of: %s", strings.Join(choices, ", ")))
	}
}
