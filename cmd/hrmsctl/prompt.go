package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"hrms-portal/internal/workflow"
)

// prompter asks confirmations on the terminal. A prompt that needs a reason
// reads one line; any other prompt expects y or yes.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) Confirm(ctx context.Context, pr workflow.Prompt) workflow.Decision {
	if ctx.Err() != nil {
		return workflow.Decision{}
	}

	if pr.Header != "" {
		fmt.Fprintf(p.out, "%s\n", pr.Header)
	}
	if pr.RequireReason {
		fmt.Fprintf(p.out, "%s ", pr.Message)
		line, err := p.readLine()
		if err != nil {
			return workflow.Decision{}
		}
		return workflow.Decision{Confirmed: true, Reason: line}
	}

	fmt.Fprintf(p.out, "%s [y/N] ", pr.Message)
	line, err := p.readLine()
	if err != nil {
		return workflow.Decision{}
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return workflow.Decision{Confirmed: true}
	}
	return workflow.Decision{}
}

// ask prints label and reads one trimmed line.
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	return p.readLine()
}

func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// reasonConfirmer answers every prompt with a reason given on the command
// line.
func reasonConfirmer(reason string) workflow.Confirmer {
	return workflow.ConfirmerFunc(func(context.Context, workflow.Prompt) workflow.Decision {
		return workflow.Decision{Confirmed: true, Reason: reason}
	})
}
