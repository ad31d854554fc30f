// Package session runs the interactive loop: it reads one line at a time,
// applies commands to the session state and dispatches everything else as a
// user turn.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/baalimago/lockbot/internal/dispatch"
	"github.com/baalimago/lockbot/internal/models"
	"github.com/baalimago/lockbot/internal/utils"
)

const (
	helpText  = "I can help assess your physical security. Commands: 'help', 'exit', 'switch to <service>', 'set model <model>'."
	promptFmt = "[%v:%v] How can I assist you today? (Type 'exit', 'help', 'switch to <service>', or 'set model <model>'): "

	switchPrefix   = "switch to "
	setModelPrefix = "set model "
	deepSearchWord = "trend"

	maxLineBytes = 1024 * 1024
)

// Dispatcher is what the loop needs from dispatch.Dispatcher.
type Dispatcher interface {
	Dispatch(ctx context.Context, req dispatch.Request) (string, error)
	Registry() *dispatch.Registry
}

// State is mutated only by the loop. Model always belongs to Service.
type State struct {
	Service dispatch.Service
	Model   string
	History models.History
}

type Loop struct {
	d     Dispatcher
	state State
	out   utils.Printer
}

// New validates the starting service and model. An empty model selects
// the default model of the service.
func New(d Dispatcher, service, model string, historyMax int, out utils.Printer) (*Loop, error) {
	svc, err := d.Registry().Lookup(service)
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = svc.DefaultModel()
	}
	if !svc.Supports(model) {
		return nil, fmt.Errorf("%w: model %v not supported for %v, options: %v", models.ErrUnsupportedModel, model, service, svc.Models)
	}
	return &Loop{
		d: d,
		state: State{
			Service: svc,
			Model:   model,
			History: models.NewHistory(historyMax),
		},
		out: out,
	}, nil
}

func (l *Loop) State() State {
	return l.state
}

// Banner is printed once, before the first prompt.
func (l *Loop) Banner() {
	l.out.Println(fmt.Sprintf("Starting with %v (model: %v)", l.state.Service.DisplayName(), l.state.Model))
	l.printServices()
}

func (l *Loop) printServices() {
	l.out.Table("Available services and models:", l.d.Registry().Describe())
}

// Run reads lines from in until exit, end of input or ctx is cancelled.
func (l *Loop) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.out.Prompt(fmt.Sprintf(promptFmt, l.state.Service.DisplayName(), l.state.Model))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			l.out.Println("")
			l.out.Println("Goodbye!")
			return nil
		}
		if l.Handle(ctx, scanner.Text()) {
			return nil
		}
	}
}

// Handle processes one line. It returns true when the session should end.
func (l *Loop) Handle(ctx context.Context, line string) bool {
	if err := utils.Validate(line); err != nil {
		l.out.Problem(err.Error())
		return false
	}
	lower := strings.ToLower(line)
	switch {
	case lower == "help":
		l.out.Println(helpText)
		l.printServices()
	case lower == "exit" || lower == "quit":
		l.out.Println("Goodbye!")
		return true
	case strings.HasPrefix(lower, switchPrefix):
		l.switchService(strings.TrimSpace(strings.TrimPrefix(lower, switchPrefix)))
	case strings.HasPrefix(lower, setModelPrefix):
		l.setModel(strings.TrimSpace(strings.TrimPrefix(lower, setModelPrefix)))
	default:
		l.turn(ctx, line)
	}
	return false
}

func (l *Loop) switchService(name string) {
	reg := l.d.Registry()
	svc, err := reg.Lookup(name)
	if err != nil {
		l.out.Problem(fmt.Sprintf("Service %v not recognized. Available: %v", name, reg.Names()))
		return
	}
	l.state.Service = svc
	l.state.Model = svc.DefaultModel()
	slog.Info("switched service", "service", svc.Name, "model", l.state.Model)
	l.out.Println(fmt.Sprintf("Switched to %v (model: %v)", svc.DisplayName(), l.state.Model))
}

func (l *Loop) setModel(model string) {
	svc := l.state.Service
	if !svc.Supports(model) {
		l.out.Problem(fmt.Sprintf("Model %v not available for %v. Options: %v", model, svc.Name, svc.Models))
		return
	}
	l.state.Model = model
	slog.Info("set model", "service", svc.Name, "model", model)
	l.out.Println(fmt.Sprintf("Model set to %v for %v", model, svc.DisplayName()))
}

// turn sends line to the current backend. The user message stays in the
// history even if the backend fails, the reply is only added on success.
func (l *Loop) turn(ctx context.Context, line string) {
	if !l.appendMessage(models.Message{Role: models.RoleUser, Content: line}) {
		return
	}
	deepSearch := strings.Contains(strings.ToLower(line), deepSearchWord)
	slog.Info("user input", "service", l.state.Service.Name, "model", l.state.Model, "deep_search", deepSearch, "length", len(line))

	reply, err := l.d.Dispatch(ctx, dispatch.Request{
		Prompt:     line,
		Service:    l.state.Service.Name,
		Model:      l.state.Model,
		DeepSearch: deepSearch,
		History:    l.state.History.Snapshot(),
	})
	if err != nil {
		l.out.Problem(fmt.Sprintf("Sorry, something went wrong: %v", err))
		return
	}
	l.out.Reply(l.state.Service.DisplayName(), reply)
	l.appendMessage(models.Message{Role: models.RoleAssistant, Content: reply})
}

func (l *Loop) appendMessage(msg models.Message) bool {
	h, err := l.state.History.Append(msg)
	if err != nil {
		slog.Error("failed to append message", "error", err)
		return false
	}
	l.state.History = h.Trimmed()
	return true
}
