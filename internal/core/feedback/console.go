package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// ConsoleResponder prompts the operator on the terminal using huh forms:
// a select when the request carries options, a free-text input otherwise.
type ConsoleResponder struct{}

// Respond implements Responder.
func (ConsoleResponder) Respond(ctx context.Context, req Request) (string, error) {
	if len(req.Options) > 0 {
		return runSelect(ctx, req)
	}
	return runInput(ctx, req)
}

func runSelect(ctx context.Context, req Request) (string, error) {
	opts := make([]huh.Option[string], 0, len(req.Options))
	for _, o := range req.Options {
		opts = append(opts, huh.NewOption(o, o))
	}

	// Pre-setting the value selects the default in the form.
	choice := req.Default

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title(req)).
				Description(req.Message).
				Options(opts...).
				Value(&choice),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return req.Default, nil
		}
		return "", err
	}
	return choice, nil
}

func runInput(ctx context.Context, req Request) (string, error) {
	var value string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(title(req)).
				Description(req.Message).
				Value(&value),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return req.Default, nil
		}
		return "", err
	}

	if strings.TrimSpace(value) == "" {
		return req.Default, nil
	}
	return value, nil
}

func title(req Request) string {
	return fmt.Sprintf("%s requested", strings.ToUpper(string(req.Kind)))
}
