package formcheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// MessagePrefix starts every missing-field notification.
const MessagePrefix = "Required fields are empty: "

// Message formats the user-facing notification for outcome. Valid outcomes
// produce an empty string.
func Message(outcome Outcome) string {
	if outcome.Valid() {
		return ""
	}
	return MessagePrefix + strings.Join(outcome.Missing, ", ")
}

// Notifier surfaces a blocking message to whoever submitted the form.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, message string) error

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, message string) error {
	return f(ctx, message)
}

// WriterNotifier prints each message on its own line.
type WriterNotifier struct {
	W io.Writer
}

// Notify writes message followed by a newline.
func (n WriterNotifier) Notify(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.W == nil {
		return errors.New("formcheck: writer notifier has no writer")
	}
	_, err := fmt.Fprintln(n.W, message)
	return err
}

// LogNotifier records messages as warnings.
type LogNotifier struct {
	Logger *zap.Logger
	Form   string
}

// Notify logs message at warn level.
func (n LogNotifier) Notify(_ context.Context, message string) error {
	logger := n.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Warn(message, zap.String("form", n.Form))
	return nil
}

// Guard is the submission gate. It validates formID and, when fields are
// missing, sends a single notification listing all of them. proceed is true
// only for a valid form. Lookup errors are returned without notifying.
func Guard(ctx context.Context, v *Validator, notifier Notifier, formID string, required []string) (proceed bool, outcome Outcome, err error) {
	outcome, err = v.Validate(ctx, formID, required)
	if err != nil {
		return false, Outcome{}, err
	}
	if outcome.Valid() {
		return true, outcome, nil
	}
	if notifier != nil {
		if err := notifier.Notify(ctx, Message(outcome)); err != nil {
			return false, outcome, fmt.Errorf("formcheck: notify: %w", err)
		}
	}
	return false, outcome, nil
}
