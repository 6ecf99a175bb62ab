// Package prompt wraps promptui for the interactive parts of quillctl:
// required-field input when flags are omitted and yes/no confirmation
// before destructive commands.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user cancels a prompt with Ctrl+C.
var ErrAborted = errors.New("aborted")

// IsAborted reports whether err means the user cancelled the prompt.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted) ||
		errors.Is(err, promptui.ErrInterrupt) ||
		errors.Is(err, promptui.ErrAbort)
}

// normalize folds promptui's interrupt/abort errors into ErrAborted so
// callers only have one cancellation error to check.
func normalize(err error) error {
	if err == nil {
		return nil
	}
	if IsAborted(err) {
		return ErrAborted
	}
	return err
}

// Input asks for a line of text. An empty answer returns defaultValue.
func Input(label, defaultValue string) (string, error) {
	p := promptui.Prompt{
		Label:   label,
		Default: defaultValue,
	}
	answer, err := p.Run()
	return answer, normalize(err)
}

// InputRequired asks for a line of text and re-prompts until the answer
// is non-empty.
func InputRequired(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", strings.ToLower(label))
			}
			return nil
		},
	}
	answer, err := p.Run()
	return answer, normalize(err)
}

// Confirm asks a yes/no question, defaulting to no. Answering "n" (or
// just pressing Enter) returns false without an error; Ctrl+C returns
// ErrAborted.
func Confirm(label string) (bool, error) {
	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	answer, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			// "n" or empty answer, a normal refusal.
			return false, nil
		}
		return false, normalize(err)
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// ConfirmWithForce skips the prompt when force is set. Used by delete
// commands honoring --force.
func ConfirmWithForce(label string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	return Confirm(label)
}
