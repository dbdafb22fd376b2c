package cli

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/levelkit/pkg/errors"
)

// Exit codes returned by the levelkit binary.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2 // bad arguments or names
	ExitNoFolder    = 3 // no levels folder chosen, or it went away
	ExitBrokenRefs  = 4 // refs found broken references
	ExitInterrupted = 130
)

// ExitCode maps a command error onto the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupted
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidName:
		return ExitUsage
	case errors.ErrCodeNoRoot:
		return ExitNoFolder
	case errors.ErrCodeInvalidReference:
		return ExitBrokenRefs
	}
	return ExitFailure
}
