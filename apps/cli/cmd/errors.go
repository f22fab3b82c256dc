package cmd

import (
	"errors"
	"fmt"

	"github.com/abdul-hamid-achik/twitteroauth/packages/core/config"
	"github.com/abdul-hamid-achik/twitteroauth/packages/twitteroauth"
)

// exitError carries the process exit code for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func configError(err error) error {
	return &exitError{code: ExitConfigError, err: err}
}

func usageError(err error) error {
	return &exitError{code: ExitUsageError, err: err}
}

func usageErrorf(format string, args ...any) error {
	return usageError(fmt.Errorf(format, args...))
}

// statusError reports a non-2xx response whose body was already printed.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("server answered %d", e.code)
}

func exitCode(err error) int {
	var ee *exitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &ee):
		return ee.code
	case errors.Is(err, twitteroauth.ErrAuthentication):
		return ExitAuthError
	case errors.Is(err, twitteroauth.ErrTransport):
		return ExitNetworkError
	case errors.Is(err, twitteroauth.ErrFileNotFound):
		return ExitFileError
	case errors.Is(err, config.ErrMissingConsumer):
		return ExitConfigError
	default:
		return ExitAPIError
	}
}
