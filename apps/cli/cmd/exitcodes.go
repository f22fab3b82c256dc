package cmd

// Exit codes for the twitteroauth CLI
const (
	// ExitSuccess indicates the call succeeded with a 2xx status
	ExitSuccess = 0

	// ExitAPIError indicates the server answered with a non-2xx status
	ExitAPIError = 1

	// ExitAuthError indicates an OAuth handshake was rejected
	ExitAuthError = 2

	// ExitConfigError indicates missing or invalid configuration
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error
	ExitNetworkError = 4

	// ExitFileError indicates an upload file could not be read
	ExitFileError = 5

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
