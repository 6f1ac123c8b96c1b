package main

// Exit codes shared by all commands.
const (
	ExitSuccess      = 0 // Success
	ExitError        = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError  = 2 // Configuration error (missing repository, invalid paths)
	ExitDataError    = 3 // Data error (integrity violation, malformed input)
	ExitExtractError = 4 // External extraction tool failed
	ExitLookupError  = 5 // External citation index unavailable or no match
)
