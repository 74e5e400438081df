package parser

import "errors"

// Terminal-per-call failures surfaced by Finalize. Each is scoped to a single
// call id and never affects other in-flight calls.
var (
	ErrMalformedArguments = errors.New("malformed tool arguments")
	ErrMissingArgument    = errors.New("missing required argument")
	ErrUnknownTool        = errors.New("unknown tool name")
	ErrMalformedName      = errors.New("malformed dynamic tool name")
)
