package cli

import "errors"

// CLI errors.
var (
	ErrInvalidFlag = errors.New("invalid flag value")
	ErrNotTerminal = errors.New("demo requires an interactive terminal")
)
