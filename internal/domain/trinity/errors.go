package trinity

import (
	"errors"
	"fmt"
)

// ErrDuplicateCheck indicates two check definitions share an id. This is an
// engine configuration mistake and must fail at startup, not at request time.
var ErrDuplicateCheck = errors.New("duplicate check id")

// ConfigError wraps catalog registration failures with the offending id.
type ConfigError struct {
	CheckID string
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("engine config: check %s: %v", e.CheckID, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
