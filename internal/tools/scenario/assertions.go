package scenario

import (
	"errors"
	"fmt"
	"log"
)

// ErrExpectationFailed marks a scenario expectation that did not hold.
var ErrExpectationFailed = errors.New("expectation failed")

// AssertionMode controls how failed expectations are reported.
type AssertionMode int

const (
	// AssertionStrict fails the scenario on the first unmet expectation.
	AssertionStrict AssertionMode = iota
	// AssertionLogOnly logs unmet expectations and keeps going.
	AssertionLogOnly
)

// Assertions reports expectations according to Mode.
type Assertions struct {
	Mode   AssertionMode
	Logger *log.Logger
}

// Failf returns an error regardless of mode. It is for broken scenarios rather
// than unmet expectations.
func (a Assertions) Failf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Assertf reports an unmet expectation.
func (a Assertions) Assertf(format string, args ...any) error {
	message := fmt.Sprintf(format, args...)
	if a.Mode == AssertionLogOnly {
		if a.Logger != nil {
			a.Logger.Printf("expectation: %s", message)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrExpectationFailed, message)
}
