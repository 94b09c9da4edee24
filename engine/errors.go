package engine

import "github.com/pkg/errors"

// ErrContractViolation marks a call whose preconditions do not hold: a buffer
// that does not match its size, a size below 1, or a worker count below 1.
var ErrContractViolation = errors.New("engine: contract violation")

// ContractError describes which entry point rejected its input and why.
// errors.Is matches it against ErrContractViolation as well as the cause.
type ContractError struct {
	Op  string
	Err error
}

func (e *ContractError) Error() string {
	return ErrContractViolation.Error() + ": [" + e.Op + "] " + e.Err.Error()
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

func (e *ContractError) Is(target error) bool {
	return target == ErrContractViolation
}

var errNoWorkers = errors.New("worker count must be at least 1")

func violation(op string, err error) error {
	return &ContractError{Op: op, Err: err}
}
