package ell

import "ell/internal/runtime"

// ContractViolationError, Cancelled, and PoolExhaustedError are re-exported
// from internal/runtime by alias: the core package owns the behavior, this
// package owns the public name callers import and type-switch on.
type (
	ContractViolationError = runtime.ContractViolationError
	Cancelled              = runtime.Cancelled
	PoolExhaustedError     = runtime.PoolExhaustedError
)
