package ucum

import (
	"errors"
	"fmt"
)

// Sentinel errors identify the failure kind; wrap with UnitError to attach
// the offending unit expression (sentinel + wrapper struct + Unwrap).
var (
	ErrRegistryMiss            = errors.New("ucum: unknown unit atom")
	ErrIncompatibleDimensions  = errors.New("ucum: incompatible dimensions")
	ErrDomainViolation         = errors.New("ucum: value outside special function domain")
	ErrSpecialUnitArithmetic   = errors.New("ucum: arithmetic not allowed on special units")
	ErrArbitraryUnitConversion = errors.New("ucum: conversion or arithmetic not allowed between arbitrary units")
	ErrDivisionByZero          = errors.New("ucum: division by zero")
	ErrInvalidUnit             = errors.New("ucum: invalid or unparseable unit string")
	ErrSpecialCombination      = errors.New("ucum: cannot combine two special units")
	ErrSpecialUnderCompound    = errors.New("ucum: special unit cannot appear under exponent or compound expression")
)

// UnitError wraps a sentinel error with the unit expression that triggered
// it; errors.Is and errors.As see the sentinel through Unwrap.
type UnitError struct {
	Unit string
	Err  error
}

func (e *UnitError) Error() string {
	if e.Unit == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("unit %q: %v", e.Unit, e.Err)
}

func (e *UnitError) Unwrap() error {
	return e.Err
}

// wrapUnit returns a *UnitError around err naming unit, or nil if err is nil.
func wrapUnit(unit string, err error) error {
	if err == nil {
		return nil
	}
	return &UnitError{Unit: unit, Err: err}
}
