// Package common provides shared utilities for the ucum toolkit.
//
// This package includes:
//   - Pointer helpers (String, Bool, Int, Float64, etc.); cmd/ucum uses
//     Float64/Float64Val for its optional --tolerance flag
package common
