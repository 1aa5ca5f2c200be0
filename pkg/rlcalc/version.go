// Package rlcalc holds module-wide metadata for the rlcalc roll length
// calculator.
package rlcalc

// Version is the rlcalc release version.
const Version = "0.2.0"

// ModulePath is the Go module path, reported by the version command.
const ModulePath = "github.com/mesh-intelligence/rlcalc"
