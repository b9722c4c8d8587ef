// Package types provides shared types and errors for the vdba library.
//
// This is a "leaf" package with no imports from other vdba packages,
// allowing it to be imported by any package without causing import cycles.
package types

import (
	"strconv"
	"strings"
)

// Consistency represents the Cassandra consistency level.
type Consistency uint16

// Common consistency levels matching gocql.
const (
	Any         Consistency = 0x00
	One         Consistency = 0x01
	Two         Consistency = 0x02
	Three       Consistency = 0x03
	Quorum      Consistency = 0x04
	All         Consistency = 0x05
	LocalQuorum Consistency = 0x06
	EachQuorum  Consistency = 0x07
	Serial      Consistency = 0x08
	LocalSerial Consistency = 0x09
	LocalOne    Consistency = 0x0A
)

// DefaultConsistency is the symbolic level used when a configuration
// leaves the read or write consistency empty.
const DefaultConsistency = "quorum"

// consistencyNames maps folded names (lowercase, underscores removed) to levels.
//
// Serial levels are deliberately absent: they only apply to lightweight
// transactions and are not accepted as read or write levels.
var consistencyNames = map[string]Consistency{
	"all":         All,
	"any":         Any,
	"eachquorum":  EachQuorum,
	"localone":    LocalOne,
	"localquorum": LocalQuorum,
	"one":         One,
	"quorum":      Quorum,
	"three":       Three,
	"two":         Two,
}

// ParseConsistency resolves a symbolic consistency name to its level.
//
// Matching is case-insensitive and ignores underscores, so "eachQuorum",
// "EACHQUORUM" and "EACH_QUORUM" all resolve to EachQuorum.
//
// Parameters:
//   - name: Symbolic consistency name
//
// Returns:
//   - Consistency: The resolved level
//   - error: *UnknownConsistencyError if the name is not recognized
//
// Example:
//
//	c, err := types.ParseConsistency("localQuorum")
//	if err != nil {
//	    return err
//	}
func ParseConsistency(name string) (Consistency, error) {
	if c, ok := consistencyNames[foldConsistencyName(name)]; ok {
		return c, nil
	}

	return 0, &UnknownConsistencyError{Name: name}
}

func foldConsistencyName(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", ""))
}

// String returns the canonical camelCase name of the consistency level.
func (c Consistency) String() string {
	switch c {
	case Any:
		return "any"
	case One:
		return "one"
	case Two:
		return "two"
	case Three:
		return "three"
	case Quorum:
		return "quorum"
	case All:
		return "all"
	case LocalQuorum:
		return "localQuorum"
	case EachQuorum:
		return "eachQuorum"
	case Serial:
		return "serial"
	case LocalSerial:
		return "localSerial"
	case LocalOne:
		return "localOne"
	default:
		return "consistency(" + strconv.Itoa(int(c)) + ")"
	}
}

// Operation identifies a query engine operation for metrics and logging.
type Operation string

const (
	// OpRun is a statement executed for its side effects.
	OpRun Operation = "run"
	// OpFind is a query collecting every row.
	OpFind Operation = "find"
	// OpFindOne is a query delivering at most one row.
	OpFindOne Operation = "find_one"
	// OpEach is a streaming row iteration.
	OpEach Operation = "each"
)

// String returns the operation name.
func (o Operation) String() string {
	return string(o)
}
