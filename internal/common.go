// Package internal holds types shared by the entropy coder packages that
// are not meant to be part of the public API.
//
// For performance reasons, these packages lack strong error checking and
// require that the caller ensure that strict invariants are kept.
package internal

import "runtime"

// Kind classifies the errors that the entropy coders can surface, per the
// error taxonomy every coder shares.
type Kind int

const (
	_ Kind = iota
	UnexpectedEOF
	MalformedHeader
	InconsistentRLE
	ProbabilityOverflow
	InternalInvariant
)

func (k Kind) String() string {
	switch k {
	case UnexpectedEOF:
		return "unexpected end of compressed data"
	case MalformedHeader:
		return "malformed block header"
	case InconsistentRLE:
		return "inconsistent run-length counts"
	case ProbabilityOverflow:
		return "renormalized frequencies do not sum to scale"
	case InternalInvariant:
		return "internal invariant violated"
	default:
		return "unknown error"
	}
}

// Error is the wrapper type for errors specific to this library. Every
// entropy coder aborts the current block by panicking with an Error and
// lets the caller recover it via Recover.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return "bwtc: " + e.Kind.String()
	}
	return "bwtc: " + e.Kind.String() + ": " + e.Msg
}

// Raise aborts the current block with the given error kind.
func Raise(k Kind, msg string) {
	panic(&Error{Kind: k, Msg: msg})
}

// Recover turns a panic raised by Raise (or a runtime error) into a regular
// error return, following the encode/decode entry point convention used by
// every coder in this module.
func Recover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}
