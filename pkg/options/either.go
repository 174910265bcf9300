package options

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrUnionMismatch is returned when a document value fits neither branch of an Either.
var ErrUnionMismatch = errors.New("value matches neither branch of union")

type eitherKind uint8

const (
	eitherNone eitherKind = iota
	eitherA
	eitherB
)

// Either holds exactly one of two alternative shapes. The zero value holds
// neither branch and is treated the same as an absent field.
type Either[A, B any] struct {
	a    A
	b    B
	kind eitherKind
}

// EitherA constructs an Either holding the first branch.
func EitherA[A, B any](value A) Either[A, B] {
	return Either[A, B]{a: value, kind: eitherA}
}

// EitherB constructs an Either holding the second branch.
func EitherB[A, B any](value B) Either[A, B] {
	return Either[A, B]{b: value, kind: eitherB}
}

// IsSet reports whether either branch holds a value.
func (e Either[A, B]) IsSet() bool {
	return e.kind != eitherNone
}

// A returns the first branch and whether it is the one set.
func (e Either[A, B]) A() (A, bool) {
	return e.a, e.kind == eitherA
}

// B returns the second branch and whether it is the one set.
func (e Either[A, B]) B() (B, bool) {
	return e.b, e.kind == eitherB
}

// MatchEither calls exactly one of the handlers. A nil or unset union goes to onNone.
func MatchEither[A, B, R any](e *Either[A, B], onNone func() R, onA func(A) R, onB func(B) R) R {
	if e == nil {
		return onNone()
	}
	switch e.kind {
	case eitherA:
		return onA(e.a)
	case eitherB:
		return onB(e.b)
	default:
		return onNone()
	}
}

// UnmarshalJSON decodes the first branch that accepts the value, trying A before B.
func (e *Either[A, B]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*e = Either[A, B]{}
		return nil
	}

	var a A
	if err := json.Unmarshal(data, &a); err == nil {
		*e = EitherA[A, B](a)
		return nil
	}

	var b B
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("%w: %s", ErrUnionMismatch, bytes.TrimSpace(data))
	}
	*e = EitherB[A, B](b)
	return nil
}

// MarshalJSON encodes whichever branch is set, or null.
func (e Either[A, B]) MarshalJSON() ([]byte, error) {
	switch e.kind {
	case eitherA:
		return json.Marshal(e.a)
	case eitherB:
		return json.Marshal(e.b)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalYAML decodes the first branch that accepts the node, trying A before B.
func (e *Either[A, B]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*e = Either[A, B]{}
		return nil
	}

	var a A
	if nodeFits[A](node) {
		if err := node.Decode(&a); err == nil {
			*e = EitherA[A, B](a)
			return nil
		}
	}

	var b B
	if !nodeFits[B](node) {
		return fmt.Errorf("%w: line %d", ErrUnionMismatch, node.Line)
	}
	if err := node.Decode(&b); err != nil {
		return fmt.Errorf("%w: line %d", ErrUnionMismatch, node.Line)
	}
	*e = EitherB[A, B](b)
	return nil
}

// nodeFits reports whether the node's resolved tag matches T, so that
// YAML 1.1 spellings such as "on" or "yes" stay strings and 1 stays a number.
func nodeFits[T any](node *yaml.Node) bool {
	var zero T
	switch any(zero).(type) {
	case bool:
		return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!bool"
	case string:
		return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str"
	default:
		return true
	}
}

// MarshalYAML encodes whichever branch is set, or null.
func (e Either[A, B]) MarshalYAML() (any, error) {
	switch e.kind {
	case eitherA:
		return e.a, nil
	case eitherB:
		return e.b, nil
	default:
		return nil, nil
	}
}
