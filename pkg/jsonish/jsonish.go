// Package jsonish is the top-level entry point: parse permissive
// JSON-ish text into candidate value trees (package parse), coerce each
// candidate against a typed target and keep the best-scoring result
// (package coerce), and project a
// target's referenced classes/enums for prompt rendering (package
// project).
package jsonish

import (
	"github.com/ormasoftchile/gert/pkg/jsonish/coerce"
	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
	"github.com/ormasoftchile/gert/pkg/jsonish/parse"
	"github.com/ormasoftchile/gert/pkg/jsonish/project"
	"github.com/ormasoftchile/gert/pkg/jsonish/registry"
)

// ErrorKind re-exports coerce.ErrorKind at the package boundary so
// callers never need to import pkg/jsonish/coerce directly for the
// common path (spec.md §7's four result kinds).
type ErrorKind = coerce.ErrorKind

const (
	KindRecoverableFailure = coerce.KindRecoverableFailure
	KindUnresolvedUnion    = coerce.KindUnresolvedUnion
	KindFatal              = coerce.KindFatal
)

// BranchFailure re-exports coerce.BranchFailure.
type BranchFailure = coerce.BranchFailure

// ParseError is the structured failure parse_and_coerce returns when no
// candidate could be coerced (spec.md §7). It is a type alias of
// coerce.Error, which already carries Kind/Path/Message/Branches.
type ParseError = coerce.Error

// Flag and Warning re-export the coercer's diagnostic vocabulary.
type Flag = coerce.Flag
type Warning = coerce.Warning

// Options re-exports coerce.Options (spec.md §6.1).
type Options = coerce.Options

// ParseAndCoerce implements spec.md §6.1: parse raw into one or more
// candidate value trees, coerce each against target using reg, and
// return the best-scoring typed value plus the flags/warnings accumulated along
// the way. A non-nil error is always a *ParseError.
func ParseAndCoerce(raw string, target *ftype.FieldType, reg *registry.Registry, opt Options) (any, []Flag, []Warning, error) {
	target = ftype.NormalizeOptionalUnion(ftype.DistributeConstraints(target))

	v := parse.Parse(raw)
	result, err := coerce.Coerce(v, target, reg, nil, opt)
	if err != nil {
		return nil, nil, nil, err
	}

	flags := make([]Flag, 0, len(result.Flags))
	for f := range result.Flags {
		flags = append(flags, f)
	}
	return result.Value, flags, result.Warnings, nil
}

// ProjectOutputFormat implements spec.md §6.2: the set of classes/enums
// target transitively references, for rendering into a prompt's output-
// format instructions.
func ProjectOutputFormat(target *ftype.FieldType, reg *registry.Registry) (project.Projection, error) {
	return project.Project(target, reg)
}
