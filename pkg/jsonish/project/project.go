// Package project implements the output-format projection: walking a
// FieldType's referenced classes and enums into the insertion-ordered
// sequences a prompt renderer or schema-doc generator needs, without
// re-expanding a class that participates in a recursive cycle.
package project

import (
	"fmt"

	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
	"github.com/ormasoftchile/gert/pkg/jsonish/registry"
)

// Projection is the result of walking target against reg: every class
// and enum it transitively references, each effective (override-applied)
// definition listed once in first-encountered order, plus the subset of
// class names that participate in a recursive cycle.
type Projection struct {
	Classes   []registry.Class
	Enums     []registry.Enum
	Recursive map[string]bool
}

// Project implements spec.md §4.5 / §3.4 invariant 5: a depth-first,
// visit-once traversal of target's referenced classes/enums, grounded on
// the teacher's project.go walking a Runbook's Require graph the same
// way — collect names reachable from a root, never re-expand one seen
// before, and let the caller render cycles by name only.
func Project(target *ftype.FieldType, reg *registry.Registry) (Projection, error) {
	w := &walker{
		reg:       reg,
		seen:      make(map[string]bool),
		recursive: make(map[string]bool),
	}
	if err := w.visit(target, make(map[string]bool)); err != nil {
		return Projection{}, err
	}
	return Projection{Classes: w.classes, Enums: w.enums, Recursive: w.recursive}, nil
}

type walker struct {
	reg       *registry.Registry
	seen      map[string]bool
	classes   []registry.Class
	enums     []registry.Enum
	recursive map[string]bool
}

// visit walks t, tracking the active ancestor chain (path) to detect
// cycles; onStack holds the class names currently being expanded above
// this call, distinct from w.seen which holds every class/enum ever
// fully collected.
func (w *walker) visit(t *ftype.FieldType, onStack map[string]bool) error {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case ftype.KindEnum:
		return w.collectEnum(t.Name)
	case ftype.KindClass:
		return w.collectClass(t.Name, onStack)
	case ftype.KindList, ftype.KindOptional:
		return w.visit(t.Elem, onStack)
	case ftype.KindMap:
		if err := w.visit(t.Key, onStack); err != nil {
			return err
		}
		return w.visit(t.Value, onStack)
	case ftype.KindTuple:
		for _, item := range t.Items {
			if err := w.visit(item, onStack); err != nil {
				return err
			}
		}
		return nil
	case ftype.KindUnion:
		for _, choice := range t.Choices {
			if err := w.visit(choice, onStack); err != nil {
				return err
			}
		}
		return nil
	default:
		// Scalar/literal/media kinds reference nothing further.
		return nil
	}
}

func (w *walker) collectEnum(name string) error {
	if w.seen[enumKey(name)] {
		return nil
	}
	e, ok := w.reg.Enum(name)
	if !ok {
		return fmt.Errorf("project: registry has no enum named %q", name)
	}
	w.seen[enumKey(name)] = true
	w.enums = append(w.enums, e)
	return nil
}

func (w *walker) collectClass(name string, onStack map[string]bool) error {
	if onStack[name] {
		// Closing a recursive cycle: the class is already being expanded
		// higher up the call stack, so it is reported by name only,
		// never re-expanded here (spec.md §3.4 invariant 5).
		w.recursive[name] = true
		return nil
	}
	if w.seen[classKey(name)] {
		return nil
	}

	c, ok := w.reg.Class(name)
	if !ok {
		return fmt.Errorf("project: registry has no class named %q", name)
	}
	w.seen[classKey(name)] = true
	w.classes = append(w.classes, c)
	if w.reg.IsRecursiveCycle(name) {
		w.recursive[name] = true
	}

	onStack[name] = true
	defer delete(onStack, name)
	for _, f := range c.Fields {
		if err := w.visit(f.Type, onStack); err != nil {
			return err
		}
	}
	return nil
}

func enumKey(name string) string  { return "enum:" + name }
func classKey(name string) string { return "class:" + name }
