// Package registry resolves named classes and enums against their
// definitions, with runtime-injected alias/description/field overrides
// layered on top. It is build-once at schema load time and read-many
// during concurrent coercions, mirroring the teacher's tool Manager.
package registry

import (
	"fmt"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
)

// EnumValue is one named member of an Enum.
type EnumValue struct {
	Name        string
	Alias       string
	Description string
	Skip        bool
}

// Enum is a named set of values.
type Enum struct {
	Name   string
	Values []EnumValue
}

// ClassField is one field of a Class.
type ClassField struct {
	Name        string
	Alias       string
	Description string
	Type        *ftype.FieldType
}

// Class is a named flat record of fields.
type Class struct {
	Name   string
	Fields []ClassField
}

// Overrides is the runtime-injected view a TypeBuilder/ClientRegistry
// upstream collaborator would produce. The core only consumes this
// shape — it never implements override authoring itself.
type Overrides struct {
	NewFields      map[string][]ClassField
	UpdateFields   map[string]map[string]ClassField
	SkipEnumValues map[string][]string
	Aliases        map[string]string
	Descriptions   map[string]string
}

// Registry resolves class/enum names to their effective, override-applied
// definitions. Safe for concurrent readers once Seal()ed; mutation
// (AddClass/AddEnum) is expected to happen single-threaded during schema
// load, before Seal().
type Registry struct {
	mu        sync.RWMutex
	classes   *orderedmap.OrderedMap[string, Class]
	enums     *orderedmap.OrderedMap[string, Enum]
	overrides Overrides
	cycles    map[string]bool
	sealed    bool
}

// New creates an empty, unsealed registry.
func New() *Registry {
	return &Registry{
		classes: orderedmap.New[string, Class](),
		enums:   orderedmap.New[string, Enum](),
		cycles:  make(map[string]bool),
	}
}

// AddClass registers a class definition. Returns an error if the
// registry is already sealed or the name is already registered.
func (r *Registry) AddClass(c Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return fmt.Errorf("registry: cannot add class %q after Seal", c.Name)
	}
	if _, exists := r.classes.Get(c.Name); exists {
		return fmt.Errorf("registry: duplicate class %q", c.Name)
	}
	r.classes.Set(c.Name, c)
	return nil
}

// AddEnum registers an enum definition.
func (r *Registry) AddEnum(e Enum) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return fmt.Errorf("registry: cannot add enum %q after Seal", e.Name)
	}
	if _, exists := r.enums.Get(e.Name); exists {
		return fmt.Errorf("registry: duplicate enum %q", e.Name)
	}
	r.enums.Set(e.Name, e)
	return nil
}

// WithOverrides returns a new effective Registry with o layered on top;
// it never mutates the receiver, matching the spec's "produces a new
// effective view rather than mutating the canonical one."
func (r *Registry) WithOverrides(o Overrides) *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clone := &Registry{
		classes:   r.classes,
		enums:     r.enums,
		overrides: o,
		cycles:    r.cycles,
		sealed:    r.sealed,
	}
	return clone
}

// Seal computes the finite_recursive_cycles set, self-validates the
// registry's effective shape, and forbids further AddClass/AddEnum calls.
func (r *Registry) Seal() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return nil
	}

	if err := validateNoCollisions(r.classes, r.enums); err != nil {
		return err
	}

	var classList []Class
	for pair := r.classes.Oldest(); pair != nil; pair = pair.Next() {
		classList = append(classList, pair.Value)
	}
	var enumList []Enum
	for pair := r.enums.Oldest(); pair != nil; pair = pair.Next() {
		enumList = append(enumList, pair.Value)
	}
	if err := validateShape(classList, enumList); err != nil {
		return err
	}

	r.cycles = computeCycles(r.classes)
	r.sealed = true
	return nil
}

// Class resolves name to its effective (override-applied) definition.
func (r *Registry) Class(name string) (Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes.Get(name)
	if !ok {
		return Class{}, false
	}
	return applyClassOverrides(c, r.overrides), true
}

// Enum resolves name to its effective (override-applied) definition.
func (r *Registry) Enum(name string) (Enum, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.enums.Get(name)
	if !ok {
		return Enum{}, false
	}
	return applyEnumOverrides(e, r.overrides), true
}

// IsRecursiveCycle reports whether name participates in a finite
// recursive cycle (spec's finite_recursive_cycles set).
func (r *Registry) IsRecursiveCycle(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cycles[name]
}

// Walk returns all classes and enums in insertion order, with overrides
// applied, for the output-format projection and debugging tools.
func (r *Registry) Walk() (classes []Class, enums []Enum) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for pair := r.classes.Oldest(); pair != nil; pair = pair.Next() {
		classes = append(classes, applyClassOverrides(pair.Value, r.overrides))
	}
	for pair := r.enums.Oldest(); pair != nil; pair = pair.Next() {
		enums = append(enums, applyEnumOverrides(pair.Value, r.overrides))
	}
	return classes, enums
}

func applyClassOverrides(c Class, o Overrides) Class {
	if len(o.UpdateFields) == 0 && len(o.NewFields) == 0 && len(o.Aliases) == 0 && len(o.Descriptions) == 0 {
		return c
	}

	updates := o.UpdateFields[c.Name]
	fields := make([]ClassField, 0, len(c.Fields))
	for _, f := range c.Fields {
		if u, ok := updates[f.Name]; ok {
			f = u
		}
		if alias, ok := o.Aliases[c.Name+"."+f.Name]; ok {
			f.Alias = alias
		}
		if desc, ok := o.Descriptions[c.Name+"."+f.Name]; ok {
			f.Description = desc
		}
		fields = append(fields, f)
	}
	fields = append(fields, o.NewFields[c.Name]...)

	return Class{Name: c.Name, Fields: fields}
}

func applyEnumOverrides(e Enum, o Overrides) Enum {
	skip := make(map[string]bool)
	for _, v := range o.SkipEnumValues[e.Name] {
		skip[v] = true
	}
	if len(skip) == 0 && len(o.Aliases) == 0 && len(o.Descriptions) == 0 {
		return e
	}

	values := make([]EnumValue, 0, len(e.Values))
	for _, v := range e.Values {
		if skip[v.Name] {
			v.Skip = true
		}
		if alias, ok := o.Aliases[e.Name+"."+v.Name]; ok {
			v.Alias = alias
		}
		if desc, ok := o.Descriptions[e.Name+"."+v.Name]; ok {
			v.Description = desc
		}
		values = append(values, v)
	}
	return Enum{Name: e.Name, Values: values}
}

func validateNoCollisions(classes *orderedmap.OrderedMap[string, Class], enums *orderedmap.OrderedMap[string, Enum]) error {
	for pair := classes.Oldest(); pair != nil; pair = pair.Next() {
		seen := make(map[string]bool)
		for _, f := range pair.Value.Fields {
			if seen[f.Name] {
				return fmt.Errorf("registry: class %q has duplicate field %q", pair.Key, f.Name)
			}
			seen[f.Name] = true
		}
	}
	for pair := enums.Oldest(); pair != nil; pair = pair.Next() {
		seen := make(map[string]bool)
		for _, v := range pair.Value.Values {
			if seen[v.Name] {
				return fmt.Errorf("registry: enum %q has duplicate value %q", pair.Key, v.Name)
			}
			seen[v.Name] = true
		}
	}
	return nil
}

// computeCycles returns the set of class names that participate in any
// mutual-reference cycle through Class-typed fields, following references
// through Optional/List/Map/Union/Tuple wrappers as well. Schema
// validation upstream has already rejected infinitely recursive,
// non-optional cycles, so every cycle found here is finite.
func computeCycles(classes *orderedmap.OrderedMap[string, Class]) map[string]bool {
	graph := make(map[string][]string)
	for pair := classes.Oldest(); pair != nil; pair = pair.Next() {
		var refs []string
		for _, f := range pair.Value.Fields {
			refs = append(refs, classRefs(f.Type)...)
		}
		graph[pair.Key] = refs
	}

	cycles := make(map[string]bool)
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int)

	var visit func(node string, stack []string)
	visit = func(node string, stack []string) {
		color[node] = gray
		stack = append(stack, node)
		for _, dep := range graph[node] {
			switch color[dep] {
			case white:
				if _, ok := graph[dep]; ok {
					visit(dep, stack)
				}
			case gray:
				// found a cycle: everything from dep's position in stack onward
				for i, s := range stack {
					if s == dep {
						for _, c := range stack[i:] {
							cycles[c] = true
						}
						break
					}
				}
			}
		}
		color[node] = black
	}

	for pair := classes.Oldest(); pair != nil; pair = pair.Next() {
		if color[pair.Key] == white {
			visit(pair.Key, nil)
		}
	}
	return cycles
}

// classRefs extracts the Class names t directly references, looking
// through List/Map/Union/Tuple/Optional wrappers but not into other
// classes (cycle detection only needs direct edges).
func classRefs(t *ftype.FieldType) []string {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case ftype.KindClass:
		return []string{t.Name}
	case ftype.KindList, ftype.KindOptional:
		return classRefs(t.Elem)
	case ftype.KindMap:
		return append(classRefs(t.Key), classRefs(t.Value)...)
	case ftype.KindUnion:
		var out []string
		for _, c := range t.Choices {
			out = append(out, classRefs(c)...)
		}
		return out
	case ftype.KindTuple:
		var out []string
		for _, c := range t.Items {
			out = append(out, classRefs(c)...)
		}
		return out
	default:
		return nil
	}
}
