package coerce

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
	"github.com/ormasoftchile/gert/pkg/jsonish/parse"
	"github.com/ormasoftchile/gert/pkg/jsonish/registry"
)

// coerceClass implements §4.2.8.
func (c *ctx) coerceClass(v *parse.Value, t *ftype.FieldType, path Path) (Result, error) {
	cls, ok := c.reg.Class(t.Name)
	if !ok {
		return Result{}, fatal(path, "registry has no class named %q", t.Name)
	}

	if v.Kind == parse.VObject {
		return c.coerceClassFromObject(v, cls, path)
	}
	return c.coerceClassWrapped(v, cls, path)
}

func (c *ctx) coerceClassFromObject(v *parse.Value, cls registry.Class, path Path) (Result, error) {
	r := newResult(nil, 0)
	applyParseFlags(&r, v.Flags)

	lookup := make(map[string]*parse.Value)
	for _, kv := range v.ObjectPairs() {
		lookup[strings.ToLower(kv.Key)] = kv.Value
	}
	used := make(map[string]bool)

	fields := orderedmap.New[string, any]()
	for _, f := range cls.Fields {
		raw, present, key := findField(lookup, f)
		if present {
			used[key] = true
			fieldResult, err := c.coerce(raw, f.Type, path.Push(f.Name))
			if err != nil {
				if f.Type.AllowsNull() {
					fields.Set(f.Name, nil)
					r.addWarning(path, "field "+f.Name+" present but uncoercible, defaulted to null: "+err.Error())
					continue
				}
				return Result{}, err
			}
			fields.Set(f.Name, fieldResult.Value)
			r.merge(fieldResult)
			continue
		}

		if f.Type.AllowsNull() {
			fields.Set(f.Name, nil)
			continue
		}
		if c.opt.AllowPartial {
			fields.Set(f.Name, nil)
			r.addFlag(FlagDefaultSynthesized)
			r.Score += WeightImplicitPerLevel
			r.addWarning(path, "required field "+f.Name+" missing, defaulted to null")
			continue
		}
		return Result{}, recoverableFailure(path.Push(f.Name), "required field %q missing from object", f.Name)
	}

	extra := 0
	for lower := range lookup {
		if !used[lower] {
			extra++
		}
	}
	if extra > 0 {
		r.addFlag(FlagExtraKeys)
		r.Score += WeightExtraKeys * extra
		r.addWarning(path, "object has keys not matched by any field of class "+cls.Name)
	}

	r.Value = ClassValue{ClassName: cls.Name, Fields: fields}
	return r, nil
}

// findField resolves f's present value in lookup by name, then alias,
// case-insensitively, reporting the matched lowercase key so callers
// can track which input keys were consumed.
func findField(lookup map[string]*parse.Value, f registry.ClassField) (*parse.Value, bool, string) {
	if v, ok := lookup[strings.ToLower(f.Name)]; ok {
		return v, true, strings.ToLower(f.Name)
	}
	if f.Alias != "" {
		if v, ok := lookup[strings.ToLower(f.Alias)]; ok {
			return v, true, strings.ToLower(f.Alias)
		}
	}
	return nil, false, ""
}

// coerceClassWrapped implements §4.2.8 bullets 2-3: a non-object source
// wraps into the class's sole required field, or its sole
// string-compatible field when the source is a String.
func (c *ctx) coerceClassWrapped(v *parse.Value, cls registry.Class, path Path) (Result, error) {
	if idx, ok := soleRequiredField(cls.Fields); ok {
		return c.wrapClassField(v, cls, idx, path)
	}
	if v.Kind == parse.VString {
		if idx, ok := soleStringCompatibleField(cls.Fields); ok {
			return c.wrapClassField(v, cls, idx, path)
		}
	}
	return Result{}, recoverableFailure(path, "cannot wrap %s into class %q: no single field to target", valueKindName(v), cls.Name)
}

func (c *ctx) wrapClassField(v *parse.Value, cls registry.Class, idx int, path Path) (Result, error) {
	target := cls.Fields[idx]
	fieldResult, err := c.coerce(v, target.Type, path.Push(target.Name))
	if err != nil {
		return Result{}, err
	}

	fields := orderedmap.New[string, any]()
	for i, f := range cls.Fields {
		if i == idx {
			fields.Set(f.Name, fieldResult.Value)
			continue
		}
		fields.Set(f.Name, nil)
	}

	r := newResult(nil, 0)
	r.merge(fieldResult)
	r.addFlag(FlagImplicitWrap)
	r.Score += WeightObjectToScalar
	r.Value = ClassValue{ClassName: cls.Name, Fields: fields}
	return r, nil
}

func soleRequiredField(fields []registry.ClassField) (int, bool) {
	idx, count := -1, 0
	for i, f := range fields {
		if !f.Type.AllowsNull() {
			idx, count = i, count+1
		}
	}
	if count == 1 {
		return idx, true
	}
	return 0, false
}

func soleStringCompatibleField(fields []registry.ClassField) (int, bool) {
	idx, count := -1, 0
	for i, f := range fields {
		t := f.Type
		for t.Kind == ftype.KindOptional {
			t = t.Elem
		}
		if t.Kind == ftype.KindString {
			idx, count = i, count+1
		}
	}
	if count == 1 {
		return idx, true
	}
	return 0, false
}
