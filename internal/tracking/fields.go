package tracking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/devtrack/engine/internal/models"
	appErr "github.com/devtrack/engine/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind is the decoded Go type of a mutable field.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindList
)

// Field is one entry of an entity's mutable-field table.
type Field[T any] struct {
	// Name is the storage name reported in change descriptions.
	Name string
	// Key is the request/response JSON key.
	Key  string
	Kind Kind
	get  func(*T) any
	set  func(*T, any)
}

func String[T any](name, key string, ptr func(*T) *string) Field[T] {
	return Field[T]{
		Name: name, Key: key, Kind: KindString,
		get: func(e *T) any { return *ptr(e) },
		set: func(e *T, v any) { *ptr(e) = v.(string) },
	}
}

func Int[T any](name, key string, ptr func(*T) *int) Field[T] {
	return Field[T]{
		Name: name, Key: key, Kind: KindInt,
		get: func(e *T) any { return *ptr(e) },
		set: func(e *T, v any) { *ptr(e) = v.(int) },
	}
}

func List[T any](name, key string, ptr func(*T) *models.StringList) Field[T] {
	return Field[T]{
		Name: name, Key: key, Kind: KindList,
		get: func(e *T) any {
			cur := *ptr(e)
			out := make(models.StringList, len(cur))
			copy(out, cur)
			return out
		},
		set: func(e *T, v any) { *ptr(e) = v.(models.StringList) },
	}
}

// Get reads the field's current value from e.
func (f Field[T]) Get(e *T) any { return f.get(e) }

// FieldSet is the static dispatch table of an entity's mutable fields.
type FieldSet[T any] struct {
	fields []Field[T]
	byName map[string]int
	byKey  map[string]int
}

func NewFieldSet[T any](fields ...Field[T]) *FieldSet[T] {
	s := &FieldSet[T]{
		fields: fields,
		byName: make(map[string]int, len(fields)),
		byKey:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		s.byName[f.Name] = i
		s.byKey[f.Key] = i
	}
	return s
}

// Lookup finds a field by storage name.
func (s *FieldSet[T]) Lookup(name string) (Field[T], bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field[T]{}, false
	}
	return s.fields[i], true
}

func (s *FieldSet[T]) resolve(key string) (Field[T], bool) {
	if i, ok := s.byKey[key]; ok {
		return s.fields[i], true
	}
	return s.Lookup(key)
}

// Names lists storage names in table order.
func (s *FieldSet[T]) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Normalize coerces every value in p to its field's Go type. Unknown fields and
// values of the wrong shape are validation errors.
func (s *FieldSet[T]) Normalize(p *Patch) (*Patch, error) {
	out := NewPatch()
	var err error
	p.Each(func(name string, value any) {
		if err != nil {
			return
		}
		f, ok := s.Lookup(name)
		if !ok {
			err = appErr.New(appErr.CodeInvalid, fmt.Sprintf("unknown field %q", name)).WithMeta("field", name)
			return
		}
		v, cerr := coerce(f.Kind, value)
		if cerr != nil {
			err = appErr.Wrap(cerr, appErr.CodeInvalid, fmt.Sprintf("invalid value for field %q", name)).WithMeta("field", name)
			return
		}
		out.Set(f.Name, v)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeJSON reads a JSON object into a Patch, keeping the body's key order.
// Keys may be JSON keys or storage names; keys outside the table are ignored
// the way read-only fields are.
func (s *FieldSet[T]) DecodeJSON(body []byte) (*Patch, error) {
	om := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(body, om); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, "invalid json object")
	}
	raw := NewPatch()
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		f, ok := s.resolve(pair.Key)
		if !ok {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(pair.Value))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInvalid, fmt.Sprintf("invalid value for field %q", f.Key)).WithMeta("field", f.Key)
		}
		raw.Set(f.Name, v)
	}
	return s.Normalize(raw)
}

// Apply writes the new value of each change onto e.
func (s *FieldSet[T]) Apply(e *T, changes []Change) {
	for _, c := range changes {
		if f, ok := s.Lookup(c.Field); ok {
			f.set(e, c.New)
		}
	}
}

func coerce(kind Kind, v any) (any, error) {
	switch kind {
	case KindString:
		switch s := v.(type) {
		case nil:
			return "", nil
		case string:
			return s, nil
		case *string:
			if s == nil {
				return "", nil
			}
			return *s, nil
		}
		return nil, fmt.Errorf("expected string, got %T", v)
	case KindInt:
		switch n := v.(type) {
		case int:
			return n, nil
		case int32:
			return int(n), nil
		case int64:
			return int(n), nil
		case float64:
			if n != math.Trunc(n) {
				return nil, fmt.Errorf("expected integer, got %v", n)
			}
			return int(n), nil
		case json.Number:
			i, err := n.Int64()
			if err != nil {
				return nil, fmt.Errorf("expected integer, got %s", n)
			}
			return int(i), nil
		}
		return nil, fmt.Errorf("expected integer, got %T", v)
	case KindList:
		switch l := v.(type) {
		case nil:
			return models.StringList{}, nil
		case models.StringList:
			return append(models.StringList{}, l...), nil
		case []string:
			return append(models.StringList{}, l...), nil
		case []any:
			out := make(models.StringList, 0, len(l))
			for _, item := range l {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("expected list of strings, found %T", item)
				}
				out = append(out, s)
			}
			return out, nil
		}
		return nil, fmt.Errorf("expected list of strings, got %T", v)
	}
	return nil, fmt.Errorf("unsupported field kind %d", kind)
}
