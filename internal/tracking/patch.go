package tracking

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Patch is a set of proposed field values that remembers insertion order.
// Keys are storage field names ("name", "setup_steps"). A nil Patch is empty.
type Patch struct {
	values *orderedmap.OrderedMap[string, any]
}

func NewPatch() *Patch {
	return &Patch{values: orderedmap.New[string, any]()}
}

// Set adds or replaces a value. Replacing keeps the key's original position.
func (p *Patch) Set(field string, value any) *Patch {
	p.values.Set(field, value)
	return p
}

func (p *Patch) Get(field string) (any, bool) {
	if p == nil {
		return nil, false
	}
	return p.values.Get(field)
}

func (p *Patch) Has(field string) bool {
	_, ok := p.Get(field)
	return ok
}

func (p *Patch) Len() int {
	if p == nil {
		return 0
	}
	return p.values.Len()
}

// Fields lists keys in insertion order.
func (p *Patch) Fields() []string {
	out := make([]string, 0, p.Len())
	p.Each(func(field string, _ any) { out = append(out, field) })
	return out
}

// Each visits entries in insertion order.
func (p *Patch) Each(fn func(field string, value any)) {
	if p == nil {
		return
	}
	for pair := p.values.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}
