package http

import "maps"

// Params are the name to value bindings produced by matching a request path
// against a route pattern.
type Params struct {
	values map[string]string
}

func NewParams() Params {
	return Params{values: make(map[string]string)}
}

func (p Params) Get(name string) (string, bool) {
	v, ok := p.values[name]
	return v, ok
}

func (p Params) Set(name, value string) {
	p.values[name] = value
}

func (p Params) Len() int {
	return len(p.values)
}

// All returns a copy of every binding.
func (p Params) All() map[string]string {
	return maps.Clone(p.values)
}
