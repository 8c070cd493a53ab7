package calltrace

import (
	"reflect"
	"strings"
)

// selfNamespace is this package's import path. Components declared here are
// never selected.
var selfNamespace = reflect.TypeOf(Tracer{}).PkgPath()

// Selector decides once per component whether it is traced: the component's
// namespace must start with the prefix and its name must contain one of the
// fragments.
type Selector struct {
	prefix    string
	fragments []string
}

// NewSelector creates a Selector. Without fragments DefaultNameFragments apply.
// An empty prefix produces a Selector that matches nothing.
func NewSelector(prefix string, fragments ...string) Selector {
	kept := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f = strings.TrimSpace(f); f != "" {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		kept = append(kept, DefaultNameFragments...)
	}
	return Selector{
		prefix:    strings.TrimSpace(prefix),
		fragments: kept,
	}
}

// Enabled reports whether the selector can match anything.
func (s Selector) Enabled() bool {
	return s.prefix != ""
}

// Prefix returns the configured namespace prefix.
func (s Selector) Prefix() string { return s.prefix }

// Fragments returns a copy of the configured name fragments.
func (s Selector) Fragments() []string {
	out := make([]string, len(s.fragments))
	copy(out, s.fragments)
	return out
}

// Match reports whether a component called name declared in namespace is traced.
func (s Selector) Match(namespace, name string) bool {
	if !s.Enabled() {
		return false
	}
	if namespace == selfNamespace || strings.HasPrefix(namespace, selfNamespace+"/") {
		return false
	}
	if !strings.HasPrefix(namespace, s.prefix) {
		return false
	}
	for _, fragment := range s.fragments {
		if strings.Contains(name, fragment) {
			return true
		}
	}
	return false
}
