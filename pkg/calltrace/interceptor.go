package calltrace

import (
	"reflect"
)

// Traced is implemented by decorators produced for a Registry. Untraced
// returns the component the decorator forwards to.
type Traced interface {
	Untraced() interface{}
}

// Interceptor decides at construction time whether a component is traced and,
// if so, replaces it with its registered decorator.
type Interceptor struct {
	tracer   *Tracer
	selector Selector
	registry *Registry
	logger   Logger
}

// NewInterceptor creates an Interceptor.
func NewInterceptor(tracer *Tracer, selector Selector, registry *Registry, logger Logger) *Interceptor {
	return &Interceptor{
		tracer:   tracer,
		selector: selector,
		registry: registry,
		logger:   logger,
	}
}

// Tracer returns the tracer decorators are bound to.
func (ic *Interceptor) Tracer() *Tracer { return ic.tracer }

// Selector returns the component selector.
func (ic *Interceptor) Selector() Selector { return ic.selector }

// Selects reports whether component, registered under name, would be traced.
// An empty name falls back to the component's type name.
func (ic *Interceptor) Selects(name string, component interface{}) bool {
	if ic == nil || component == nil {
		return false
	}
	if _, traced := component.(Traced); traced {
		return false
	}
	if name == "" {
		name = TypeName(component)
	}
	return ic.selector.Match(Namespace(component), name)
}

// Wrap returns the traced decorator of component when the selector matches it
// and a decorator for T is registered, and component itself otherwise. Wrap is
// meant to run once, when the component is built; already traced components
// are returned unchanged.
func Wrap[T any](ic *Interceptor, name string, component T) T {
	if ic == nil || !ic.Selects(name, component) {
		return component
	}

	factory, ok := lookup[T](ic.registry)
	if !ok {
		ic.log("no tracing decorator registered, component left untraced", name, component)
		return component
	}

	ic.log("tracing component", name, component)
	return factory(component, ic.tracer)
}

func (ic *Interceptor) log(msg, name string, component interface{}) {
	if ic.logger == nil {
		return
	}
	ic.logger.Debug(msg, nil, map[string]interface{}{
		"component": name,
		"type":      TypeName(component),
		"namespace": Namespace(component),
	})
}

// Namespace returns the package path of component's concrete type.
func Namespace(component interface{}) string {
	t := concreteType(component)
	if t == nil {
		return ""
	}
	return t.PkgPath()
}

// TypeName returns the name of component's concrete type, without pointer
// indirections or package qualifier.
func TypeName(component interface{}) string {
	t := concreteType(component)
	if t == nil {
		return ""
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

// Label formats the displayed name of a call to method on component.
func Label(component interface{}, method string) string {
	return TypeName(component) + "." + method + "()"
}

func concreteType(component interface{}) reflect.Type {
	t := reflect.TypeOf(component)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
