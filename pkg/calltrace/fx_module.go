package calltrace

import (
	"context"

	"go.uber.org/fx"
)

// decoratorGroup is the fx value group collecting decorator registrations.
const decoratorGroup = `group:"calltrace_decorators"`

// FXModule provides the Tracer, the decorator Registry and the Interceptor.
//
// Dependencies required by this module:
//   - a calltrace.Config
//   - a calltrace.Logger
//
// Decorators are contributed with ProvideDecorator and applied with Decorate.
var FXModule = fx.Module("calltrace",
	fx.Provide(
		ProvideTracer,
		NewRegistryFromParams,
		NewInterceptorFromConfig,
	),
	fx.Invoke(RegisterCalltraceLifecycle),
)

// ProvideTracer creates the Tracer used by FXModule.
func ProvideTracer(logger Logger) *Tracer {
	return NewTracer(logger)
}

// RegistryParams collects every Registration contributed through ProvideDecorator.
type RegistryParams struct {
	fx.In

	Registrations []Registration `group:"calltrace_decorators"`
}

// NewRegistryFromParams builds the Registry from the fx value group.
func NewRegistryFromParams(p RegistryParams) (*Registry, error) {
	return NewRegistry(p.Registrations...)
}

// NewInterceptorFromConfig builds the Interceptor from the configured selector.
func NewInterceptorFromConfig(cfg Config, tracer *Tracer, registry *Registry, logger Logger) *Interceptor {
	return NewInterceptor(tracer, cfg.Selector(), registry, logger)
}

// ProvideDecorator contributes the traced decorator factory of interface T.
func ProvideDecorator[T any](factory func(T, *Tracer) T) fx.Option {
	return fx.Provide(
		fx.Annotate(
			func() Registration { return NewRegistration(factory) },
			fx.ResultTags(decoratorGroup),
		),
	)
}

// Decorate replaces the T in the enclosing fx scope with its traced decorator
// when the Interceptor selects it under name. The decision is made once, when
// the component is constructed.
//
// fx applies decorations only inside the module that declares them, so consumers
// of T must live in the same module (or below it).
func Decorate[T any](name string) fx.Option {
	return fx.Decorate(func(ic *Interceptor, component T) T {
		return Wrap(ic, name, component)
	})
}

// RegisterCalltraceLifecycle reports the tracing configuration on start.
func RegisterCalltraceLifecycle(lc fx.Lifecycle, ic *Interceptor, logger Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			selector := ic.Selector()
			if !selector.Enabled() {
				logger.Info("call tracing disabled, no target package configured", nil, nil)
				return nil
			}
			logger.Info("call tracing enabled", nil, map[string]interface{}{
				"target_package": selector.Prefix(),
				"name_fragments": selector.Fragments(),
				"decorators":     ic.registry.Len(),
			})
			return nil
		},
	})
}
