// Package calltrace writes nested, correlation-tagged begin/end/exception lines
// for calls flowing through a layered backend (controller, service, repository)
// without changing the traced code.
//
// # Tracer
//
// A Tracer opens a span with Begin and closes it with End or Exception:
//
//	ctx, span := tracer.Begin(ctx, "ItemService.SaveItem()")
//	item, err := save(ctx)
//	if err != nil {
//		tracer.Exception(span, err)
//		return nil, err
//	}
//	tracer.End(span)
//
// The identity of the current call (correlation id and nesting level) travels in
// the context.Context. Begin on a context without an identity starts a new
// logical execution at level 0; Begin on a context returned by an earlier Begin
// nests one level deeper under the same id. Each goroutine handling a request
// works on its own context, so one Tracer serves all of them.
//
// Lines look like this:
//
//	[1f0c9a2e] ItemController.Item()
//	[1f0c9a2e] |-->ItemService.FindItem()
//	[1f0c9a2e] | |-->MemoryRepository.FindByID()
//	[1f0c9a2e] | |<--MemoryRepository.FindByID() time=0ms
//	[1f0c9a2e] |<--ItemService.FindItem() time=1ms
//	[1f0c9a2e] ItemController.Item() time=1ms
//
// Nested failures use the "<X-" marker. Every failure line appends
// "ex=<error>", which is what tells a failed root call apart from a completed
// one, since level 0 lines carry no marker.
//
// # Interception
//
// Components are traced by replacing them, once, with a decorator implementing
// the same interface. Decorators are generated by cmd/tracegen and registered
// per interface:
//
//	reg, _ := calltrace.NewRegistry(calltrace.NewRegistration(item.NewTracedService))
//	ic := calltrace.NewInterceptor(tracer, calltrace.NewSelector("github.com/acme/app"), reg, log)
//	svc := calltrace.Wrap[item.Service](ic, "itemService", item.NewItemService(repo, tx))
//
// The Selector picks components whose package path starts with the configured
// prefix and whose registration name contains one of the role fragments
// (Service, Repository, Controller by default). An empty prefix traces nothing.
//
// # FX Module Integration
//
//	app := fx.New(
//		calltrace.FXModule,
//		calltrace.ProvideDecorator(item.NewTracedService),
//		calltrace.Decorate[item.Service]("itemService"),
//		// ...
//	)
//
// # Thread Safety
//
// Tracer, Registry and Interceptor are safe for concurrent use.
package calltrace
