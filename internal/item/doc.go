// Package item is the item domain of the service: the Item model, its
// Repository (in memory or PostgreSQL), the Service and the HTTP controller.
//
// Repository, Service and ItemControllerAPI have traced decorators in
// tracing_gen.go. FXModule registers them with calltrace and applies them, so
// a request served by the controller logs one nested trace:
//
//	[1f0c2a9b] ItemController.AddItem()
//	[1f0c2a9b] |-->ItemService.SaveItem()
//	[1f0c2a9b] | |-->PostgresRepository.Save()
//	[1f0c2a9b] | |<--PostgresRepository.Save() time=3ms
//	[1f0c2a9b] |<--ItemService.SaveItem() time=4ms
//	[1f0c2a9b] ItemController.AddItem() time=4ms
package item

//go:generate go run github.com/Aleph-Alpha/calltrace/cmd/tracegen --type Repository,Service,ItemControllerAPI
