// Package config assembles the configuration of the item service.
//
// Values are layered: Default first, then an optional YAML file, then the
// environment. A .env file can seed the environment; variables that are
// already set win over it.
//
//	cfg, err := config.Load("config.yaml", ".env")
//
// Every setting has an environment variable, for example:
//
//	TRACE_TARGET_PACKAGE=github.com/Aleph-Alpha/calltrace/internal
//	TRACE_NAME_FRAGMENTS=Service,Repository
//	STORAGE_TYPE=postgres
//	POSTGRES_HOST=db.internal
//
// Setting TRACE_TARGET_PACKAGE to an empty value turns call tracing off.
package config
