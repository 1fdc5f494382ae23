// Package types defines the Store and Table interfaces, entity types, the
// lineage codec, and standard errors for the openrits rental inventory
// system.
package types
