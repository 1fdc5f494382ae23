// Package catalog implements the core queries and mutations over the
// rental inventory: the category hierarchy with its materialized lineage,
// property inheritance down the tree, reconciliation of stored item
// attribute values against the current hierarchy, and stock availability
// over a time window.
//
// The package holds the algorithms only; all state lives in a types.Store
// and every query reads it fresh. Nothing here caches.
package catalog
