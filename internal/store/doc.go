// Package store defines the persistence contracts the services depend
// on and a shared error taxonomy for store implementations.
package store
