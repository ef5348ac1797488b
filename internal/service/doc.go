// Package service implements the ledger's business logic: user
// registration and authentication, and the validation and lifecycle of
// financial entries, including balance computation.
package service
