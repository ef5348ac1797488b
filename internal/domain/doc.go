// Package domain defines the core business entities of the ledger:
// users and their financial entries, together with the validation
// rules and sentinel errors that govern them.
package domain
