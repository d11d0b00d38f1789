// Package storage defines the persistence contracts for users and people,
// plus the sentinel errors shared by all implementations.
//
// The stores follow document semantics: a person is written and read as a
// whole document, gifts included, and each implementation must serialize
// writes to an individual document. Concurrent mutations of the same person
// therefore resolve as last-write-wins on the enclosing document, which the
// gift read-modify-write cycle in the people service relies on.
package storage
