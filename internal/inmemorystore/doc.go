// Package inmemorystore provides a thread-safe, in-memory implementation
// of the nodestore.Store interface. It is suitable for any evaluation whose
// cells fit in memory, which is every single-record evaluation.
package inmemorystore
