// Package kvstore is the raw key/value layer underneath the RapidBlood record
// collections. It plays the part a browser's localStorage plays for a web
// client: a flat namespace of string keys holding opaque byte values.
//
// Backends
//
//   - Memory: a mutex-guarded map for tests and throwaway runs.
//   - SQLStore over SQLite (modernc.org/sqlite) or PostgreSQL (pgx stdlib);
//     the schema is created by goose from the embedded migrations.
//   - S3Store: one object per key under a prefix in an S3-compatible bucket.
//
// Contract
//
// Get returns (nil, nil) for a missing key. Delete of a missing key is not an
// error. Keys returns the keys in ascending order. Update performs a
// read-modify-write; the SQL backend runs it inside a transaction, the others
// make no atomicity promise beyond their own locking.
package kvstore
