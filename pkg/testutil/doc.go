// Package testutil provides fixtures shared by scriptext tests: in-memory
// build trees, a filesystem with injectable failures and environment
// isolation.
package testutil
