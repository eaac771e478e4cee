// Package memory holds in-process implementations of the repository ports. The server
// uses them when no database is configured; tests use them everywhere.
package memory
