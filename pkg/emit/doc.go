// Package emit applies file plans: it creates planned directories and hands
// every file entry to a Sink, which owns template rendering and the write
// policy (create if missing or overwrite).
package emit
