// Package template defines the engine-agnostic contract generated sources are
// rendered through. Implementations live in sub-packages (see pongo).
package template
