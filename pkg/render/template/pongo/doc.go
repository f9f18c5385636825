// Package pongo implements template.TemplateRenderer on top of
// github.com/flosch/pongo2. Templates are looked up with a ".tpl" suffix,
// first in an optional override directory and then in the provided fs.FS.
// Autoescaping is disabled because output is TypeScript and Vue source.
package pongo
