// Package prompt asks the interactive questions of a generation run: which
// resources to scaffold, where to write them and whether shared files may be
// overwritten. Questions go through a Driver so flows can be tested without a
// terminal.
package prompt
