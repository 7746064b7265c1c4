// Package lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It contains shared utilities and the JSON codec used by the
// HTTP layer, the index loader and the CLI.
package lib
