// Package repository handles all reads of destination data.
//
// It hides the in-memory index behind query methods, so the service
// layer never walks the raw index itself.
package repository
