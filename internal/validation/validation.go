// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules defined in
// struct tags, runs ordered hand-written checks where the order of
// failures matters, and turns both into errors the client can
// understand.
package validation
