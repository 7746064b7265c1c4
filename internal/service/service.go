// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated, normalized queries from the handler, performs the
// planning, and reads destination data through the repositories.
package service
