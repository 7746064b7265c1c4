// Package model holds the request and response payloads exchanged with
// API clients, and the normalized query the planner works on.
package model
