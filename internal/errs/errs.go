// Package errs defines the error types returned to API clients.
//
// Every error that leaves a handler or middleware is eventually turned into
// an *HTTPError by the global error handler, so clients always receive the
// same JSON shape:
//
//	{ "detail": "Invalid origin code" }
//
// Server-side failures never carry their internal message to the client.
package errs
