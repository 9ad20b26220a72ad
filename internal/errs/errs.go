// Package errs defines the error types returned to API clients.
//
// Every failure that leaves a handler is normalized into an *HTTPError
// carrying a status and a message, so the global error handler can render
// one consistent JSON shape.
package errs
