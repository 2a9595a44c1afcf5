// Package logging defines the Logger interface shared by the CLI and the
// HTTP server, with two backends: a zerolog-based structured logger for
// production and a plain wrapper around the standard library logger for
// callers that inject their own log destination.
package logging
