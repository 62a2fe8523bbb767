// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines
// the configuration structure for the listen port, the API key protecting the
// operator endpoints and request timeouts.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the start command to configure Fiber.
package server
