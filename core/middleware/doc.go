// Package middleware groups the HTTP middleware of the Fiber application.
//
//   - auth: API key validation for operator endpoints.
//   - rayid: per-request ray id, stored in locals and echoed in X-Ray-ID.
package middleware
