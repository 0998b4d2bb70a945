// Package server exposes polynomial evaluation over HTTP using Gin, with
// h2c so HTTP/2 cleartext clients are served on the same port.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: Panic recovery with structured logging
//   - RequestID: Request ID generation and propagation
//   - Observe: Per-request spans and request metrics
//   - RequestLogger: Request logging with duration tracking
//
// # Endpoints
//
//   - POST /v1/evaluate: Evaluate inputs through a chain
//   - GET /health: Health check including an engine probe
//   - GET /alive: Liveness probe
//   - GET /version: Build version information
package server
