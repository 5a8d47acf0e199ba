// Package api hosts the HTTP server, middleware, and REST handlers of the
// digest service. Notable routes:
//   - GET /healthz / readyz for Kubernetes probes.
//   - GET /metrics for Prometheus scraping.
//   - POST /v1/digest hashes the raw (optionally compressed) request body.
//   - POST /v1/digest/batch hashes a JSON list of messages in parallel.
//
// Responses are JSON unless the client sends Accept: application/cbor.
package api
