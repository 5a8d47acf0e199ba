// Package main hosts the digest service entrypoint.
//
// Architecture overview:
//   - HTTP API: internal/api.Server exposes health, metrics, and digest endpoints. POST /v1/digest hashes the raw
//     request body (after gzip, zstd, or lz4 Content-Encoding is undone); POST /v1/digest/batch hashes a JSON list of
//     messages through the dispatcher and returns results in request order.
//   - Dispatcher: batches fan out over an errgroup bounded by config.Digest.Concurrency. Each digest runs the
//     pkg/sha256 core to completion; cancellation only skips digests that have not started.
//   - Configuration & plumbing: Viper populates config from flags, a file, and SHA256DIGEST_* env vars; zap provides
//     structured logging; Prometheus metrics are exported via the metrics middleware and /metrics handler.
//
// Operational notes:
//   - Bodies are capped by server.max_body_bytes both before and after decoding.
//   - Responses are JSON unless the client sends Accept: application/cbor.
//   - The process reacts to SIGINT/SIGTERM by draining in-flight requests before exiting.
//
// Run locally: go run ./cmd/sha256digestd --config config.yaml --port 8080
package main
