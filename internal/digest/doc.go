// Package digest defines the interfaces and value types shared by the
// CLI, the dispatcher and the HTTP service.
package digest
