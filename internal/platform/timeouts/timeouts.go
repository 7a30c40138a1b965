// Package timeouts defines shared timeout constants used across the service.
// Centralizing these values keeps the durations discoverable.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// StoreProbe caps a health-check round trip to the session store.
const StoreProbe = 2 * time.Second

// StoreConnect caps the initial connection to a remote session store.
const StoreConnect = 5 * time.Second
