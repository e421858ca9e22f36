// Package httputil provides the network plumbing behind URL
// canonicalization and the external directory clients: bounded-timeout
// probing, redirect resolution, retry with exponential backoff, and a
// process-wide worker pool that caps concurrent lookups.
//
// All probing helpers degrade gracefully: a timeout or connection
// failure reports "unresolved" rather than returning an error, so
// callers can fall back to their un-normalized input.
package httputil
