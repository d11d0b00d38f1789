// Package transport wires the HTTP surface of the giftwish backend: the
// chi router, the per-route gate composition, the resource handlers, and
// the HTTP-level middleware (request id, logging, panic recovery).
//
// Handlers decode request bodies, call the identity and people services,
// and render every success through the JSON:API document builders in
// pkg/api. All failures funnel through api.WriteError, the single error
// boundary.
package transport
