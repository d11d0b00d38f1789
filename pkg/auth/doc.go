// Package auth provides the HTTP-boundary gates for the giftwish backend:
// the bearer-token gate, the API-key gate, and the ownership authorization
// check that fetches the target person mid-request and verifies the caller
// against its owner and shared-with set.
//
// The gates are implemented as standard net/http middleware so routes
// compose them in whatever order they need. Each gate writes its own error
// document and stops the chain; on success it stores what it learned (the
// authenticated user id, the fetched person) in the request context for
// downstream handlers.
package auth
