// Package api defines the resource model and wire formats for the giftwish
// backend: users, people, and their nested gifts, the JSON:API response
// envelope every endpoint returns, the error taxonomy, and request
// validation.
//
// Serialization follows JSON:API v1.0: a single resource renders as
// {"data": {"type", "id", "attributes"}} and a collection as an ordered array
// of such objects. Every serializable type implements PublicViewer, which
// yields its public attribute set with the identifier and any sensitive
// fields (password hashes) stripped. The mapping is resolved statically per
// type; there is no runtime probing for a serialization method.
package api
