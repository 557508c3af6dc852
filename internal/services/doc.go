// Package services carries the cross-cutting plumbing shared by the archival
// pipeline and the store clients: request-scoped context annotation (session
// and request identifiers) and sentinel-error wrapping used for failure
// classification.
package services
