// Package storage provides the two durable store clients used by the
// archival pipeline: a GridFS-backed blob store for PDF artifacts and a
// MongoDB collection client for metadata records. Driver errors are
// classified into the package sentinels so callers can distinguish transient
// unavailability from permanent write rejection.
package storage
