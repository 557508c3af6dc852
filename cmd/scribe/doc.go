// Package main hosts the Scribe CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into archival
// pipeline runs, conversation snapshots, document retrieval, configuration
// scaffolding, and notification checks. It centralizes configuration
// resolution, MongoDB connection lifecycle, and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
