// Package conversation defines the transcript model shared by the archival
// pipeline: conversations as ordered turns, submitter identity, and the
// system-turn filtering policy applied before anything is rendered or stored.
package conversation
