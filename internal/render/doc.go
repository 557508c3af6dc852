// Package render turns a conversation and its submission into a document
// structure ready for encoding: branding header, submitter info block, and
// one normalized message block per non-system turn. Rendering is pure; it
// performs no I/O and never fails.
package render
