// Package pdf encodes rendered conversation documents into PDF bytes.
//
// Encoding happens entirely in memory; the encoder produces the final
// artifact or an error, leaving nothing behind on any exit path. Logo
// buffers that fail to decode are skipped so a bad asset can degrade the
// document without aborting the archival.
package pdf
