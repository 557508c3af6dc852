// Package notifications delivers operator-facing push notifications over
// ntfy. The compensation-failure alert is the load-bearing one: it is the
// only notification that reports a durable inconsistency rather than a
// completed or cleanly failed archival.
package notifications
