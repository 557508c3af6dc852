// Package archive contains the conversation-archival orchestrator.
//
// Archive drives the pipeline render → encode → blob write → metadata write
// and owns the consistency guarantee between the two stores: a metadata
// record never references a blob that does not exist. The two writes have no
// cross-store transaction, so the saga compensates a failed metadata insert
// by deleting the just-written blob; a failed compensation is surfaced as a
// distinct, operator-visible error because the system cannot self-heal from
// it.
package archive
