package analytics

import "context"

// Emitter mirrors records to a high-throughput ingestion sink.
type Emitter interface {
	// Put delivers records to the named stream. It returns only after every
	// underlying batch call has settled and fails if any of them failed.
	// Failures are not atomic: part of the records may already be in the sink,
	// so consumers of the stream must tolerate duplicates on redelivery.
	Put(ctx context.Context, records []any, stream string) error
}
