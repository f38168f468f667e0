package firehose

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/firehose"
	"github.com/aws/aws-sdk-go-v2/service/firehose/types"
	"github.com/chris/card-transaction-pipeline/pkg/analytics"
	"golang.org/x/sync/errgroup"
)

// MaxBatchSize is the largest number of records Firehose accepts per PutRecordBatch call.
const MaxBatchSize = 500

// FirehoseAPI is the subset of the Firehose client used by Emitter.
type FirehoseAPI interface {
	PutRecordBatch(ctx context.Context, params *firehose.PutRecordBatchInput, optFns ...func(*firehose.Options)) (*firehose.PutRecordBatchOutput, error)
}

// Emitter implements analytics.Emitter on top of Kinesis Data Firehose.
type Emitter struct {
	Client FirehoseAPI
}

// NewEmitter creates a new Emitter.
func NewEmitter(client FirehoseAPI) *Emitter {
	return &Emitter{Client: client}
}

// Make sure we conform to the interface
var _ analytics.Emitter = (*Emitter)(nil)

// Put splits records into consecutive chunks of at most MaxBatchSize and sends
// them concurrently, one PutRecordBatch call per chunk.
func (e *Emitter) Put(ctx context.Context, records []any, stream string) error {
	var g errgroup.Group

	for start := 0; start < len(records); start += MaxBatchSize {
		end := min(start+MaxBatchSize, len(records))
		chunk := records[start:end]
		g.Go(func() error {
			return e.putChunk(ctx, stream, chunk)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to put %d records to %s: %w", len(records), stream, err)
	}
	return nil
}

func (e *Emitter) putChunk(ctx context.Context, stream string, chunk []any) error {
	entries := make([]types.Record, 0, len(chunk))
	for _, record := range chunk {
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		entries = append(entries, types.Record{Data: append(data, '\n')})
	}

	output, err := e.Client.PutRecordBatch(ctx, &firehose.PutRecordBatchInput{
		DeliveryStreamName: aws.String(stream),
		Records:            entries,
	})
	if err != nil {
		return fmt.Errorf("failed to send record batch: %w", err)
	}

	if failed := aws.ToInt32(output.FailedPutCount); failed > 0 {
		slog.WarnContext(ctx, "record batch partially rejected", "stream", stream, "failed", failed, "size", len(entries))
		return fmt.Errorf("%d of %d records rejected by %s", failed, len(entries), stream)
	}

	return nil
}
