package reactor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/card-transaction-pipeline/pkg/models"
)

// HandleStream reacts to every record of a DynamoDB stream batch and reports
// the sequence numbers of failed records so only those are redelivered.
func (r *Reactor) HandleStream(ctx context.Context, event events.DynamoDBEvent) (events.DynamoDBEventResponse, error) {
	var resp events.DynamoDBEventResponse

	for _, record := range event.Records {
		ev, err := ChangeEventFromRecord(record)
		if err != nil {
			slog.ErrorContext(ctx, "dropping undecodable stream record", "event_id", record.EventID, "error", err)
			continue
		}

		if out := r.React(ctx, ev); out.State == Failed {
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.DynamoDBBatchItemFailure{
				ItemIdentifier: record.Change.SequenceNumber,
			})
		}
	}

	return resp, nil
}

// ChangeEventFromRecord converts a Lambda stream record into a ChangeEvent.
func ChangeEventFromRecord(record events.DynamoDBEventRecord) (models.ChangeEvent, error) {
	ev := models.ChangeEvent{
		EventID: record.EventID,
		Kind:    models.ChangeKind(record.EventName),
	}

	var err error
	if ev.NewImage, err = imageToTransaction(record.Change.NewImage); err != nil {
		return ev, fmt.Errorf("failed to decode new image: %w", err)
	}
	if ev.OldImage, err = imageToTransaction(record.Change.OldImage); err != nil {
		return ev, fmt.Errorf("failed to decode old image: %w", err)
	}
	return ev, nil
}

func imageToTransaction(image map[string]events.DynamoDBAttributeValue) (*models.Transaction, error) {
	if len(image) == 0 {
		return nil, nil
	}

	item, err := toAttributeMap(image)
	if err != nil {
		return nil, err
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(item, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func toAttributeMap(image map[string]events.DynamoDBAttributeValue) (map[string]types.AttributeValue, error) {
	item := make(map[string]types.AttributeValue, len(image))
	for name, value := range image {
		av, err := toAttributeValue(value)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		item[name] = av
	}
	return item, nil
}

func toAttributeValue(value events.DynamoDBAttributeValue) (types.AttributeValue, error) {
	switch value.DataType() {
	case events.DataTypeString:
		return &types.AttributeValueMemberS{Value: value.String()}, nil
	case events.DataTypeNumber:
		return &types.AttributeValueMemberN{Value: value.Number()}, nil
	case events.DataTypeBoolean:
		return &types.AttributeValueMemberBOOL{Value: value.Boolean()}, nil
	case events.DataTypeNull:
		return &types.AttributeValueMemberNULL{Value: true}, nil
	case events.DataTypeBinary:
		return &types.AttributeValueMemberB{Value: value.Binary()}, nil
	case events.DataTypeStringSet:
		return &types.AttributeValueMemberSS{Value: value.StringSet()}, nil
	case events.DataTypeNumberSet:
		return &types.AttributeValueMemberNS{Value: value.NumberSet()}, nil
	case events.DataTypeBinarySet:
		return &types.AttributeValueMemberBS{Value: value.BinarySet()}, nil
	case events.DataTypeList:
		list := value.List()
		out := make([]types.AttributeValue, 0, len(list))
		for _, v := range list {
			av, err := toAttributeValue(v)
			if err != nil {
				return nil, err
			}
			out = append(out, av)
		}
		return &types.AttributeValueMemberL{Value: out}, nil
	case events.DataTypeMap:
		m, err := toAttributeMap(value.Map())
		if err != nil {
			return nil, err
		}
		return &types.AttributeValueMemberM{Value: m}, nil
	}
	return nil, fmt.Errorf("unsupported data type %v", value.DataType())
}
