package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/card-transaction-pipeline/pkg/storage"
)

// GetItem performs a strongly consistent read of key. A missing key is not an error.
func (s *Store) GetItem(ctx context.Context, table string, key storage.Key, out any) (bool, error) {
	keyAV, err := attributevalue.MarshalMap(map[string]any(key))
	if err != nil {
		return false, fmt.Errorf("failed to marshal key for %s: %w", table, err)
	}

	input := &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            keyAV,
		ConsistentRead: aws.Bool(true),
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return false, wrapError("get item from "+table, err)
	}

	if result.Item == nil {
		return false, nil
	}

	if err := attributevalue.UnmarshalMap(result.Item, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal item from %s: %w", table, err)
	}

	return true, nil
}
