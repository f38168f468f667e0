package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/card-transaction-pipeline/pkg/storage"
)

// UpdateValues sets every attribute in values on the record stored under key.
// The update is guarded by attribute_exists on each key attribute, so it never
// upserts: a missing record yields storage.ErrNotFound.
func (s *Store) UpdateValues(ctx context.Context, table string, key storage.Key, values map[string]any) error {
	if len(values) == 0 {
		return storage.ErrEmptyUpdate
	}

	keyAV, err := attributevalue.MarshalMap(map[string]any(key))
	if err != nil {
		return fmt.Errorf("failed to marshal key for %s: %w", table, err)
	}

	expr, err := updateExpression(key, values)
	if err != nil {
		return fmt.Errorf("failed to build update expression for %s: %w", table, err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       keyAV,
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("failed to update %s: %w", table, storage.ErrNotFound)
		}
		return wrapError("update item in "+table, err)
	}

	return nil
}

// updateExpression aliases every name and value, so attributes such as "status"
// or "ttl" never collide with reserved words.
func updateExpression(key storage.Key, values map[string]any) (expression.Expression, error) {
	var update expression.UpdateBuilder
	for _, field := range sortedFields(values) {
		update = update.Set(expression.Name(field), expression.Value(values[field]))
	}

	keyFields := sortedFields(key)
	var exists []expression.ConditionBuilder
	for _, field := range keyFields {
		exists = append(exists, expression.AttributeExists(expression.Name(field)))
	}

	builder := expression.NewBuilder().WithUpdate(update)
	switch len(exists) {
	case 0:
	case 1:
		builder = builder.WithCondition(exists[0])
	default:
		builder = builder.WithCondition(expression.And(exists[0], exists[1], exists[2:]...))
	}

	return builder.Build()
}

func sortedFields[V any](m map[string]V) []string {
	fields := make([]string, 0, len(m))
	for field := range m {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
