package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/card-transaction-pipeline/pkg/storage"
)

// Put writes record into table. A write rejected solely because cond does not hold
// is reported as success: re-delivered creation events must not fail.
func (s *Store) Put(ctx context.Context, table string, record any, cond *storage.Condition) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record for %s: %w", table, err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	}

	if cond != nil {
		condition, err := conditionBuilder(cond)
		if err != nil {
			return err
		}
		expr, err := expression.NewBuilder().WithCondition(condition).Build()
		if err != nil {
			return fmt.Errorf("failed to build put condition: %w", err)
		}
		input.ConditionExpression = expr.Condition()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if cond != nil && errors.As(err, &condCheckFailed) {
			slog.DebugContext(ctx, "conditional put rejected, keeping stored record", "table", table, "field", cond.Field)
			return nil
		}
		return wrapError("put item into "+table, err)
	}

	return nil
}

func conditionBuilder(cond *storage.Condition) (expression.ConditionBuilder, error) {
	switch cond.Op {
	case storage.OpAttributeNotExists:
		return expression.AttributeNotExists(expression.Name(cond.Field)), nil
	case storage.OpAttributeExists:
		return expression.AttributeExists(expression.Name(cond.Field)), nil
	default:
		return expression.ConditionBuilder{}, fmt.Errorf("unsupported condition op %d", cond.Op)
	}
}
