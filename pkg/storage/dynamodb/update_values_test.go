package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/card-transaction-pipeline/pkg/storage"
	"github.com/chris/card-transaction-pipeline/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUpdateValues(t *testing.T) {
	key := storage.Key{"transaction_id": "tx-1"}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient}

		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
			return in.UpdateExpression != nil &&
				in.ConditionExpression != nil &&
				len(in.ExpressionAttributeValues) == 2 &&
				assert.ObjectsAreEqual(
					[]string{"status", "transaction_id", "ttl"},
					sortedFields(invert(in.ExpressionAttributeNames)),
				)
		})).Return(&dynamodb.UpdateItemOutput{}, nil)

		err := store.UpdateValues(context.Background(), "transactions", key, map[string]any{
			"status": "CAPTURE",
			"ttl":    int64(1700000000),
		})

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Missing Record Is Not Upserted", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		err := store.UpdateValues(context.Background(), "transactions", key, map[string]any{"status": "CAPTURE"})

		assert.Error(t, err)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Empty Values", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient}

		err := store.UpdateValues(context.Background(), "transactions", key, map[string]any{})

		assert.ErrorIs(t, err, storage.ErrEmptyUpdate)
		mockClient.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, errors.New("update failed"))

		err := store.UpdateValues(context.Background(), "transactions", key, map[string]any{"status": "CAPTURE"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to update item in transactions")
		mockClient.AssertExpectations(t)
	})
}

func TestUpdateExpressionCompositeKey(t *testing.T) {
	expr, err := updateExpression(storage.Key{"pk": "a", "sk": "b"}, map[string]any{"status": "APPROVAL"})

	assert.NoError(t, err)
	assert.Contains(t, *expr.Condition(), "AND")
	assert.ElementsMatch(t, []string{"pk", "sk", "status"}, mapValues(expr.Names()))
}

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}
