package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/card-transaction-pipeline/pkg/models"
	"github.com/chris/card-transaction-pipeline/pkg/storage"
	"github.com/chris/card-transaction-pipeline/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetItem(t *testing.T) {
	tx := models.Transaction{TransactionID: "tx-1", TicketNumber: "100", Status: models.APPROVAL}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient}

		txAV, _ := attributevalue.MarshalMap(tx)
		mockClient.On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
			return *in.ConsistentRead && *in.TableName == "transactions"
		})).Return(&dynamodb.GetItemOutput{Item: txAV}, nil)

		var result models.Transaction
		found, err := store.GetItem(context.Background(), "transactions", storage.Key{"transaction_id": "tx-1"}, &result)

		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, tx, result)
		mockClient.AssertExpectations(t)
	})

	t.Run("Absent", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		var result models.Transaction
		found, err := store.GetItem(context.Background(), "transactions", storage.Key{"transaction_id": "missing"}, &result)

		assert.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, result.TransactionID)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("get item failed"))

		var result models.Transaction
		found, err := store.GetItem(context.Background(), "transactions", storage.Key{"transaction_id": "tx-1"}, &result)

		assert.Error(t, err)
		assert.False(t, found)
		assert.Contains(t, err.Error(), "failed to get item from transactions")
		mockClient.AssertExpectations(t)
	})
}
