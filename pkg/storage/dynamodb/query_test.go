package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/card-transaction-pipeline/pkg/models"
	"github.com/chris/card-transaction-pipeline/pkg/storage"
	"github.com/chris/card-transaction-pipeline/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestQuery(t *testing.T) {
	t.Run("No Match Returns Empty Slice", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient}

		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return *in.IndexName == storage.TransactionByTicketNumberIndex
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{}}, nil)

		result, err := storage.QueryAll[models.Transaction](context.Background(), store, "transactions", storage.TransactionByTicketNumberIndex, "ticket_number", "404")

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
		mockClient.AssertExpectations(t)
	})

	t.Run("Follows Pages In Order", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient}

		first, _ := attributevalue.MarshalMap(models.Transaction{TransactionID: "a"})
		second, _ := attributevalue.MarshalMap(models.Transaction{TransactionID: "b"})
		lastKey := map[string]types.AttributeValue{"transaction_id": &types.AttributeValueMemberS{Value: "a"}}

		mockClient.On("Query", mock.Anything, mock.Anything).Once().Return(&dynamodb.QueryOutput{
			Items:            []map[string]types.AttributeValue{first},
			LastEvaluatedKey: lastKey,
		}, nil)
		mockClient.On("Query", mock.Anything, mock.Anything).Once().Return(&dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{second},
		}, nil)

		result, err := storage.QueryAll[models.Transaction](context.Background(), store, "transactions", storage.TransactionBySaleTicketNumberIndex, "sale_ticket_number", "100")

		assert.NoError(t, err)
		if assert.Len(t, result, 2) {
			assert.Equal(t, "a", result[0].TransactionID)
			assert.Equal(t, "b", result[1].TransactionID)
		}
		mockClient.AssertExpectations(t)
	})

	t.Run("Field Name Is Aliased", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient}

		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return assert.ObjectsAreEqual([]string{"status"}, mapValues(in.ExpressionAttributeNames)) &&
				len(in.ExpressionAttributeValues) == 1
		})).Return(&dynamodb.QueryOutput{}, nil)

		var result []models.Transaction
		err := store.Query(context.Background(), "transactions", "status-index", "status", "APPROVAL", &result)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient}

		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("query failed"))

		_, err := storage.QueryAll[models.Transaction](context.Background(), store, "transactions", storage.TransactionByTicketNumberIndex, "ticket_number", "100")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query ticketNumber-index")
		mockClient.AssertExpectations(t)
	})
}
