package repository

import (
	"context"
	"encoding/json"

	"repair_quotes/internal/domain/entities"
	"repair_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultQuotesTableName = "quotes"

// quoteItem keeps a few top-level attributes for console queries; the quote
// itself is read back from snapshot only.
type quoteItem struct {
	ID              string `dynamodbav:"id"`
	DeviceID        string `dynamodbav:"device_id,omitempty"`
	FinalCost       string `dynamodbav:"final_cost"`
	DepositRequired string `dynamodbav:"deposit_required"`
	GeneratedAt     string `dynamodbav:"generated_at"`
	ValidUntil      string `dynamodbav:"valid_until"`
	Snapshot        string `dynamodbav:"snapshot"`
}

// QuoteDynamoRepository archives issued quotes in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type QuoteDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client, tableName string) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultQuotesTableName),
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	it, err := toQuoteItem(q)
	if err != nil {
		return entities.Quote{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it)
}

func toQuoteItem(q entities.Quote) (quoteItem, error) {
	snapshot, err := json.Marshal(q)
	if err != nil {
		return quoteItem{}, err
	}
	return quoteItem{
		ID:              q.ID,
		DeviceID:        q.Device.ID,
		FinalCost:       decimalToString(q.FinalCost),
		DepositRequired: decimalToString(q.DepositRequired),
		GeneratedAt:     formatTime(q.GeneratedAt),
		ValidUntil:      formatTime(q.ValidUntil),
		Snapshot:        string(snapshot),
	}, nil
}

func fromQuoteItem(it quoteItem) (entities.Quote, error) {
	var q entities.Quote
	if err := json.Unmarshal([]byte(it.Snapshot), &q); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}
