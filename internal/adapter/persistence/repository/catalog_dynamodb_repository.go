package repository

import (
	"context"
	"fmt"

	"repair_quotes/internal/domain/entities"
	"repair_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultDevicesTableName = "devices"
	defaultIssuesTableName  = "issues"

	// DynamoDB caps BatchGetItem at 100 keys per request.
	batchGetMaxKeys   = 100
	batchGetMaxRounds = 5
)

type deviceItem struct {
	ID       string `dynamodbav:"id"`
	Name     string `dynamodbav:"name"`
	Brand    string `dynamodbav:"brand"`
	Category string `dynamodbav:"category"`
	Year     int    `dynamodbav:"year,omitempty"`
}

type issueItem struct {
	ID            string   `dynamodbav:"id"`
	Name          string   `dynamodbav:"name"`
	Category      string   `dynamodbav:"category"`
	Difficulty    string   `dynamodbav:"difficulty"`
	MinCost       string   `dynamodbav:"min_cost,omitempty"`
	MaxCost       string   `dynamodbav:"max_cost,omitempty"`
	TimeMinutes   int      `dynamodbav:"time_minutes"`
	PartsRequired []string `dynamodbav:"parts_required,omitempty"`
}

// CatalogDynamoRepository reads devices and issues from DynamoDB.
//
// Table requirements:
//   - devices: PK id (string)
//   - issues: PK id (string)

type CatalogDynamoRepository struct {
	ddb          *dynamodb.Client
	devicesTable string
	issuesTable  string
}

var _ interfaces.ICatalogRepository = (*CatalogDynamoRepository)(nil)

func NewCatalogDynamoRepository(ddb *dynamodb.Client, devicesTable, issuesTable string) *CatalogDynamoRepository {
	return &CatalogDynamoRepository{
		ddb:          ddb,
		devicesTable: tableOrDefault(devicesTable, defaultDevicesTableName),
		issuesTable:  tableOrDefault(issuesTable, defaultIssuesTableName),
	}
}

func (r *CatalogDynamoRepository) GetDevice(ctx context.Context, id string) (entities.Device, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.devicesTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return entities.Device{}, err
	}
	if len(out.Item) == 0 {
		return entities.Device{}, nil
	}

	var it deviceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Device{}, err
	}
	return fromDeviceItem(it), nil
}

// GetIssues resolves all ids with batched reads. Missing ids are skipped.
func (r *CatalogDynamoRepository) GetIssues(ctx context.Context, ids []string) ([]entities.Issue, error) {
	issues := make([]entities.Issue, 0, len(ids))
	for start := 0; start < len(ids); start += batchGetMaxKeys {
		end := start + batchGetMaxKeys
		if end > len(ids) {
			end = len(ids)
		}
		chunk, err := r.batchGetIssues(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		issues = append(issues, chunk...)
	}
	return issues, nil
}

func (r *CatalogDynamoRepository) batchGetIssues(ctx context.Context, ids []string) ([]entities.Issue, error) {
	keys := make([]map[string]types.AttributeValue, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		})
	}

	request := map[string]types.KeysAndAttributes{
		r.issuesTable: {Keys: keys},
	}
	issues := make([]entities.Issue, 0, len(ids))
	for round := 0; len(request) > 0; round++ {
		if round == batchGetMaxRounds {
			return nil, fmt.Errorf("batch get issues: unprocessed keys after %d rounds", batchGetMaxRounds)
		}
		out, err := r.ddb.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Responses[r.issuesTable] {
			var it issueItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			issues = append(issues, fromIssueItem(it))
		}
		request = out.UnprocessedKeys
	}
	return issues, nil
}

func fromDeviceItem(it deviceItem) entities.Device {
	return entities.Device{
		ID:       it.ID,
		Name:     it.Name,
		Brand:    it.Brand,
		Category: it.Category,
		Year:     it.Year,
	}
}

func fromIssueItem(it issueItem) entities.Issue {
	return entities.Issue{
		ID:            it.ID,
		Name:          it.Name,
		Category:      it.Category,
		Difficulty:    it.Difficulty,
		MinCost:       parseOptionalDecimal(it.MinCost),
		MaxCost:       parseOptionalDecimal(it.MaxCost),
		TimeMinutes:   it.TimeMinutes,
		PartsRequired: it.PartsRequired,
	}
}
