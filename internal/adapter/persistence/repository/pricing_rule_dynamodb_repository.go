package repository

import (
	"context"

	"repair_quotes/internal/domain/entities"
	"repair_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultPricingRulesTableName = "pricing_rules"

type ruleConditionsItem struct {
	Category      *string `dynamodbav:"category,omitempty"`
	Brand         *string `dynamodbav:"brand,omitempty"`
	ServiceType   *string `dynamodbav:"service_type,omitempty"`
	MinAgeYears   *int    `dynamodbav:"min_age_years,omitempty"`
	MaxAgeYears   *int    `dynamodbav:"max_age_years,omitempty"`
	CustomerType  *string `dynamodbav:"customer_type,omitempty"`
	IssueCategory *string `dynamodbav:"issue_category,omitempty"`
}

type pricingRuleItem struct {
	ID                string             `dynamodbav:"id"`
	Name              string             `dynamodbav:"name"`
	RuleType          string             `dynamodbav:"rule_type"`
	CalculationMethod string             `dynamodbav:"calculation_method"`
	Amount            string             `dynamodbav:"amount,omitempty"`
	Percentage        string             `dynamodbav:"percentage,omitempty"`
	Conditions        ruleConditionsItem `dynamodbav:"conditions"`
	Priority          int                `dynamodbav:"priority"`
	IsActive          bool               `dynamodbav:"is_active"`
	ValidFrom         string             `dynamodbav:"valid_from,omitempty"`
	ValidUntil        string             `dynamodbav:"valid_until,omitempty"`
	CreatedAt         string             `dynamodbav:"created_at"`
}

// PricingRuleDynamoRepository reads the pricing rule list from DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// The table is small and read whole; validity windows are checked by the
// engine at quote time, not here.

type PricingRuleDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPricingRuleRepository = (*PricingRuleDynamoRepository)(nil)

func NewPricingRuleDynamoRepository(ddb *dynamodb.Client, tableName string) *PricingRuleDynamoRepository {
	return &PricingRuleDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultPricingRulesTableName),
	}
}

func (r *PricingRuleDynamoRepository) ListActive(ctx context.Context) ([]entities.PricingRule, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("#active = :active"),
		ExpressionAttributeNames: map[string]string{
			"#active": "is_active",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberBOOL{Value: true},
		},
	})

	rules := make([]entities.PricingRule, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it pricingRuleItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			rules = append(rules, fromPricingRuleItem(it))
		}
	}
	return rules, nil
}

func fromPricingRuleItem(it pricingRuleItem) entities.PricingRule {
	c := it.Conditions
	conditions := entities.RuleConditions{
		Category:      c.Category,
		Brand:         c.Brand,
		MinAgeYears:   c.MinAgeYears,
		MaxAgeYears:   c.MaxAgeYears,
		IssueCategory: c.IssueCategory,
	}
	if c.ServiceType != nil {
		st := entities.ServiceType(*c.ServiceType)
		conditions.ServiceType = &st
	}
	if c.CustomerType != nil {
		ct := entities.CustomerType(*c.CustomerType)
		conditions.CustomerType = &ct
	}

	return entities.PricingRule{
		ID:         it.ID,
		Name:       it.Name,
		RuleType:   it.RuleType,
		Method:     entities.CalculationMethod(it.CalculationMethod),
		Amount:     parseDecimal(it.Amount),
		Percentage: parseDecimal(it.Percentage),
		Conditions: conditions,
		Priority:   it.Priority,
		Active:     it.IsActive,
		ValidFrom:  parseOptionalTime(it.ValidFrom),
		ValidUntil: parseOptionalTime(it.ValidUntil),
		CreatedAt:  parseTime(it.CreatedAt),
	}
}
