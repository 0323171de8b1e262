package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"travel-intake-agent/internal/domain"
)

const (
	pkPrefixLead = "LEAD#"
	skPrefixRec  = "RECORD#"
	ttlDuration  = 90 * 24 * time.Hour // 90-day TTL
)

// dynamodbAPI is the minimal DynamoDB interface required by Client.
// Defined here for testability.
type dynamodbAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Client appends leads to a DynamoDB table.
type Client struct {
	api       dynamodbAPI
	tableName string
}

// New creates a new repository Client.
func New(api dynamodbAPI, tableName string) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Client{api: api, tableName: tableName}, nil
}

func leadPK(sessionID string) string {
	return pkPrefixLead + sessionID
}

func recordSK(ts time.Time) string {
	return skPrefixRec + ts.UTC().Format(time.RFC3339Nano)
}

// ttlValue returns a Unix timestamp 90 days after ts.
func ttlValue(ts time.Time) int64 {
	return ts.Add(ttlDuration).Unix()
}

// Append writes the lead as a new item. A lead already stored under the same
// key is rejected rather than overwritten.
func (c *Client) Append(ctx context.Context, lead domain.Lead) error {
	if strings.TrimSpace(lead.SessionID) == "" {
		return errors.New("repository: Append: session id is required")
	}

	_, err := c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(c.tableName),
		Item:                leadItem(lead),
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		return fmt.Errorf("repository: Append: %w", err)
	}
	return nil
}

func leadItem(lead domain.Lead) map[string]types.AttributeValue {
	fields := make(map[string]types.AttributeValue, len(lead.Fields))
	for k, v := range lead.Fields {
		fields[k] = &types.AttributeValueMemberS{Value: v}
	}
	return map[string]types.AttributeValue{
		"PK":        &types.AttributeValueMemberS{Value: leadPK(lead.SessionID)},
		"SK":        &types.AttributeValueMemberS{Value: recordSK(lead.Timestamp)},
		"sessionId": &types.AttributeValueMemberS{Value: lead.SessionID},
		"timestamp": &types.AttributeValueMemberS{Value: lead.Timestamp.UTC().Format(time.RFC3339)},
		"fields":    &types.AttributeValueMemberM{Value: fields},
		"ttl":       &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", ttlValue(lead.Timestamp))},
	}
}
