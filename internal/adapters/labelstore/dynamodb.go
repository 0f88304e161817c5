package labelstore

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"image-search-api/internal/models"
)

// Attribute names of the label table
const (
	AttrImageID   = "imageId"
	AttrLabels    = "labels"
	AttrTimestamp = "timestamp"
)

// DynamoDBAPI is the subset of the DynamoDB client used by DynamoDBLabelTable
type DynamoDBAPI interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoDBLabelTable implements LabelTable on a DynamoDB table keyed by imageId
type DynamoDBLabelTable struct {
	client    DynamoDBAPI
	tableName string
}

// NewDynamoDBLabelTable creates a new DynamoDBLabelTable
func NewDynamoDBLabelTable(client DynamoDBAPI, tableName string) *DynamoDBLabelTable {
	return &DynamoDBLabelTable{
		client:    client,
		tableName: tableName,
	}
}

// NewDynamoDBLabelTableFromConfig builds the DynamoDB client from a loaded AWS config
func NewDynamoDBLabelTableFromConfig(cfg aws.Config, endpointURL, tableName string) *DynamoDBLabelTable {
	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpointURL != "" {
			o.BaseEndpoint = aws.String(endpointURL)
		}
	})
	return NewDynamoDBLabelTable(client, tableName)
}

// Scan implements LabelTable.Scan. Only the first page is read; LastEvaluatedKey is ignored.
func (d *DynamoDBLabelTable) Scan(ctx context.Context) ([]*models.LabelRecord, error) {
	if d.tableName == "" {
		return nil, NewTableError("Scan", d.tableName, "", ErrTableUnavailable)
	}

	out, err := d.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(d.tableName),
	})
	if err != nil {
		return nil, NewTableError("Scan", d.tableName, "", err)
	}

	records := make([]*models.LabelRecord, 0, len(out.Items))
	for _, item := range out.Items {
		if record, ok := decodeItem(item); ok {
			records = append(records, record)
		}
	}
	return records, nil
}

// Put implements LabelTable.Put
func (d *DynamoDBLabelTable) Put(ctx context.Context, record *models.LabelRecord) error {
	if err := record.Validate(); err != nil {
		return NewTableError("Put", d.tableName, record.ImageID, ErrInvalidRecord)
	}
	if d.tableName == "" {
		return NewTableError("Put", d.tableName, record.ImageID, ErrTableUnavailable)
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return NewTableError("Put", d.tableName, record.ImageID, err)
	}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      item,
	})
	if err != nil {
		return NewTableError("Put", d.tableName, record.ImageID, err)
	}
	return nil
}

// Close implements LabelTable.Close
func (d *DynamoDBLabelTable) Close() error {
	return nil
}

// decodeItem reads a scanned row leniently: a row without a string imageId is
// dropped, and a labels attribute that is not a string set counts as absent.
func decodeItem(item map[string]types.AttributeValue) (*models.LabelRecord, bool) {
	id, ok := item[AttrImageID].(*types.AttributeValueMemberS)
	if !ok || id.Value == "" {
		return nil, false
	}

	record := &models.LabelRecord{ImageID: id.Value}

	if labels, ok := item[AttrLabels].(*types.AttributeValueMemberSS); ok {
		record.Labels = labels.Value
	}

	if ts, ok := item[AttrTimestamp].(*types.AttributeValueMemberN); ok {
		if n, err := strconv.ParseInt(ts.Value, 10, 64); err == nil {
			record.Timestamp = n
		}
	}

	return record, true
}
