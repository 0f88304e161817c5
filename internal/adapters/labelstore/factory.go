package labelstore

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/sirupsen/logrus"

	"image-search-api/internal/config"
)

// TableType represents the type of label table implementation
type TableType string

const (
	TableTypeDynamoDB TableType = "dynamodb"
	TableTypeSQLite   TableType = "sqlite"
	TableTypeMock     TableType = "mock"
)

// Factory creates LabelTable instances based on configuration
type Factory struct {
	awsConfig   aws.Config
	endpointURL string
	logger      *logrus.Logger
}

// NewFactory creates a new label table factory. awsConfig is only used for DynamoDB.
func NewFactory(awsConfig aws.Config, endpointURL string, logger *logrus.Logger) *Factory {
	return &Factory{
		awsConfig:   awsConfig,
		endpointURL: endpointURL,
		logger:      logger,
	}
}

// Create creates a LabelTable instance based on the provided configuration
func (f *Factory) Create(cfg config.TableConfig) (LabelTable, error) {
	switch TableType(strings.ToLower(cfg.Type)) {
	case TableTypeDynamoDB, "":
		return NewDynamoDBLabelTableFromConfig(f.awsConfig, f.endpointURL, cfg.Name), nil
	case TableTypeSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = "./data/labels.db"
		}
		table, err := OpenSQLiteLabelTable(path, cfg.Name, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create sqlite table: %w", err)
		}
		return table, nil
	case TableTypeMock:
		return NewMockLabelTable(), nil
	default:
		return nil, fmt.Errorf("unsupported table type: %s", cfg.Type)
	}
}
