// Where: internal/provisioner/aws_clients.go
// What: AWS SDK adapters for S3 and DynamoDB.
// Why: Map manifest types to SDK inputs behind the narrow provisioner interfaces.
package provisioner

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/aws-osml/data-intake-cli/internal/manifest"
)

type awsS3Client struct {
	client *s3.Client
	region string
}

func (c awsS3Client) ListBuckets(ctx context.Context) ([]string, error) {
	if c.client == nil {
		return nil, fmt.Errorf("s3 client is nil")
	}
	resp, err := c.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(resp.Buckets))
	for _, bucket := range resp.Buckets {
		names = append(names, aws.ToString(bucket.Name))
	}
	return names, nil
}

func (c awsS3Client) CreateBucket(ctx context.Context, name string) error {
	if c.client == nil {
		return fmt.Errorf("s3 client is nil")
	}
	input := &s3.CreateBucketInput{Bucket: aws.String(name)}
	// us-east-1 rejects an explicit location constraint.
	if c.region != "" && c.region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(c.region),
		}
	}
	_, err := c.client.CreateBucket(ctx, input)
	return err
}

func (c awsS3Client) PutExpirationLifecycle(ctx context.Context, bucket string, days int) error {
	if c.client == nil {
		return fmt.Errorf("s3 client is nil")
	}
	_, err := c.client.PutBucketLifecycleConfiguration(ctx, &s3.PutBucketLifecycleConfigurationInput{
		Bucket: aws.String(bucket),
		LifecycleConfiguration: &s3types.BucketLifecycleConfiguration{
			Rules: []s3types.LifecycleRule{
				{
					ID:     aws.String("integ-expiry"),
					Status: s3types.ExpirationStatusEnabled,
					Filter: &s3types.LifecycleRuleFilter{Prefix: aws.String("")},
					Expiration: &s3types.LifecycleExpiration{
						Days: aws.Int32(int32(days)),
					},
				},
			},
		},
	})
	return err
}

type awsDynamoClient struct {
	client *dynamodb.Client
}

func (c awsDynamoClient) ListTables(ctx context.Context) ([]string, error) {
	if c.client == nil {
		return nil, fmt.Errorf("dynamodb client is nil")
	}
	resp, err := c.client.ListTables(ctx, &dynamodb.ListTablesInput{})
	if err != nil {
		return nil, err
	}
	return resp.TableNames, nil
}

func (c awsDynamoClient) CreateTable(ctx context.Context, spec manifest.DynamoDBSpec) error {
	if c.client == nil {
		return fmt.Errorf("dynamodb client is nil")
	}
	input, err := buildCreateTableInput(spec)
	if err != nil {
		return err
	}
	_, err = c.client.CreateTable(ctx, input)
	return err
}

func buildCreateTableInput(spec manifest.DynamoDBSpec) (*dynamodb.CreateTableInput, error) {
	billingMode, err := mapBillingMode(spec.BillingMode)
	if err != nil {
		return nil, err
	}

	keySchema := []ddbtypes.KeySchemaElement{
		{AttributeName: aws.String(spec.HashKey), KeyType: ddbtypes.KeyTypeHash},
	}
	attrDefs := []ddbtypes.AttributeDefinition{
		{AttributeName: aws.String(spec.HashKey), AttributeType: ddbtypes.ScalarAttributeTypeS},
	}
	if spec.RangeKey != "" {
		keySchema = append(keySchema, ddbtypes.KeySchemaElement{
			AttributeName: aws.String(spec.RangeKey), KeyType: ddbtypes.KeyTypeRange,
		})
		attrDefs = append(attrDefs, ddbtypes.AttributeDefinition{
			AttributeName: aws.String(spec.RangeKey), AttributeType: ddbtypes.ScalarAttributeTypeS,
		})
	}

	return &dynamodb.CreateTableInput{
		TableName:            aws.String(spec.TableName),
		KeySchema:            keySchema,
		AttributeDefinitions: attrDefs,
		BillingMode:          billingMode,
	}, nil
}

func mapBillingMode(value string) (ddbtypes.BillingMode, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "PAY_PER_REQUEST", "":
		return ddbtypes.BillingModePayPerRequest, nil
	case "PROVISIONED":
		return ddbtypes.BillingModeProvisioned, nil
	default:
		return "", fmt.Errorf("unsupported billing mode: %s", value)
	}
}
