// Where: internal/provisioner/aws_factory.go
// What: AWS client factory for S3/DynamoDB provisioning.
// Why: Encapsulate SDK configuration for real accounts and local endpoints.
package provisioner

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type ClientFactory interface {
	S3(ctx context.Context, opts Options) (S3API, error)
	DynamoDB(ctx context.Context, opts Options) (DynamoDBAPI, error)
}

type awsClientFactory struct{}

func (awsClientFactory) S3(ctx context.Context, opts Options) (S3API, error) {
	cfg, err := loadAWSConfig(ctx, opts)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(options *s3.Options) {
		if opts.Endpoint != "" {
			options.BaseEndpoint = aws.String(opts.Endpoint)
			options.UsePathStyle = true
		}
	})
	return awsS3Client{client: client, region: cfg.Region}, nil
}

func (awsClientFactory) DynamoDB(ctx context.Context, opts Options) (DynamoDBAPI, error) {
	cfg, err := loadAWSConfig(ctx, opts)
	if err != nil {
		return nil, err
	}
	client := dynamodb.NewFromConfig(cfg, func(options *dynamodb.Options) {
		if opts.Endpoint != "" {
			options.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})
	return awsDynamoClient{client: client}, nil
}

func loadAWSConfig(ctx context.Context, opts Options) (aws.Config, error) {
	region := opts.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	// Local endpoints accept any static credentials; real endpoints use the
	// default chain (profile, env, instance role).
	if opts.Endpoint != "" {
		loadOpts = append(loadOpts,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				localAccessKey(), localSecretKey(), "")))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, err
	}
	return cfg, nil
}

func localAccessKey() string {
	if value := os.Getenv("ODI_LOCAL_ACCESS_KEY"); value != "" {
		return value
	}
	return "test"
}

func localSecretKey() string {
	if value := os.Getenv("ODI_LOCAL_SECRET_KEY"); value != "" {
		return value
	}
	return "test"
}
