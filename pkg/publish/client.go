package publish

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultRegion is used when ClientOptions.Region is empty.
const DefaultRegion = "us-east-1"

// Credentials are static S3 credentials.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// ClientOptions configures NewClient.
type ClientOptions struct {
	Region string

	// Endpoint overrides the AWS endpoint, for S3-compatible stores.
	Endpoint string

	// PathStyle addresses buckets as endpoint/bucket instead of
	// bucket.endpoint.
	PathStyle bool

	// Credentials are optional. Without them requests are anonymous.
	Credentials Credentials
}

// NewClient builds an S3 client from static options.
func NewClient(opts ClientOptions) *s3.Client {
	region := opts.Region
	if region == "" {
		region = DefaultRegion
	}

	o := s3.Options{
		Region:       region,
		UsePathStyle: opts.PathStyle,
	}
	if opts.Endpoint != "" {
		o.BaseEndpoint = aws.String(opts.Endpoint)
	}
	if opts.Credentials.AccessKeyID != "" {
		creds := opts.Credentials
		o.Credentials = aws.NewCredentialsCache(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     creds.AccessKeyID,
					SecretAccessKey: creds.SecretAccessKey,
					SessionToken:    creds.SessionToken,
					Source:          "cornwand",
				}, nil
			},
		))
	}

	return s3.New(o)
}
