// Where: internal/provisioner/s3.go
// What: S3 provisioning helpers.
// Why: Create test imagery buckets with optional expiry lifecycle rules.
package provisioner

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws-osml/data-intake-cli/internal/manifest"
)

// S3API is the narrow bucket surface the provisioner needs.
type S3API interface {
	ListBuckets(ctx context.Context) ([]string, error)
	CreateBucket(ctx context.Context, name string) error
	PutExpirationLifecycle(ctx context.Context, bucket string, days int) error
}

func provisionS3(ctx context.Context, client S3API, buckets []manifest.S3Spec, out io.Writer) {
	if client == nil || len(buckets) == 0 {
		return
	}
	if out == nil {
		out = io.Discard
	}

	existing := map[string]struct{}{}
	if names, err := client.ListBuckets(ctx); err == nil {
		for _, name := range names {
			existing[name] = struct{}{}
		}
	}

	for _, bucket := range buckets {
		name := strings.TrimSpace(bucket.BucketName)
		if name == "" {
			continue
		}
		if _, ok := existing[name]; ok {
			fmt.Fprintf(out, "Bucket '%s' already exists. Skipping.\n", name)
			continue
		}

		if err := client.CreateBucket(ctx, name); err != nil {
			fmt.Fprintf(out, "❌ Failed to create bucket %s: %v\n", name, err)
			continue
		}
		fmt.Fprintf(out, "✅ Created S3 Bucket: %s\n", name)

		if bucket.ExpirationInDays > 0 {
			if err := client.PutExpirationLifecycle(ctx, name, bucket.ExpirationInDays); err != nil {
				fmt.Fprintf(out, "⚠️ Failed to set lifecycle on %s: %v\n", name, err)
				continue
			}
			fmt.Fprintf(out, "   Expiry lifecycle: %d days\n", bucket.ExpirationInDays)
		}
	}
}
