package invoice

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dtchealth/billing-engine/internal/billing"
)

// Archive stores rendered invoice PDFs in S3 (or any S3-compatible store)
// keyed by billing period and client.
type Archive struct {
	client *s3.Client
	bucket string
}

// NewArchive creates an archive over the given bucket.
func NewArchive(client *s3.Client, bucket string) *Archive {
	return &Archive{client: client, bucket: bucket}
}

// UploadPDF stores the invoice PDF and returns a presigned URL valid for 7 days.
func (a *Archive) UploadPDF(ctx context.Context, clientID string, inv *billing.InvoiceData, pdfData []byte) (string, error) {
	key := a.objectKey(clientID, inv)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdfData),
		ContentType: aws.String("application/pdf"),
		Metadata: map[string]string{
			"invoice-number": inv.InvoiceNumber,
			"client-id":      clientID,
			"upload-date":    time.Now().Format(time.RFC3339),
		},
		ACL: types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	presignClient := s3.NewPresignClient(a.client)
	presignedReq, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = 7 * 24 * time.Hour
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return presignedReq.URL, nil
}

// DownloadPDF retrieves a previously archived invoice PDF.
func (a *Archive) DownloadPDF(ctx context.Context, clientID string, inv *billing.InvoiceData) ([]byte, error) {
	key := a.objectKey(clientID, inv)

	result, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download from S3: %w", err)
	}
	defer result.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(result.Body); err != nil {
		return nil, fmt.Errorf("failed to read PDF data: %w", err)
	}

	return buf.Bytes(), nil
}

// ListPeriod lists archived invoice keys for a client and billing period.
func (a *Archive) ListPeriod(ctx context.Context, clientID string, year, month int) ([]string, error) {
	prefix := fmt.Sprintf("invoices/%04d/%02d/%s/", year, month, clientID)

	result, err := a.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}

	keys := make([]string, 0, len(result.Contents))
	for _, obj := range result.Contents {
		if obj.Key != nil {
			keys = append(keys, *obj.Key)
		}
	}

	return keys, nil
}

// CheckBucket verifies the archive bucket exists and is accessible.
func (a *Archive) CheckBucket(ctx context.Context) error {
	_, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(a.bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %s does not exist or is not accessible: %w", a.bucket, err)
	}
	return nil
}

// objectKey is invoices/{yyyy}/{mm}/{clientID}/{invoiceNumber}.pdf, keyed on
// the period end so the canonical 16th-to-15th window files under the month
// the invoice went out.
func (a *Archive) objectKey(clientID string, inv *billing.InvoiceData) string {
	year := inv.Period.End.Year()
	month := int(inv.Period.End.Month())
	return fmt.Sprintf("invoices/%04d/%02d/%s/%s.pdf", year, month, clientID, inv.InvoiceNumber)
}
