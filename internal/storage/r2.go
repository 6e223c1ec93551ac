package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client uploads files to an S3-compatible bucket (Cloudflare R2 in
// production). A nil Client is valid: uploads fail with a clear error so
// the rest of the API keeps working without storage credentials.
type Client struct {
	s3        *s3.Client
	bucket    string
	publicURL string
}

type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	PublicURL string
}

// New builds a storage client, or nil when credentials are not configured.
func New(opts Options) *Client {
	if opts.Endpoint == "" || opts.AccessKey == "" || opts.Bucket == "" {
		log.Println("[Storage] R2 credentials not configured, uploads disabled")
		return nil
	}

	region := opts.Region
	if region == "" {
		region = "auto"
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		log.Printf("[Storage] Failed to configure R2 client: %v", err)
		return nil
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.Endpoint)
	})

	return &Client{
		s3:        client,
		bucket:    opts.Bucket,
		publicURL: strings.TrimRight(opts.PublicURL, "/"),
	}
}

// Upload writes data to the bucket and returns the public URL.
func (c *Client) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if c == nil {
		return "", fmt.Errorf("object storage not configured")
	}

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s", c.publicURL, key), nil
}

// UploadPOPhoto stores a purchase order photo under po-photos/. The photo
// arrives either as an already-hosted URL (returned as-is) or a base64
// data URL captured from the device camera.
func (c *Client) UploadPOPhoto(ctx context.Context, dcID int, photo string) (string, error) {
	if strings.HasPrefix(photo, "http://") || strings.HasPrefix(photo, "https://") {
		return photo, nil
	}

	data, contentType, err := DecodeDataURL(photo)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)
	key := fmt.Sprintf("po-photos/dc_%d_%s_%s%s",
		dcID,
		time.Now().Format("20060102_150405"),
		hex.EncodeToString(sum[:4]),
		extensionFor(contentType),
	)

	return c.Upload(ctx, key, contentType, data)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	default:
		return ".jpg"
	}
}
