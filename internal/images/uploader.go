// Package images stores uploaded profile images in S3-compatible object
// storage and returns public URLs for them.
package images

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/editor"
)

// MaxUploadBytes caps profile image uploads.
const MaxUploadBytes = 5 << 20 // 5 MiB

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Config holds object storage settings. Endpoint is optional; when set it
// points the client at an S3-compatible service such as R2 or MinIO.
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PublicURL string // base URL under which uploaded keys are publicly served
}

// Uploader stores images in a single bucket under an images/ prefix.
type Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewUploader builds an S3 client with static credentials.
func NewUploader(ctx context.Context, cfg Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("image storage bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Uploader{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// Upload stores an image and reports the outcome. Rejections (bad content
// type, oversized body) are normal outcomes, not errors; only storage
// failures surface as NotOK with a reason.
func (u *Uploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) editor.UploadOutcome {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return editor.UploadOutcome{OK: false, Reason: fmt.Sprintf("unsupported content type: %s", contentType)}
	}

	// +1 so a body at exactly the limit is distinguishable from one over it.
	data, err := io.ReadAll(io.LimitReader(body, MaxUploadBytes+1))
	if err != nil {
		return editor.UploadOutcome{OK: false, Reason: fmt.Sprintf("failed to read upload: %v", err)}
	}
	if len(data) > MaxUploadBytes {
		return editor.UploadOutcome{OK: false, Reason: "image exceeds 5 MiB limit"}
	}

	key := path.Join("images", uuid.NewString()+ext)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("[images] upload of %s failed: %v", filename, err)
		return editor.UploadOutcome{OK: false, Reason: "storage unavailable"}
	}

	return editor.UploadOutcome{OK: true, URL: u.publicURL + "/" + key}
}

// Download fetches a stored object by key. Used by the PDF exporter to
// inline images.
func (u *Uploader) Download(ctx context.Context, key string) ([]byte, error) {
	out, err := u.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return data, nil
}
