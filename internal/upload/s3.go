// Package upload stores user-submitted images and hands back hosted URLs.
package upload

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"forkful/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// Uploader accepts an optional uploaded file and returns a hosted URL.
// A nil file header is not an error; it yields an empty URL, meaning
// "no new image".
type Uploader interface {
	Upload(file *multipart.FileHeader) (string, error)
}

// S3Uploader stores images in an S3 (or MinIO) bucket.
type S3Uploader struct {
	s3Client *s3.S3
	bucket   string
}

// NewS3Uploader builds an uploader from the AWS settings in cfg.
// Returns (nil, nil) when no bucket is configured; callers treat a nil
// uploader as "uploads disabled, keep existing images".
func NewS3Uploader(cfg *config.Config) (*S3Uploader, error) {
	if cfg.S3Bucket == "" {
		return nil, nil
	}

	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	// Support MinIO for local development
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Uploader{
		s3Client: s3.New(sess),
		bucket:   cfg.S3Bucket,
	}, nil
}

// Upload stores the file under a fresh object key and returns its URL.
func (u *S3Uploader) Upload(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", nil
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, src); err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	key := "avatars/" + uuid.NewString() + filepath.Ext(file.Filename)
	contentType := file.Header.Get("Content-Type")

	_, err = u.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return u.objectURL(key), nil
}

func (u *S3Uploader) objectURL(key string) string {
	endpoint := aws.StringValue(u.s3Client.Config.Endpoint)
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		// MinIO URL format
		endpoint = strings.TrimPrefix(endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return fmt.Sprintf("http://%s/%s/%s", endpoint, u.bucket, key)
	}

	region := aws.StringValue(u.s3Client.Config.Region)
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, region, key)
}
