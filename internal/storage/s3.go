package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Client talks to any S3-compatible media store (R2, MinIO, AWS itself).
type S3Client struct {
	client     *s3.Client
	bucketName string
	publicURL  string
}

type customEndpointResolver struct {
	endpoint string
}

func (c customEndpointResolver) ResolveEndpoint(service, region string) (aws.Endpoint, error) {
	if service == s3.ServiceID {
		return aws.Endpoint{
			URL:           c.endpoint,
			SigningRegion: "auto",
		}, nil
	}
	return aws.Endpoint{}, fmt.Errorf("unknown endpoint requested for %s", service)
}

func NewS3Client(endpoint, accessKeyID, secretAccessKey, bucketName, publicURL string) (*S3Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolver(customEndpointResolver{endpoint: endpoint}),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return &S3Client{
		client:     client,
		bucketName: bucketName,
		publicURL:  publicURL,
	}, nil
}

// Upload stores one object under folder/key and returns its public address.
func (s *S3Client) Upload(ctx context.Context, folder, key string, body io.Reader, contentType string, size int64) (*Asset, error) {
	objectKey := joinObjectKey(folder, key)

	uploadInput := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucketName),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		ACL:           types.ObjectCannedACLPublicRead,
	}

	if _, err := s.client.PutObject(ctx, uploadInput); err != nil {
		return nil, fmt.Errorf("failed to store object %s: %w", objectKey, err)
	}

	return &Asset{
		PublicID:  objectKey,
		SecureURL: s.objectURL(objectKey),
	}, nil
}

// Delete removes the object addressed by publicID. DeleteObject on an S3 wire
// is idempotent and never reports a missing key, so the object is headed first
// to give the not-found status real semantics.
func (s *S3Client) Delete(ctx context.Context, publicID string) (DeleteStatus, error) {
	found, err := s.Exists(ctx, publicID)
	if err != nil {
		return "", err
	}
	if !found {
		return DeleteNotFound, nil
	}

	deleteInput := &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(publicID),
	}

	if _, err := s.client.DeleteObject(ctx, deleteInput); err != nil {
		return "", fmt.Errorf("failed to delete object %s: %w", publicID, err)
	}

	return DeleteOK, nil
}

// Exists reports whether the object addressed by publicID is present.
func (s *S3Client) Exists(ctx context.Context, publicID string) (bool, error) {
	headInput := &s3.HeadObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(publicID),
	}

	_, err := s.client.HeadObject(ctx, headInput)
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to head object %s: %w", publicID, err)
	}

	return true, nil
}

func (s *S3Client) objectURL(objectKey string) string {
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.publicURL, "/"), s.bucketName, objectKey)
	}
	return fmt.Sprintf("https://pub-%s.r2.dev/%s", s.bucketName, objectKey)
}

func joinObjectKey(folder, key string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return key
	}
	return folder + "/" + key
}
