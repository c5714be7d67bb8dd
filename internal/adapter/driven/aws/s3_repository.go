package aws

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/diillson/campaign-attribution-go/internal/domain/repository"
	"github.com/diillson/campaign-attribution-go/internal/shared/types"
)

type s3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type stsAPI interface {
	GetCallerIdentity(ctx context.Context, in *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// S3RepositoryImpl implementa o ObjectStore sobre S3, com clientes criados sob demanda.
type S3RepositoryImpl struct {
	profile string
	region  string

	mu        sync.Mutex
	s3Client  s3API
	stsClient stsAPI
}

// NewS3Repository cria um ObjectStore. profile e region vazios usam a cadeia
// padrão de credenciais do SDK.
func NewS3Repository(profile, region string) repository.ObjectStore {
	return &S3RepositoryImpl{profile: profile, region: region}
}

func (r *S3RepositoryImpl) clients(ctx context.Context) (s3API, stsAPI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.s3Client != nil && r.stsClient != nil {
		return r.s3Client, r.stsClient, nil
	}

	var opts []func(*config.LoadOptions) error
	if r.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(r.profile))
	}
	if r.region != "" {
		opts = append(opts, config.WithRegion(r.region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load AWS config for profile %q: %w", r.profile, err)
	}

	if r.s3Client == nil {
		r.s3Client = s3.NewFromConfig(cfg)
	}
	if r.stsClient == nil {
		r.stsClient = sts.NewFromConfig(cfg)
	}
	return r.s3Client, r.stsClient, nil
}

// Open streams the object behind an s3:// URI. The caller closes the body.
func (r *S3RepositoryImpl) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}
	if key == "" || strings.HasSuffix(key, "/") {
		return nil, fmt.Errorf("%w: %q names no object", types.ErrInvalidSourceURI, uri)
	}
	client, _, err := r.clients(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("error getting s3://%s/%s: %w", bucket, key, err)
	}
	return out.Body, nil
}

// Upload copies a local file to the given s3:// URI.
func (r *S3RepositoryImpl) Upload(ctx context.Context, localPath, uri string) error {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return err
	}
	if key == "" || strings.HasSuffix(key, "/") {
		return fmt.Errorf("%w: %q names no object", types.ErrInvalidSourceURI, uri)
	}
	client, _, err := r.clients(ctx)
	if err != nil {
		return err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return &types.IOError{Path: localPath, Err: err}
	}
	defer file.Close()

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType(localPath)),
	})
	if err != nil {
		return &types.IOError{Path: uri, Err: err}
	}
	return nil
}

// AccountID returns the account behind the configured credentials.
func (r *S3RepositoryImpl) AccountID(ctx context.Context) (string, error) {
	_, client, err := r.clients(ctx)
	if err != nil {
		return "", err
	}
	result, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID for profile %q: %w", r.profile, err)
	}
	return aws.ToString(result.Account), nil
}

// ParseS3URI splits s3://bucket/key. A trailing slash marks a prefix and is kept.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", types.ErrInvalidSourceURI, uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%w: %q", types.ErrInvalidSourceURI, uri)
	}
	return bucket, key, nil
}

func contentType(path string) string {
	switch {
	case strings.HasSuffix(path, ".xlsx"):
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case strings.HasSuffix(path, ".csv"):
		return "text/csv"
	case strings.HasSuffix(path, ".json"):
		return "application/json"
	case strings.HasSuffix(path, ".pdf"):
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
