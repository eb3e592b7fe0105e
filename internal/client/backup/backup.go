// Package backup uploads a JSON snapshot of the local store to
// S3-compatible object storage.
package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/categories"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/syncstate"
	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/transactions"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// SnapshotVersion is bumped whenever Snapshot changes shape.
const SnapshotVersion = 1

var ErrNotConfigured = errors.New("backup bucket not configured")

var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
	newObjectID = uuid.NewString
)

// Config locates the bucket. Endpoint and the static keys are optional; when
// the keys are empty the default AWS credential chain applies.
type Config struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type Snapshot struct {
	Version      int                  `json:"version"`
	CreatedAt    time.Time            `json:"created_at"`
	Categories   []models.Category    `json:"categories"`
	Transactions []models.Transaction `json:"transactions"`
	SyncRecords  []models.SyncRecord  `json:"sync_records"`
}

type Service struct {
	db     *dbx.Handle
	cfg    Config
	logger logging.Logger
	now    func() time.Time
}

func NewService(db *dbx.Handle, cfg Config, logger logging.Logger) *Service {
	return &Service{db: db, cfg: cfg, logger: logger.With("module", "backup"), now: time.Now}
}

// Snapshot reads categories, transactions and sync records in one
// transaction so the three lists agree with each other.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{Version: SnapshotVersion, CreatedAt: s.now().UTC()}

	err := s.db.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		if snap.Categories, err = categories.NewSQLiteStore(tx).GetAll(ctx); err != nil {
			return err
		}
		if snap.Transactions, err = transactions.NewSQLiteStore(tx).GetAll(ctx); err != nil {
			return err
		}
		snap.SyncRecords, err = syncstate.NewSQLiteRepository(tx).List(ctx, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Service) client(ctx context.Context) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{}
	if s.cfg.Region != "" {
		opts = append(opts, config.WithRegion(s.cfg.Region))
	}
	if s.cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.cfg.AccessKey, s.cfg.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Upload stores a fresh snapshot and returns its object key.
func (s *Service) Upload(ctx context.Context) (string, error) {
	if s.cfg.Bucket == "" {
		return "", ErrNotConfigured
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	c, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	key := path.Join(s.cfg.Prefix, fmt.Sprintf("finkeeper-%s-%s.json",
		snap.CreatedAt.Format("20060102T150405Z"), newObjectID()))

	_, err = putObject(c, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}

	s.logger.Info(ctx, "backup uploaded", "bucket", s.cfg.Bucket, "key", key,
		"categories", len(snap.Categories), "transactions", len(snap.Transactions))
	return key, nil
}
