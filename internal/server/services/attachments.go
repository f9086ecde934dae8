package services

import (
	"context"
	"database/sql"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/loopin/internal/common"
	"github.com/dmitrijs2005/loopin/internal/dbx"
	"github.com/dmitrijs2005/loopin/internal/logging"
	"github.com/dmitrijs2005/loopin/internal/server/config"
	"github.com/dmitrijs2005/loopin/internal/server/models"
	"github.com/dmitrijs2005/loopin/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// PresignedURL is a time-limited link to an object in the attachment bucket.
type PresignedURL struct {
	URL       string
	ExpiresAt time.Time
}

type AttachmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
	logger      logging.Logger
	now         func() time.Time
}

func NewAttachmentService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *AttachmentService {
	return &AttachmentService{
		db:          db,
		repomanager: m,
		config:      cfg,
		logger:      l.With("module", "attachment_service"),
		now:         time.Now,
	}
}

// storageKey spreads objects by post and day.
func storageKey(postID string, now time.Time, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("posts/%s/%d/%02d/%02d/%v%s", postID, now.Year(), now.Month(), now.Day(), uuid.New(), ext)
}

func (s *AttachmentService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// CreateUpload registers a pending attachment on a post owned by userID and
// returns a presigned PUT for it.
func (s *AttachmentService) CreateUpload(ctx context.Context, userID, postID, fileName, contentType string) (*models.Attachment, *PresignedURL, error) {
	fileName = path.Base(strings.TrimSpace(fileName))
	if fileName == "." || fileName == "/" {
		return nil, nil, fmt.Errorf("%w: file name is required", common.ErrorValidation)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := s.now()
	att, err := dbx.WithTxValue(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Attachment, error) {
		if err := requireOwner(ctx, s.repomanager.Posts(tx), postID, userID); err != nil {
			return nil, err
		}
		return s.repomanager.Attachments(tx).Create(ctx, &models.Attachment{
			PostID:      postID,
			UserID:      userID,
			StorageKey:  storageKey(postID, now, fileName),
			FileName:    fileName,
			ContentType: contentType,
		})
	})
	if err != nil {
		return nil, nil, err
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3Bucket),
		Key:         aws.String(att.StorageKey),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.config.S3PresignTTL))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "attachment upload issued", "attachment_id", att.ID, "post_id", postID)
	return att, &PresignedURL{URL: req.URL, ExpiresAt: now.Add(s.config.S3PresignTTL)}, nil
}

// MarkUploaded confirms an upload. Only the uploader may confirm it.
func (s *AttachmentService) MarkUploaded(ctx context.Context, userID, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Attachments(tx)
		att, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if att.UserID != userID {
			return common.ErrorForbidden
		}
		return repo.MarkUploaded(ctx, id)
	})
}

// GetURL presigns a download link for a confirmed attachment.
func (s *AttachmentService) GetURL(ctx context.Context, id string) (*models.Attachment, *PresignedURL, error) {
	att, err := s.repomanager.Attachments(s.db).Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !att.Uploaded {
		return nil, nil, common.ErrorNotFound
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(att.StorageKey),
	}, s3.WithPresignExpires(s.config.S3PresignTTL))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return att, &PresignedURL{URL: req.URL, ExpiresAt: s.now().Add(s.config.S3PresignTTL)}, nil
}
