package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"dairy-backend/internal/config"
)

// BillStore persists rendered bill documents. Local disk is the primary
// store; when bucket credentials are configured each artifact is also
// uploaded to the S3-compatible bucket for off-site backup.
type BillStore struct {
	dir      string
	s3Client *s3.Client
	bucket   string
}

func NewBillStore(cfg *config.Config) (*BillStore, error) {
	dir := cfg.Billing.StorageDir
	if dir == "" {
		dir = "bills"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create bill storage dir: %w", err)
	}

	store := &BillStore{dir: dir}

	if cfg.Bucket.Endpoint != "" && cfg.Bucket.AccessKey != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.Bucket.AccessKey,
				cfg.Bucket.SecretKey,
				"",
			)),
			awsconfig.WithRegion(cfg.Bucket.Region),
		)
		if err != nil {
			log.Printf("[Storage] Bucket client config failed, local-only mode: %v", err)
		} else {
			store.s3Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
				o.BaseEndpoint = aws.String(cfg.Bucket.Endpoint)
			})
			store.bucket = cfg.Bucket.Name
			log.Printf("[Storage] Bill archive bucket enabled: %s", store.bucket)
		}
	}

	return store, nil
}

// Save writes the document locally and returns the stored filename. The
// bucket upload runs in the background; a failed upload never fails the
// bill.
func (s *BillStore) Save(filename string, data []byte) (string, error) {
	filename = sanitizeFilename(filename)
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write bill file: %w", err)
	}

	if s.s3Client != nil {
		go s.upload(filename, data)
	}

	return filename, nil
}

// Open returns the stored document bytes by filename.
func (s *BillStore) Open(filename string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.dir, sanitizeFilename(filename)))
}

func (s *BillStore) upload(filename string, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String("bills/" + filename),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		log.Printf("[Storage] Bucket upload failed for %s: %v", filename, err)
	}
}

// sanitizeFilename strips path separators so a requested filename can never
// escape the storage directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	return name
}

// BillFilename builds the artifact name from customer name and period.
func BillFilename(customerName string, start, end time.Time) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, customerName)
	if clean == "" {
		clean = "customer"
	}
	return fmt.Sprintf("%s_%s_%s.pdf", clean, start.Format("20060102"), end.Format("20060102"))
}
