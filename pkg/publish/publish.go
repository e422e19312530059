package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ryferguson/cornwand/pkg/page"
)

// ContentType is set on every uploaded object.
const ContentType = "text/html; charset=utf-8"

// ErrNoBucket is returned when a publisher has no bucket.
var ErrNoBucket = errors.New("publish: no bucket configured")

// Putter is the part of *s3.Client a Publisher uses.
type Putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads markup under a key prefix.
type Publisher struct {
	client       Putter
	bucket       string
	prefix       string
	cacheControl string
	logger       *slog.Logger
	now          func() time.Time
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithCacheControl sets the Cache-Control header of uploaded objects.
func WithCacheControl(v string) Option {
	return func(p *Publisher) {
		p.cacheControl = v
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Publisher) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a publisher for bucket. prefix may be empty.
func New(client Putter, bucket, prefix string, opts ...Option) *Publisher {
	p := &Publisher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Key returns the object key for a document name. Names get an .html
// extension unless they already carry one.
func (p *Publisher) Key(name string) string {
	name = strings.TrimLeft(path.Clean("/"+name), "/")
	if path.Ext(name) != ".html" {
		name += ".html"
	}
	if p.prefix == "" {
		return name
	}
	return p.prefix + "/" + name
}

// Publish uploads html as the object for name and returns its key.
func (p *Publisher) Publish(ctx context.Context, name, html string) (string, error) {
	if p.bucket == "" {
		return "", ErrNoBucket
	}

	key := p.Key(name)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          strings.NewReader(html),
		ContentLength: aws.Int64(int64(len(html))),
		ContentType:   aws.String(ContentType),
		Metadata: map[string]string{
			"rendered-at": p.now().UTC().Format(time.RFC3339),
		},
	}
	if p.cacheControl != "" {
		input.CacheControl = aws.String(p.cacheControl)
	}

	if _, err := p.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("publish: put s3://%s/%s: %w", p.bucket, key, err)
	}

	p.logger.Info("published document",
		"bucket", p.bucket,
		"key", key,
		"bytes", len(html),
	)
	return key, nil
}

// PublishDocument renders doc and uploads it.
func (p *Publisher) PublishDocument(ctx context.Context, name string, doc *page.Document) (string, error) {
	return p.Publish(ctx, name, doc.Render())
}
