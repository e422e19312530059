package publish

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ryferguson/cornwand/pkg/page"
)

type putCall struct {
	input *s3.PutObjectInput
	body  string
}

type fakePutter struct {
	mu    sync.Mutex
	calls []putCall
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, putCall{input: params, body: string(body)})
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestKey(t *testing.T) {
	tests := []struct {
		prefix string
		name   string
		want   string
	}{
		{"", "index", "index.html"},
		{"docs/", "index", "docs/index.html"},
		{"/docs/v1/", "about.html", "docs/v1/about.html"},
		{"docs", "../../etc/passwd", "docs/etc/passwd.html"},
		{"", "blog/post", "blog/post.html"},
	}
	for _, tt := range tests {
		p := New(&fakePutter{}, "bucket", tt.prefix)
		if got := p.Key(tt.name); got != tt.want {
			t.Errorf("New(prefix=%q).Key(%q) = %q, want %q", tt.prefix, tt.name, got, tt.want)
		}
	}
}

func TestPublish(t *testing.T) {
	fake := &fakePutter{}
	p := New(fake, "site", "docs", WithCacheControl("max-age=60"), quiet())
	p.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	key, err := p.Publish(context.Background(), "index", "<p>hi</p>")
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if key != "docs/index.html" {
		t.Errorf("key = %q", key)
	}

	if len(fake.calls) != 1 {
		t.Fatalf("got %d PutObject calls, want 1", len(fake.calls))
	}
	call := fake.calls[0]
	in := call.input
	if aws.ToString(in.Bucket) != "site" || aws.ToString(in.Key) != "docs/index.html" {
		t.Errorf("bucket/key = %q/%q", aws.ToString(in.Bucket), aws.ToString(in.Key))
	}
	if aws.ToString(in.ContentType) != ContentType {
		t.Errorf("ContentType = %q", aws.ToString(in.ContentType))
	}
	if aws.ToString(in.CacheControl) != "max-age=60" {
		t.Errorf("CacheControl = %q", aws.ToString(in.CacheControl))
	}
	if aws.ToInt64(in.ContentLength) != int64(len("<p>hi</p>")) {
		t.Errorf("ContentLength = %d", aws.ToInt64(in.ContentLength))
	}
	if in.Metadata["rendered-at"] != "2024-05-01T12:00:00Z" {
		t.Errorf("rendered-at = %q", in.Metadata["rendered-at"])
	}
	if call.body != "<p>hi</p>" {
		t.Errorf("body = %q", call.body)
	}
}

func TestPublish_NoCacheControl(t *testing.T) {
	fake := &fakePutter{}
	p := New(fake, "site", "", quiet())

	if _, err := p.Publish(context.Background(), "a", "x"); err != nil {
		t.Fatal(err)
	}
	if fake.calls[0].input.CacheControl != nil {
		t.Errorf("CacheControl set without option: %q", aws.ToString(fake.calls[0].input.CacheControl))
	}
}

func TestPublish_Errors(t *testing.T) {
	_, err := New(&fakePutter{}, "", "", quiet()).Publish(context.Background(), "a", "x")
	if !errors.Is(err, ErrNoBucket) {
		t.Errorf("error = %v, want ErrNoBucket", err)
	}

	boom := errors.New("access denied")
	_, err = New(&fakePutter{err: boom}, "site", "", quiet()).Publish(context.Background(), "a", "x")
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped %v", err, boom)
	}
}

func TestPublishDocument(t *testing.T) {
	doc, err := page.ParseString(`{"doctype":true,"root":{"tag":"html","content":["ok"]}}`)
	if err != nil {
		t.Fatal(err)
	}

	fake := &fakePutter{}
	if _, err := New(fake, "site", "", quiet()).PublishDocument(context.Background(), "index", doc); err != nil {
		t.Fatal(err)
	}
	if got, want := fake.calls[0].body, "<!doctype html><html>ok</html>"; got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient(ClientOptions{
		Endpoint:  "http://localhost:9000",
		PathStyle: true,
		Credentials: Credentials{
			AccessKeyID:     "AKID",
			SecretAccessKey: "secret",
		},
	})

	o := client.Options()
	if o.Region != DefaultRegion {
		t.Errorf("Region = %q, want %q", o.Region, DefaultRegion)
	}
	if !o.UsePathStyle {
		t.Error("UsePathStyle = false")
	}
	if aws.ToString(o.BaseEndpoint) != "http://localhost:9000" {
		t.Errorf("BaseEndpoint = %q", aws.ToString(o.BaseEndpoint))
	}

	creds, err := o.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if creds.AccessKeyID != "AKID" || creds.SecretAccessKey != "secret" {
		t.Errorf("credentials = %+v", creds)
	}

	if anon := NewClient(ClientOptions{Region: "eu-west-1"}).Options(); anon.Credentials != nil {
		t.Error("anonymous client has credentials")
	}
}
