package snapshot

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

func TestUploaderKey(t *testing.T) {
	u := NewUploader(nil, "b", "snaps")
	tests := []struct {
		name string
		want string
	}{
		{"home", "snaps/home.html"},
		{"/nested/page/", "snaps/nested/page.html"},
		{"", "snaps/index.html"},
		{"done.html", "snaps/done.html"},
	}
	for _, tt := range tests {
		if got := u.Key(tt.name); got != tt.want {
			t.Errorf("Key(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestUpload(t *testing.T) {
	fake := &fakeS3{}
	u := NewUploader(fake, "bucket", "p/")
	u.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	key, err := u.Upload(context.Background(), "home", "<p>hi</p>")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if key != "p/home.html" {
		t.Errorf("key = %q", key)
	}
	in := fake.inputs[0]
	if aws.ToString(in.Bucket) != "bucket" || aws.ToString(in.Key) != key {
		t.Errorf("input = %s/%s", aws.ToString(in.Bucket), aws.ToString(in.Key))
	}
	if fake.bodies[0] != "<p>hi</p>" {
		t.Errorf("body = %q", fake.bodies[0])
	}
	if in.Metadata["snapshot-time"] != "2024-01-02T03:04:05Z" {
		t.Errorf("metadata = %v", in.Metadata)
	}
}

func TestUploadErrors(t *testing.T) {
	if _, err := NewUploader(&fakeS3{}, "", "").Upload(context.Background(), "x", ""); err == nil {
		t.Error("Upload() without bucket succeeded")
	}
	boom := errors.New("boom")
	_, err := NewUploader(&fakeS3{err: boom}, "b", "").Upload(context.Background(), "x", "")
	if !errors.Is(err, boom) {
		t.Errorf("Upload() error = %v, want wrapped boom", err)
	}
}

func TestEnvCredentials(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	if _, err := envCredentials(context.Background()); err == nil {
		t.Error("envCredentials() without keys succeeded")
	}
	t.Setenv("AWS_ACCESS_KEY_ID", "id")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	creds, err := envCredentials(context.Background())
	if err != nil || creds.AccessKeyID != "id" {
		t.Errorf("envCredentials() = %+v, %v", creds, err)
	}
	if NewClient(ClientConfig{Region: "us-east-1", Endpoint: "http://localhost:9000"}) == nil {
		t.Error("NewClient() = nil")
	}
}
