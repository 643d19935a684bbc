package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// GCS stores images in a Cloud Storage bucket and returns a tokenized
// public download URL.
type GCS struct {
	client *gcs.Client
	bucket string
}

func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCS{client: client, bucket: bucket}, nil
}

func (g *GCS) Save(ctx context.Context, name string, contentType string, r io.Reader) (string, error) {
	token := uuid.NewString()
	objectPath := "items/" + name

	w := g.client.Bucket(g.bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	publicURL := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		g.bucket, url.PathEscape(objectPath), token)
	return publicURL, nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}
