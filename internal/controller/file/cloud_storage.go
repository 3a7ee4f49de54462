package file

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// StorageClient stores uploaded blobs outside the database
type StorageClient interface {
	UploadFile(objectName string, fileData io.Reader) error
	DownloadFile(objectName string) (io.ReadCloser, int64, error)
}

// CloudStorageClient keeps blobs in a Google Cloud Storage bucket
type CloudStorageClient struct {
	BucketName string
	Ctx        context.Context
	Client     *storage.Client
}

// NewCloudStorageClient connects to GCS using application default credentials
func NewCloudStorageClient(bucketName string) (*CloudStorageClient, error) {
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud storage client: %v", err)
	}
	return &CloudStorageClient{
		BucketName: bucketName,
		Ctx:        ctx,
		Client:     client,
	}, nil
}

// UploadFile writes fileData to objectName in the bucket
func (c *CloudStorageClient) UploadFile(objectName string, fileData io.Reader) error {
	wc := c.Client.Bucket(c.BucketName).Object(objectName).NewWriter(c.Ctx)
	if _, err := io.Copy(wc, fileData); err != nil {
		_ = wc.Close()
		return fmt.Errorf("failed to write data to object: %v", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close object writer: %v", err)
	}
	return nil
}

// DownloadFile opens objectName for reading; the caller closes the reader
func (c *CloudStorageClient) DownloadFile(objectName string) (io.ReadCloser, int64, error) {
	rc, err := c.Client.Bucket(c.BucketName).Object(objectName).NewReader(c.Ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open object %s: %v", objectName, err)
	}
	return rc, rc.Attrs.Size, nil
}

// Close releases the underlying client
func (c *CloudStorageClient) Close() error {
	return c.Client.Close()
}
