package minio

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptions_EndpointURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000", Options{Endpoint: "localhost:9000"}.endpointURL())
	assert.Equal(t, "https://s3.example.com", Options{Endpoint: "s3.example.com", UseSSL: true}.endpointURL())
}

func TestObjectURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000/cafe-images/cafes/12/image", objectURL("http://localhost:9000", "cafe-images", "cafes/12/image"))
}

func TestNewMinioClient_RequiresCredentials(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewMinioClient(context.Background(), Options{Endpoint: "localhost:9000", Bucket: "cafe-images"}, logger)
	assert.Error(t, err)
}
