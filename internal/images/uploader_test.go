package images

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUploader_RequiresBucket(t *testing.T) {
	_, err := NewUploader(context.Background(), Config{Region: "auto"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket")
}

func TestUpload_RejectsUnsupportedContentType(t *testing.T) {
	u := &Uploader{bucket: "test"}

	outcome := u.Upload(context.Background(), "resume.gif", "image/gif", strings.NewReader("gifdata"))
	assert.False(t, outcome.OK)
	assert.Contains(t, outcome.Reason, "unsupported content type")
	assert.Empty(t, outcome.URL)
}

func TestUpload_RejectsOversizedBody(t *testing.T) {
	u := &Uploader{bucket: "test"}

	big := bytes.Repeat([]byte{0xFF}, MaxUploadBytes+1)
	outcome := u.Upload(context.Background(), "huge.png", "image/png", bytes.NewReader(big))
	assert.False(t, outcome.OK)
	assert.Contains(t, outcome.Reason, "limit")
}
