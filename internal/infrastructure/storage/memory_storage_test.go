package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryObjectStorage(t *testing.T) {
	s := NewMemoryObjectStorage("products")
	ctx := context.Background()
	assert.Equal(t, "products", s.GetBucket())

	data := []byte("image-bytes")
	require.NoError(t, s.Upload(ctx, "a.png", data, "image/png"))
	data[0] = 'X'

	obj, ok := s.Get("a.png")
	require.True(t, ok)
	assert.Equal(t, "image-bytes", string(obj.Data), "stored data must be a copy")
	assert.Equal(t, "image/png", obj.ContentType)

	exists, err := s.ObjectExists(ctx, "a.png")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.DeleteObject(ctx, "a.png"))
	require.NoError(t, s.DeleteObject(ctx, "a.png"))
	assert.Equal(t, 0, s.Len())

	assert.Error(t, s.Upload(ctx, "", data, "image/png"))
	_, err = s.ObjectExists(ctx, "")
	assert.Error(t, err)
}
