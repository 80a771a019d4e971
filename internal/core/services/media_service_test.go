package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/appfrabric/roilux/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var gifImage = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

func TestMediaService(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	media, err := NewMediaService(root, zap.NewNop().Sugar())
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(root, "images"))
	assert.DirExists(t, filepath.Join(root, "videos"))

	t.Run("stores sniffed image", func(t *testing.T) {
		file, err := media.Save(ctx, MediaImage, bytes.NewReader(gifImage))
		require.NoError(t, err)
		assert.Equal(t, "image/gif", file.MimeType)
		assert.Equal(t, ".gif", filepath.Ext(file.Filename))

		path, err := media.Path(MediaImage, file.Filename)
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, gifImage, data)

		// kinds do not share a directory
		_, err = media.Path(MediaVideo, file.Filename)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("rejects wrong family", func(t *testing.T) {
		_, err := media.Save(ctx, MediaVideo, bytes.NewReader(gifImage))
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "file", ve.Field)

		entries, err := os.ReadDir(filepath.Join(root, "videos"))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("rejects non plain names", func(t *testing.T) {
		for _, name := range []string{"", "..", "../images", "a/b.gif", ".upload-1"} {
			_, err := media.Path(MediaImage, name)
			require.ErrorIs(t, err, domain.ErrNotFound, name)
		}
	})
}

func TestCatalogService(t *testing.T) {
	catalog := NewCatalogService()

	require.Len(t, catalog.Categories(), 5)

	melamine, err := catalog.Products("melamine")
	require.NoError(t, err)
	assert.Equal(t, "Prefinished Melamine", melamine.Title)
	assert.Len(t, melamine.Products, 2)

	_, err = catalog.Products("logs")
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.Contains(t, catalog.CompanyInfo().Certifications, "FSC Certified")
}
