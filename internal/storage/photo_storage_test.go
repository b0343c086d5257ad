package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPhotoStorage_SaveAndDelete(t *testing.T) {
	st, err := NewPhotoStorage(t.TempDir(), 1)
	assert.NoError(t, err)

	userID := uuid.New()
	content := "содержимое фотографии"

	rel, size, err := st.Save(context.Background(), userID, "photo.jpg", strings.NewReader(content))
	assert.NoError(t, err)
	assert.Equal(t, int64(len(content)), size)
	assert.True(t, strings.HasPrefix(rel, userID.String()))
	assert.Equal(t, ".jpg", filepath.Ext(rel))

	full := filepath.Join(st.Root(), rel)
	data, err := os.ReadFile(full)
	assert.NoError(t, err)
	assert.Equal(t, content, string(data))

	assert.NoError(t, st.Delete(context.Background(), rel))
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err))
}

func TestPhotoStorage_RejectsOversizedFile(t *testing.T) {
	st, err := NewPhotoStorage(t.TempDir(), 1)
	assert.NoError(t, err)

	big := strings.NewReader(strings.Repeat("x", 1024*1024+1))
	_, _, err = st.Save(context.Background(), uuid.New(), "big.png", big)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "превышает лимит")
}

func TestPhotoStorage_DeleteMissingFileIsNoop(t *testing.T) {
	st, err := NewPhotoStorage(t.TempDir(), 1)
	assert.NoError(t, err)

	assert.NoError(t, st.Delete(context.Background(), "нет/такого/файла.jpg"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "photo.jpg", sanitizeFilename("photo.jpg"))
	assert.Equal(t, "photo.jpg", sanitizeFilename("../../photo.jpg"))
	assert.Equal(t, "photo", sanitizeFilename(""))
}
