package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditor(t *testing.T) {
	tempDir := filepath.Join(t.TempDir(), "audit")
	auditor := NewAuditor(tempDir)

	t.Run("SaveUpload creates audit directory and saves file", func(t *testing.T) {
		payload := []byte(`[{"text":"A","category":"B"}]`)

		filename, err := auditor.SaveUpload(payload, ".json")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(filename, ".json"))

		_, err = uuid.Parse(strings.TrimSuffix(filename, ".json"))
		assert.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(tempDir, filename))
		require.NoError(t, err)
		assert.Equal(t, payload, content)
	})

	t.Run("SaveUpload generates unique filenames", func(t *testing.T) {
		filename1, err := auditor.SaveUpload([]byte("{}"), "json")
		require.NoError(t, err)
		filename2, err := auditor.SaveUpload([]byte("{}"), "json")
		require.NoError(t, err)

		assert.NotEqual(t, filename1, filename2)
	})

	t.Run("SaveUpload defaults extension to json", func(t *testing.T) {
		filename, err := auditor.SaveUpload([]byte("[]"), "")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(filename, ".json"))
	})
}
