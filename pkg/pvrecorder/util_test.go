package pvrecorder

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLibraryPath(t *testing.T) {
	path := DefaultLibraryPath()
	assert.NotEmpty(t, path)
	assert.True(t, strings.HasPrefix(path, "lib"+string(filepath.Separator)))

	switch runtime.GOOS {
	case "darwin":
		assert.True(t, strings.HasSuffix(path, ".dylib"))
	case "windows":
		assert.True(t, strings.HasSuffix(path, ".dll"))
	default:
		assert.True(t, strings.HasSuffix(path, ".so"))
	}
}
