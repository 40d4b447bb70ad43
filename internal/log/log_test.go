package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func initTestLogger(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	cleanup, err := Init(path, "test")
	require.NoError(t, err)
	t.Cleanup(func() {
		cleanup()
		defaultLogger = nil
	})
	return path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestLog_WritesStructuredEntry(t *testing.T) {
	path := initTestLogger(t)

	Info(CatCache, "cache hit", "doc", "readme.md", "version", 3)

	out := readLog(t, path)
	require.Contains(t, out, "[INFO]")
	require.Contains(t, out, "[cache]")
	require.Contains(t, out, "cache hit")
	require.Contains(t, out, "doc=readme.md")
	require.Contains(t, out, "version=3")
}

func TestLog_MinLevelFilters(t *testing.T) {
	path := initTestLogger(t)
	SetMinLevel(LevelWarn)

	Debug(CatEngine, "not written")
	Warn(CatEngine, "written")

	out := readLog(t, path)
	require.NotContains(t, out, "not written")
	require.Contains(t, out, "written")
}

func TestLog_DisabledWritesNothing(t *testing.T) {
	path := initTestLogger(t)
	SetEnabled(false)

	Error(CatUI, "silenced")

	require.NotContains(t, readLog(t, path), "silenced")
}

func TestLog_ErrorErr(t *testing.T) {
	path := initTestLogger(t)

	ErrorErr(CatWatcher, "watch failed", os.ErrNotExist, "path", "x.md")

	out := readLog(t, path)
	require.Contains(t, out, "[ERROR]")
	require.Contains(t, out, "error=file does not exist")
	require.Contains(t, out, "path=x.md")
}

func TestLog_OddFieldCount(t *testing.T) {
	path := initTestLogger(t)

	Info(CatConfig, "lonely key", "orphan")

	require.Contains(t, readLog(t, path), "orphan=<missing>")
}

func TestLog_NoopWithoutInit(t *testing.T) {
	defaultLogger = nil
	Debug(CatExtract, "dropped on the floor") // must not panic
}

func TestLevel_String(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "INFO", LevelInfo.String())
	require.Equal(t, "WARN", LevelWarn.String())
	require.Equal(t, "ERROR", LevelError.String())
}
