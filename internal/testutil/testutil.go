// Package testutil provides shared test helpers for creating config files and recording fixtures.
package testutil

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a config file for the gemini provider without an API key
// and the directories it points to. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"recordings", "dictionaries", "logs"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`assistant:
  provider: gemini
  text_feedback_session: fresh
gemini:
  model: gemini-1.5-flash
audio:
  directory: %s
dictionaries:
  rapidapi:
    cache_directory: %s
log:
  file: %s
`,
		filepath.Join(tmpDir, "recordings"),
		filepath.Join(tmpDir, "dictionaries"),
		filepath.Join(tmpDir, "logs", "wordcoach.log"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithAPIKey creates a config file with a fake Gemini API key for tests
// that require API key validation to pass.
func SetupTestConfigWithAPIKey(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = bytes.Replace(content, []byte("gemini:\n"), []byte("gemini:\n  api_key: fake-key-for-testing\n"), 1)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// CreateWAVFile writes a silent 16-bit mono WAV file of the given number of samples.
func CreateWAVFile(t *testing.T, dir, name string, samples int) string {
	t.Helper()

	const sampleRate = 16000
	dataSize := samples * 2
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize)))
	buf.WriteString("WAVEfmt ")
	for _, v := range []any{
		uint32(16),             // fmt chunk size
		uint16(1),              // PCM
		uint16(1),              // channels
		uint32(sampleRate),     // sample rate
		uint32(sampleRate * 2), // byte rate
		uint16(2),              // block align
		uint16(16),             // bits per sample
	} {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
	}
	buf.WriteString("data")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(dataSize)))
	buf.Write(make([]byte, dataSize))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}
