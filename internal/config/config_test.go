package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(`
aws:
  access_key_id: AKIA
  secret_access_key: secret
`))
	require.NoError(t, err)

	assert.Equal(t, DefaultInputRoot, cfg.Input)
	assert.Equal(t, DefaultOutputRoot, cfg.Output)
	assert.Equal(t, DefaultRegion, cfg.AWS.Region)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Greater(t, cfg.Workers, 0)
}

func TestParse_MissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no aws section", `workers: 2`},
		{"no secret", "aws:\n  access_key_id: AKIA\n"},
		{"s3 output only", "input: /data/in\noutput: s3://bucket/out\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.ErrorIs(t, err, ErrMissingCredentials)
		})
	}
}

func TestParse_LocalRootsNeedNoCredentials(t *testing.T) {
	cfg, err := Parse([]byte("input: /data/in\noutput: /data/out\nworkers: 3\nlog_level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, "/data/in", cfg.Input)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("aws: [unclosed"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
aws:
  access_key_id: AKIA
  secret_access_key: secret
  region: eu-west-1
  endpoint: http://localhost:9000
  force_path_style: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.AWS.Region)
	assert.Equal(t, "http://localhost:9000", cfg.AWS.Endpoint)
	assert.True(t, cfg.AWS.ForcePathStyle)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestIsS3(t *testing.T) {
	assert.True(t, IsS3("s3://bucket/"))
	assert.True(t, IsS3("s3a://udacity-dend/"))
	assert.False(t, IsS3("/tmp/data"))
	assert.False(t, IsS3("data/s3://"))
}
