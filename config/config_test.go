package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zooyer/cadimport/core"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.DXF.Blocks, "块默认关闭")
	assert.True(t, cfg.DXF.Circles)
	assert.True(t, cfg.Mesh.Edges)
	assert.Equal(t, 30.0, cfg.Mesh.AngleLimit)
}

func TestDecode(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
[dxf]
circles = false
blocks = true

[mesh]
angle_limit = 45.5
`))
	require.NoError(t, err)
	assert.False(t, cfg.DXF.Circles)
	assert.True(t, cfg.DXF.Blocks)
	assert.True(t, cfg.DXF.Lines, "缺失的键保留默认值")
	assert.Equal(t, 45.5, cfg.Mesh.AngleLimit)
	assert.True(t, cfg.Mesh.VertexNormals)

	_, err = Decode(strings.NewReader("[dxf]\ncircle = false\n"))
	assert.ErrorIs(t, err, core.ErrMalformedField, "未知的键")

	_, err = Decode(strings.NewReader("[mesh\n"))
	assert.ErrorIs(t, err, core.ErrMalformedField)
}

func TestLoadAndEncode(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.Mesh.AngleLimit = 12
	require.NoError(t, cfg.Encode(&buf))
	assert.NotContains(t, buf.String(), "Logger")

	path := filepath.Join(t.TempDir(), "cadimport.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, core.ErrIO)
}
