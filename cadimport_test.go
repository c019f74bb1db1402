package cadimport

import (
	"os"
	"path/filepath"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zooyer/cadimport/config"
	"github.com/zooyer/cadimport/core"
)

const line = "0\nSECTION\n2\nENTITIES\n0\nLINE\n5\n1A\n100\nAcDbLine\n10\n0\n20\n0\n11\n3\n21\n4\n0\nENDSEC\n0\nEOF\n"

const solid = `solid s
facet normal 0 0 1
outer loop
vertex 0 0 0
vertex 2 0 0
vertex 0 2 1
endloop
endfacet
endsolid s
`

func write(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{".asc", ".dxf", ".stl"}, Formats())
}

func TestOpen(t *testing.T) {
	m, err := Open(write(t, "plan.dxf", line), config.Default(), nil)
	require.NoError(t, err)
	assert.Equal(t, "dxf", m.Format)
	require.NotNil(t, m.Drawing)
	assert.Len(t, m.Drawing.Lines(), 1)

	box, ok := m.Box()
	require.True(t, ok)
	assert.Equal(t, v3.Vec{X: 3, Y: 4}, box.Max)

	m, err = Open(write(t, "part.STL", solid), config.Default(), nil)
	require.NoError(t, err)
	assert.Equal(t, "stl", m.Format)
	assert.Nil(t, m.Drawing)
	box, ok = m.Box()
	require.True(t, ok)
	assert.Equal(t, v3.Vec{X: 2, Y: 2, Z: 1}, box.Max)

	_, err = Open(write(t, "model.obj", ""), config.Default(), nil)
	assert.ErrorIs(t, err, core.ErrFormatMismatch)
}
