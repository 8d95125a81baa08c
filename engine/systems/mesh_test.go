package systems

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/blitz/engine/assets/loaders"
	"github.com/spaghettifunk/blitz/engine/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangleOBJ = `v 0 0 0
v 2 0 0
v 0 2 0
vt 0 0
vt 1 0
vt 0 1
f 1/1 2/2 3/3
`

func TestMeshLoaderSystem(t *testing.T) {
	js, err := NewJobSystem(1, 4)
	require.NoError(t, err)
	defer js.Shutdown()
	mls, err := NewMeshLoaderSystem(js)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tri.obj")
	require.NoError(t, os.WriteFile(path, []byte(triangleOBJ), 0o644))

	var loaded *geometry.NormalizedMesh
	require.NoError(t, mls.LoadFromFile(path, func(name string, mesh *geometry.NormalizedMesh) {
		assert.Equal(t, path, name)
		loaded = mesh
	}, nil))
	assert.Nil(t, loaded, "nothing is applied before the main loop updates")

	js.Wait()
	require.NotNil(t, loaded)
	assert.Len(t, loaded.Vertices, 3)
	assert.NotNil(t, loaded.Vertices[0].UV)
	assert.Nil(t, loaded.Vertices[0].Normal)
}

func TestMeshLoaderSystemFailures(t *testing.T) {
	js, err := NewJobSystem(1, 4)
	require.NoError(t, err)
	defer js.Shutdown()
	mls, err := NewMeshLoaderSystem(js)
	require.NoError(t, err)

	var errs []error
	onFailed := func(_ string, err error) { errs = append(errs, err) }

	require.NoError(t, mls.LoadFromBytes("bad.obj", []byte("v 1 2\n"), nil, onFailed))
	require.NoError(t, mls.LoadFromBytes("empty.obj", []byte("# nothing\n"), nil, onFailed))
	js.Wait()

	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], loaders.ErrMalformedOBJ)
	assert.ErrorIs(t, errs[1], geometry.ErrEmptyMesh)

	_, err = NewMeshLoaderSystem(nil)
	assert.Error(t, err)
}
