package systems

import (
	"bytes"
	"fmt"

	"github.com/spaghettifunk/blitz/engine/assets/loaders"
	"github.com/spaghettifunk/blitz/engine/core"
	"github.com/spaghettifunk/blitz/engine/geometry"
	"github.com/spaghettifunk/blitz/engine/renderer/metadata"
)

// MeshLoaded receives a parsed and normalized mesh on the main loop.
type MeshLoaded func(name string, mesh *geometry.NormalizedMesh)

// MeshFailed receives the reason a mesh could not be loaded on the main loop.
type MeshFailed func(name string, err error)

// MeshLoaderSystem parses OBJ files and normalizes them off the main loop.
type MeshLoaderSystem struct {
	jobSystem *JobSystem
	loader    *loaders.OBJLoader
}

func NewMeshLoaderSystem(js *JobSystem) (*MeshLoaderSystem, error) {
	if js == nil {
		return nil, fmt.Errorf("func NewMeshLoaderSystem - job system is required")
	}
	return &MeshLoaderSystem{
		jobSystem: js,
		loader:    &loaders.OBJLoader{},
	}, nil
}

func (mls *MeshLoaderSystem) Shutdown() error {
	return nil
}

// LoadFromFile reads and normalizes the OBJ file at path.
func (mls *MeshLoaderSystem) LoadFromFile(path string, onLoaded MeshLoaded, onFailed MeshFailed) error {
	return mls.submit(path, func() (*loaders.MeshData, error) {
		res, err := mls.loader.Load(path)
		if err != nil {
			return nil, err
		}
		return res.Data.(*loaders.MeshData), nil
	}, onLoaded, onFailed)
}

// LoadFromBytes normalizes OBJ contents that are already in memory.
func (mls *MeshLoaderSystem) LoadFromBytes(name string, data []byte, onLoaded MeshLoaded, onFailed MeshFailed) error {
	return mls.submit(name, func() (*loaders.MeshData, error) {
		return loaders.ParseOBJ(bytes.NewReader(data))
	}, onLoaded, onFailed)
}

func (mls *MeshLoaderSystem) submit(name string, parse func() (*loaders.MeshData, error), onLoaded MeshLoaded, onFailed MeshFailed) error {
	return mls.jobSystem.Submit(metadata.JobTask{
		Name: "mesh:" + name,
		EntryPoint: func() (interface{}, error) {
			return mls.meshLoadJobStart(parse)
		},
		OnComplete: func(result interface{}) {
			mesh := result.(*geometry.NormalizedMesh)
			core.LogDebug("Successfully loaded mesh '%s' (%d vertices).", name, len(mesh.Vertices))
			if onLoaded != nil {
				onLoaded(name, mesh)
			}
		},
		OnFailure: func(err error) {
			core.LogError("Failed to load mesh '%s': %s", name, err)
			if onFailed != nil {
				onFailed(name, err)
			}
		},
	})
}

func (mls *MeshLoaderSystem) meshLoadJobStart(parse func() (*loaders.MeshData, error)) (*geometry.NormalizedMesh, error) {
	data, err := parse()
	if err != nil {
		return nil, err
	}
	return geometry.NormalizeMesh(data.Indices, data.Positions, data.Normals, data.UVs)
}
