package systems

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/uvmesh/engine/bmesh"
)

// MeshSource reads a mesh from a path, usually the asset manager.
type MeshSource interface {
	LoadAsset(path string) (*bmesh.Mesh, error)
}

type MeshLoaderSystem struct {
	source    MeshSource
	jobSystem *JobSystem
}

func NewMeshLoaderSystem(source MeshSource, js *JobSystem) (*MeshLoaderSystem, error) {
	if source == nil {
		return nil, fmt.Errorf("mesh loader system requires a mesh source")
	}
	if js == nil {
		return nil, fmt.Errorf("mesh loader system requires a job system")
	}
	return &MeshLoaderSystem{
		source:    source,
		jobSystem: js,
	}, nil
}

func (mls *MeshLoaderSystem) Shutdown() error {
	return nil
}

/**
 * @brief Loads every path on the job system.
 *
 * @param paths The files to read.
 * @return The meshes that loaded, in the order of paths, and the joined
 * errors of the ones that did not.
 */
func (mls *MeshLoaderSystem) LoadAll(paths []string) ([]NamedMesh, error) {
	meshes := make([]*bmesh.Mesh, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		err := mls.jobSystem.Submit(JobTask{
			Name:        "load " + p,
			InputParams: p,
			OnStart: func(params interface{}) (interface{}, error) {
				return mls.source.LoadAsset(params.(string))
			},
			OnComplete: func(result interface{}) {
				meshes[i] = result.(*bmesh.Mesh)
			},
			OnFailure: func(err error) {
				errs[i] = err
			},
			OnCompletionCallback: wg.Done,
		})
		if err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()

	out := make([]NamedMesh, 0, len(paths))
	for i, m := range meshes {
		if m != nil {
			out = append(out, NamedMesh{Name: paths[i], Mesh: m})
		}
	}
	return out, errors.Join(errs...)
}
