package systems

import (
	"errors"
	"fmt"
)

type SystemManagerConfig struct {
	Workers   int
	QueueSize int
	Report    UVReportSystemConfig
}

type SystemManager struct {
	JobSystem        *JobSystem
	MeshLoaderSystem *MeshLoaderSystem
	UVReportSystem   *UVReportSystem
}

func NewSystemManager(config *SystemManagerConfig, source MeshSource) (*SystemManager, error) {
	if config == nil {
		return nil, fmt.Errorf("system manager requires a config")
	}
	js, err := NewJobSystem(config.Workers, config.QueueSize)
	if err != nil {
		return nil, err
	}
	mls, err := NewMeshLoaderSystem(source, js)
	if err != nil {
		js.Shutdown()
		return nil, err
	}
	rs, err := NewUVReportSystem(&config.Report, js)
	if err != nil {
		js.Shutdown()
		return nil, err
	}
	return &SystemManager{
		JobSystem:        js,
		MeshLoaderSystem: mls,
		UVReportSystem:   rs,
	}, nil
}

// Inspect loads paths and reports on every mesh that loaded.
func (sm *SystemManager) Inspect(paths []string) ([]*UVReport, error) {
	meshes, loadErr := sm.MeshLoaderSystem.LoadAll(paths)
	reports, err := sm.UVReportSystem.AnalyseAll(meshes)
	return reports, errors.Join(loadErr, err)
}

// Shutdown stops the systems in reverse order of their creation.
func (sm *SystemManager) Shutdown() error {
	if err := sm.UVReportSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.MeshLoaderSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.JobSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
