package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/uvmesh/engine/assets/loaders"
	"github.com/spaghettifunk/uvmesh/engine/bmesh"
	"github.com/spaghettifunk/uvmesh/engine/core"
)

var ErrManagerClosed = errors.New("asset manager already closed")

type AssetInfo struct {
	Path       string
	Type       AssetType
	LastLoaded time.Time
}

type AssetEventOp int

const (
	// AssetChanged is sent when an asset is created or rewritten.
	AssetChanged AssetEventOp = iota
	AssetRemoved
)

func (op AssetEventOp) String() string {
	if op == AssetRemoved {
		return "removed"
	}
	return "changed"
}

type AssetEvent struct {
	Path string
	Type AssetType
	Op   AssetEventOp
}

// AssetManager indexes the models of a directory tree and, when watching,
// keeps the index current and reports every change on Events.
type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[AssetType]Loader

	mutex sync.RWMutex

	done      chan struct{}
	fsnotify  *fsnotify.Watcher
	closeOnce sync.Once
	watching  bool
	stopped   chan struct{}
	events    chan AssetEvent
	errors    chan error
}

// NewAssetManager creates a manager whose models keep their texture
// coordinates in the UV map uvLayer, loaders.DefaultUVLayerName when empty.
func NewAssetManager(uvLayer string) (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[AssetType]Loader),
		fsnotify: fsWatch,
		events:   make(chan AssetEvent, 16),
		errors:   make(chan error, 4),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	am.registerLoader(AssetTypeModel, &loaders.ModelLoader{UVLayerName: uvLayer})
	return am, nil
}

// Initialize indexes every asset below assetsDir. With watch set the
// directories are watched until Shutdown.
func (am *AssetManager) Initialize(assetsDir string, watch bool) error {
	select {
	case <-am.done:
		return ErrManagerClosed
	default:
	}
	if err := am.watchRecursive(assetsDir, watch); err != nil {
		return fmt.Errorf("index %s: %w", assetsDir, err)
	}
	core.LogDebug("indexed %d assets in %s", len(am.Assets()), assetsDir)
	if watch {
		am.watching = true
		go am.start()
	}
	return nil
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType AssetType, loader Loader) {
	am.loaders[assetType] = loader
}

// Events delivers changes to watched assets. It is closed by Shutdown.
func (am *AssetManager) Events() <-chan AssetEvent { return am.events }

// Errors delivers watcher failures. It is closed by Shutdown.
func (am *AssetManager) Errors() <-chan error { return am.errors }

// Assets returns the indexed assets ordered by path.
func (am *AssetManager) Assets() []AssetInfo {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	out := make([]AssetInfo, 0, len(am.assets))
	for _, a := range am.assets {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b AssetInfo) int { return strings.Compare(a.Path, b.Path) })
	return out
}

// LoadAsset reads the asset at path with the loader of its type. The path
// does not need to be indexed.
func (am *AssetManager) LoadAsset(path string) (*bmesh.Mesh, error) {
	assetType := determineAssetType(path)
	loader, exists := am.loaders[assetType]
	if !exists {
		return nil, fmt.Errorf("%s: %w", path, core.ErrUnknownAssetType)
	}
	m, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	am.assets[path] = AssetInfo{Path: path, Type: assetType, LastLoaded: time.Now()}
	am.mutex.Unlock()
	return m, nil
}

// Shutdown stops the watcher and closes Events and Errors.
func (am *AssetManager) Shutdown() error {
	var err error
	am.closeOnce.Do(func() {
		close(am.done)
		if am.watching {
			<-am.stopped
			return
		}
		err = am.fsnotify.Close()
		close(am.events)
		close(am.errors)
	})
	return err
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				am.finish()
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name, true); err != nil {
						core.LogWarn("cannot watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			assetType := determineAssetType(e.Name)
			if assetType == AssetTypeNone {
				continue
			}
			ev := AssetEvent{Path: e.Name, Type: assetType}
			switch {
			case e.Op&(fsnotify.Create|fsnotify.Write) != 0:
				am.handleFileEvent(e.Name)
				ev.Op = AssetChanged
			case e.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				am.removeAsset(e.Name)
				ev.Op = AssetRemoved
			default:
				continue
			}
			select {
			case am.events <- ev:
			case <-am.done:
				am.finish()
				return
			}

		case e, ok := <-am.fsnotify.Errors:
			if !ok {
				am.finish()
				return
			}
			core.LogError(e.Error())
			select {
			case am.errors <- e:
			default:
			}

		case <-am.done:
			am.finish()
			return
		}
	}
}

func (am *AssetManager) finish() {
	am.fsnotify.Close()
	close(am.events)
	close(am.errors)
}

// watchRecursive indexes the assets below path, adding every directory
// to the watch list when watch is set.
func (am *AssetManager) watchRecursive(path string, watch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if watch {
				return am.fsnotify.Add(walkPath)
			}
			return nil
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	assetType := determineAssetType(path)
	if assetType == AssetTypeNone {
		return
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, path)
}

func determineAssetType(path string) AssetType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return AssetTypeModel
	default:
		return AssetTypeNone
	}
}
