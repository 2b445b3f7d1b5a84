package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"sceneeditor/internal/editor"
	"sceneeditor/internal/scene"
)

var ErrNoScene = errors.New("project: no current scene")

// Storage persists project documents by name.
type Storage interface {
	Save(name string, data []byte) error
	Load(name string) ([]byte, error)
}

// LocalStorage keeps projects as files in Dir.
type LocalStorage struct {
	Dir string
}

func (l LocalStorage) Path(name string) string {
	return filepath.Join(l.Dir, name)
}

// Save writes through a temporary file so a crash never leaves a truncated
// project behind.
func (l LocalStorage) Save(name string, data []byte) error {
	if err := os.MkdirAll(l.Dir, 0755); err != nil {
		return fmt.Errorf("create project dir: %w", err)
	}
	path := l.Path(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func (l LocalStorage) Load(name string) ([]byte, error) {
	data, err := os.ReadFile(l.Path(name))
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	return data, nil
}

// StorageExporter saves the current scene of the core to a storage and
// loads it back.
type StorageExporter struct {
	core    *editor.Core
	storage Storage
	name    string
	logger  *zap.Logger

	// Base builds the scene a project is applied onto. Defaults to an empty
	// scene named after the project.
	Base func() *scene.Scene
	// Reloaded runs after an import replaced the current scene.
	Reloaded func(*scene.Scene)

	// synced is the document last written or applied.
	synced []byte
}

func NewStorageExporter(core *editor.Core, storage Storage, name string, logger *zap.Logger) *StorageExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorageExporter{
		core:    core,
		storage: storage,
		name:    name,
		logger:  logger.Named("project"),
	}
}

func (e *StorageExporter) Name() string { return e.name }

func (e *StorageExporter) Export() error {
	s := e.core.CurrentScene()
	if s == nil {
		return ErrNoScene
	}
	data, err := Marshal(Export(s))
	if err != nil {
		return err
	}
	if err := e.storage.Save(e.name, data); err != nil {
		return err
	}
	e.synced = data
	e.logger.Info("project exported", zap.String("name", e.name), zap.Int("bytes", len(data)))
	return nil
}

// Import loads the project and swaps it in for the current scene. The
// current scene is left untouched when anything fails.
func (e *StorageExporter) Import() error {
	data, err := e.storage.Load(e.name)
	if err != nil {
		return err
	}
	return e.apply(data)
}

// Reload imports the project only when the stored document differs from the
// one last exported or imported, so the editor's own saves are not applied
// back onto the scene. It reports whether the scene was replaced.
func (e *StorageExporter) Reload() (bool, error) {
	data, err := e.storage.Load(e.name)
	if err != nil {
		return false, err
	}
	if e.synced != nil && bytes.Equal(data, e.synced) {
		return false, nil
	}
	if err := e.apply(data); err != nil {
		return false, err
	}
	return true, nil
}

func (e *StorageExporter) apply(data []byte) error {
	p, err := Unmarshal(data)
	if err != nil {
		return err
	}

	var s *scene.Scene
	if e.Base != nil {
		s = e.Base()
	} else {
		s = scene.New(p.GlobalConfiguration.Name)
	}
	if err := NewImporter(e.logger).Apply(s, p); err != nil {
		return fmt.Errorf("import %s: %w", e.name, err)
	}

	e.core.ReplaceScene(e.core.CurrentScene(), s)
	e.core.SetCurrentScene(s)
	e.synced = data
	e.logger.Info("project imported", zap.String("name", e.name), zap.Int("objects", len(s.Objects())))
	if e.Reloaded != nil {
		e.Reloaded(s)
	}
	return nil
}
