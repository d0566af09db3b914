package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches a single configuration file for changes using
// fsnotify, notifying registered hooks on write/create/remove events.
type FileWatcher struct {
	watcher     *fsnotify.Watcher
	watchedPath string
	logger      Logger

	mu    sync.Mutex
	hooks []func(ConfigChangeEvent)
	done  chan struct{}
}

// Logger is the file watcher's logging dependency.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// DefaultLogger implements Logger using Go's standard log package.
type DefaultLogger struct{}

func (l DefaultLogger) Infof(format string, args ...interface{}) {
	log.Printf("[INFO] "+format, args...)
}

func (l DefaultLogger) Errorf(format string, args ...interface{}) {
	log.Printf("[ERROR] "+format, args...)
}

func (l DefaultLogger) Debugf(format string, args ...interface{}) {
	log.Printf("[DEBUG] "+format, args...)
}

// NewFileWatcher creates a watcher on the directory containing path (editors
// typically replace a file via rename, which an fsnotify watch on the bare
// file misses) and filters events back down to that one path.
func NewFileWatcher(path string, logger Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = DefaultLogger{}
	}

	expanded, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:     w,
		watchedPath: expanded,
		logger:      logger,
		done:        make(chan struct{}),
	}, nil
}

// OnChange registers a callback invoked for every change event.
func (fw *FileWatcher) OnChange(hook func(ConfigChangeEvent)) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.hooks = append(fw.hooks, hook)
}

// Start begins watching the configuration file's directory.
func (fw *FileWatcher) Start() error {
	dir := dirOf(fw.watchedPath)
	if err := fw.watcher.Add(dir); err != nil {
		return fmt.Errorf("watching config directory %s: %w", dir, err)
	}

	fw.logger.Infof("watching config file: %s", fw.watchedPath)

	go fw.loop()
	return nil
}

// Stop stops the watcher and releases its inotify/kqueue handle.
func (fw *FileWatcher) Stop() {
	fw.logger.Infof("stopping config file watcher")
	_ = fw.watcher.Close()
	<-fw.done
}

func (fw *FileWatcher) loop() {
	defer close(fw.done)
	for {
		select {
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if ev.Name != fw.watchedPath {
				continue
			}
			fw.dispatch(ev)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Errorf("config watcher error: %v", err)
		}
	}
}

func (fw *FileWatcher) dispatch(ev fsnotify.Event) {
	var changeType ChangeType
	switch {
	case ev.Op&fsnotify.Create != 0:
		changeType = ChangeTypeCreated
	case ev.Op&fsnotify.Write != 0:
		changeType = ChangeTypeModified
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		changeType = ChangeTypeDeleted
	default:
		return
	}

	event := ConfigChangeEvent{Type: changeType, Path: ev.Name, Time: time.Now()}

	fw.mu.Lock()
	hooks := make([]func(ConfigChangeEvent), len(fw.hooks))
	copy(hooks, fw.hooks)
	fw.mu.Unlock()

	for _, hook := range hooks {
		hook(event)
	}
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}

// ConfigChangeEvent represents a filesystem-level configuration file
// change, or (from ChangeDetector) a semantic field-level one.
type ConfigChangeEvent struct {
	Type     ChangeType
	Path     string
	OldValue interface{}
	NewValue interface{}
	Time     time.Time
}

// ChangeType represents the kind of configuration change.
type ChangeType string

const (
	ChangeTypeCreated  ChangeType = "created"
	ChangeTypeModified ChangeType = "modified"
	ChangeTypeDeleted  ChangeType = "deleted"
)

// ChangeDetector diffs two resolved Config values field by field, used to
// report what a hot-reload actually changed (as opposed to the raw
// filesystem event that triggered the reload).
type ChangeDetector struct {
	oldConfig *Config
	newConfig *Config
}

// NewChangeDetector creates a new change detector.
func NewChangeDetector(oldConfig, newConfig *Config) *ChangeDetector {
	return &ChangeDetector{
		oldConfig: oldConfig,
		newConfig: newConfig,
	}
}

// DetectChanges detects what has changed between configurations.
func (cd *ChangeDetector) DetectChanges() []ConfigChangeEvent {
	var events []ConfigChangeEvent
	now := time.Now()

	if cd.oldConfig.Selection.DefaultIndirectSelection != cd.newConfig.Selection.DefaultIndirectSelection {
		events = append(events, ConfigChangeEvent{
			Type:     ChangeTypeModified,
			Path:     "selection.default_indirect_selection",
			OldValue: cd.oldConfig.Selection.DefaultIndirectSelection,
			NewValue: cd.newConfig.Selection.DefaultIndirectSelection,
			Time:     now,
		})
	}

	if cd.oldConfig.Selection.PreviousStateFile != cd.newConfig.Selection.PreviousStateFile {
		events = append(events, ConfigChangeEvent{
			Type:     ChangeTypeModified,
			Path:     "selection.previous_state_file",
			OldValue: cd.oldConfig.Selection.PreviousStateFile,
			NewValue: cd.newConfig.Selection.PreviousStateFile,
			Time:     now,
		})
	}

	if !stringSliceEqual(cd.oldConfig.Selection.DefaultResourceTypes, cd.newConfig.Selection.DefaultResourceTypes) {
		events = append(events, ConfigChangeEvent{
			Type:     ChangeTypeModified,
			Path:     "selection.default_resource_types",
			OldValue: cd.oldConfig.Selection.DefaultResourceTypes,
			NewValue: cd.newConfig.Selection.DefaultResourceTypes,
			Time:     now,
		})
	}

	if cd.oldConfig.Logging.Level != cd.newConfig.Logging.Level {
		events = append(events, ConfigChangeEvent{
			Type:     ChangeTypeModified,
			Path:     "logging.level",
			OldValue: cd.oldConfig.Logging.Level,
			NewValue: cd.newConfig.Logging.Level,
			Time:     now,
		})
	}

	for featureName, newValue := range cd.newConfig.Features {
		if oldValue, exists := cd.oldConfig.Features[featureName]; exists {
			if oldValue != newValue {
				events = append(events, ConfigChangeEvent{
					Type:     ChangeTypeModified,
					Path:     fmt.Sprintf("features.%s", featureName),
					OldValue: oldValue,
					NewValue: newValue,
					Time:     now,
				})
			}
		} else {
			events = append(events, ConfigChangeEvent{
				Type:     ChangeTypeCreated,
				Path:     fmt.Sprintf("features.%s", featureName),
				NewValue: newValue,
				Time:     now,
			})
		}
	}

	for featureName, oldValue := range cd.oldConfig.Features {
		if _, exists := cd.newConfig.Features[featureName]; !exists {
			events = append(events, ConfigChangeEvent{
				Type:     ChangeTypeDeleted,
				Path:     fmt.Sprintf("features.%s", featureName),
				OldValue: oldValue,
				Time:     now,
			})
		}
	}

	return events
}
