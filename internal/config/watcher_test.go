package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// MockLogger implements Logger for testing.
type MockLogger struct {
	mu       sync.Mutex
	messages []LogMessage
	counts   struct {
		info  int64
		error int64
		debug int64
	}
}

type LogMessage struct {
	Level   string
	Message string
	Time    time.Time
}

func (m *MockLogger) Infof(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	atomic.AddInt64(&m.counts.info, 1)
	m.messages = append(m.messages, LogMessage{Level: "INFO", Message: fmt.Sprintf(format, args...), Time: time.Now()})
}

func (m *MockLogger) Errorf(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	atomic.AddInt64(&m.counts.error, 1)
	m.messages = append(m.messages, LogMessage{Level: "ERROR", Message: fmt.Sprintf(format, args...), Time: time.Now()})
}

func (m *MockLogger) Debugf(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	atomic.AddInt64(&m.counts.debug, 1)
	m.messages = append(m.messages, LogMessage{Level: "DEBUG", Message: fmt.Sprintf(format, args...), Time: time.Now()})
}

func (m *MockLogger) GetMessages() []LogMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LogMessage(nil), m.messages...)
}

func (m *MockLogger) GetCounts() (info, error, debug int64) {
	return atomic.LoadInt64(&m.counts.info), atomic.LoadInt64(&m.counts.error), atomic.LoadInt64(&m.counts.debug)
}

func TestFileWatcher_Creation(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")
	if err := os.WriteFile(configPath, []byte("version: \"1.0\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("with default logger", func(t *testing.T) {
		fw, err := NewFileWatcher(configPath, nil)
		if err != nil {
			t.Fatalf("expected file watcher to be created: %v", err)
		}
		if fw.watchedPath != configPath {
			t.Errorf("expected watched path %s, got %s", configPath, fw.watchedPath)
		}
	})

	t.Run("with custom logger", func(t *testing.T) {
		logger := &MockLogger{}
		fw, err := NewFileWatcher(configPath, logger)
		if err != nil {
			t.Fatalf("expected file watcher to be created: %v", err)
		}
		if fw.logger != logger {
			t.Error("expected custom logger to be set")
		}
	})
}

func TestFileWatcher_DetectsWrite(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")
	if err := os.WriteFile(configPath, []byte("version: \"1.0\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	logger := &MockLogger{}
	fw, err := NewFileWatcher(configPath, logger)
	if err != nil {
		t.Fatal(err)
	}

	var received int32
	fw.OnChange(func(ev ConfigChangeEvent) {
		if ev.Type == ChangeTypeModified {
			atomic.AddInt32(&received, 1)
		}
	})

	if err := fw.Start(); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	defer fw.Stop()

	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(configPath, []byte("version: \"2.0\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&received) == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}

	if atomic.LoadInt32(&received) == 0 {
		t.Error("expected at least one modified event")
	}
}

func TestFileWatcher_NonExistentFile(t *testing.T) {
	tmpDir := t.TempDir()
	fw, err := NewFileWatcher(filepath.Join(tmpDir, "missing.yaml"), nil)
	if err != nil {
		t.Fatal(err)
	}
	// The containing directory exists, so Start succeeds even though the
	// file itself does not yet — a later Create event is what a Manager
	// watching a not-yet-written config would rely on.
	if err := fw.Start(); err != nil {
		t.Fatalf("expected Start to succeed watching an existing directory: %v", err)
	}
	fw.Stop()
}

func TestManagerWatch(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")
	if err := os.WriteFile(configPath, []byte("version: \"1.0\"\nselection:\n  default_indirect_selection: eager\n"), 0644); err != nil {
		t.Fatal(err)
	}

	manager := NewManager()
	if err := manager.Load(configPath); err != nil {
		t.Fatal(err)
	}

	if err := manager.Watch(); err != nil {
		t.Fatalf("failed to start watch: %v", err)
	}
	defer manager.StopWatch()

	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(configPath, []byte("version: \"1.0\"\nselection:\n  default_indirect_selection: cautious\n"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if manager.Get().Selection.DefaultIndirectSelection == "cautious" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("expected config to hot-reload to 'cautious'")
}

func TestChangeDetector(t *testing.T) {
	oldConfig := &Config{
		Selection: SelectionConfig{
			DefaultIndirectSelection: "eager",
		},
		Features: map[string]bool{
			"feature1": true,
			"feature2": false,
			"feature3": true,
		},
	}

	t.Run("detect modified values", func(t *testing.T) {
		newConfig := &Config{
			Selection: SelectionConfig{
				DefaultIndirectSelection: "cautious",
			},
			Features: map[string]bool{
				"feature1": true,
				"feature2": true, // changed
				"feature3": true,
			},
		}

		detector := NewChangeDetector(oldConfig, newConfig)
		changes := detector.DetectChanges()

		foundModeChange := false
		foundFeatureChange := false

		for _, change := range changes {
			switch change.Path {
			case "selection.default_indirect_selection":
				foundModeChange = true
				if change.Type != ChangeTypeModified {
					t.Error("expected modified type for indirect selection change")
				}
				if change.OldValue != "eager" || change.NewValue != "cautious" {
					t.Error("incorrect values for indirect selection change")
				}
			case "features.feature2":
				foundFeatureChange = true
				if change.OldValue != false || change.NewValue != true {
					t.Error("incorrect values for feature2 change")
				}
			}
		}

		if !foundModeChange || !foundFeatureChange {
			t.Error("expected changes not found")
		}
	})

	t.Run("detect added features", func(t *testing.T) {
		newConfig := &Config{
			Selection: oldConfig.Selection,
			Features: map[string]bool{
				"feature1": true,
				"feature2": false,
				"feature3": true,
				"feature4": true, // new
			},
		}

		detector := NewChangeDetector(oldConfig, newConfig)
		changes := detector.DetectChanges()

		foundNewFeature := false
		for _, change := range changes {
			if change.Path == "features.feature4" && change.Type == ChangeTypeCreated {
				foundNewFeature = true
				if change.NewValue != true {
					t.Error("incorrect value for new feature")
				}
			}
		}

		if !foundNewFeature {
			t.Error("expected new feature to be detected")
		}
	})

	t.Run("detect deleted features", func(t *testing.T) {
		newConfig := &Config{
			Selection: oldConfig.Selection,
			Features: map[string]bool{
				"feature1": true,
				"feature3": true,
			},
		}

		detector := NewChangeDetector(oldConfig, newConfig)
		changes := detector.DetectChanges()

		foundDeletedFeature := false
		for _, change := range changes {
			if change.Path == "features.feature2" && change.Type == ChangeTypeDeleted {
				foundDeletedFeature = true
				if change.OldValue != false {
					t.Error("incorrect old value for deleted feature")
				}
			}
		}

		if !foundDeletedFeature {
			t.Error("expected deleted feature to be detected")
		}
	})
}

func BenchmarkChangeDetector_LargeConfig(b *testing.B) {
	oldFeatures := make(map[string]bool)
	newFeatures := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		key := fmt.Sprintf("feature_%d", i)
		oldFeatures[key] = i%2 == 0
		newFeatures[key] = i%3 == 0
	}

	oldConfig := &Config{Features: oldFeatures}
	newConfig := &Config{Features: newFeatures}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		detector := NewChangeDetector(oldConfig, newConfig)
		_ = detector.DetectChanges()
	}
}
