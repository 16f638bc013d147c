package testutil

import (
	"sightd/internal/models"
	"sightd/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockSightStore implements interfaces.SightStoreInterface over an in-memory slice.
type MockSightStore struct {
	mu       sync.Mutex
	Sights   []*models.Sight
	Err      error
	AddCalls int
	FilePath string
	DelCalls []int
}

func (m *MockSightStore) copyAll() []*models.Sight {
	out := make([]*models.Sight, 0, len(m.Sights))
	for _, s := range m.Sights {
		c := *s
		out = append(out, &c)
	}
	return out
}

func (m *MockSightStore) LoadAll() ([]*models.Sight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.copyAll(), nil
}

func (m *MockSightStore) LoadVisible() ([]*models.Sight, error) {
	all, err := m.LoadAll()
	if err != nil {
		return nil, err
	}
	var visible []*models.Sight
	for _, s := range all {
		if s.IsVisible() {
			visible = append(visible, s)
		}
	}
	return visible, nil
}

func (m *MockSightStore) Add(sight *models.Sight) (*models.Sight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	record := *sight
	record.ID = models.MaxID(m.Sights) + 1
	record.Status = models.StatusActive
	m.Sights = append(m.Sights, &record)
	out := record
	return &out, nil
}

func (m *MockSightStore) SoftDelete(id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DelCalls = append(m.DelCalls, id)
	if m.Err != nil {
		return false, m.Err
	}
	for _, s := range m.Sights {
		if s.ID == id {
			s.Status = models.StatusDeleted
			return true, nil
		}
	}
	return false, nil
}

func (m *MockSightStore) Path() string {
	return m.FilePath
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu         sync.Mutex
	Data       map[string][]byte
	ClearCalls int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	m.Data = make(map[string][]byte)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and keeps the last gauge values.
type MockMetrics struct {
	mu            sync.Mutex
	Records       map[string]int
	PersistCalls  int
	Backups       map[string]int
	CacheHits     int
	CacheMisses   int
	RequestsTotal int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestsTotal++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistCalls++
}
func (m *MockMetrics) SetRecordsTotal(status string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Records == nil {
		m.Records = make(map[string]int)
	}
	m.Records[status] = count
}
func (m *MockMetrics) IncBackups(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Backups == nil {
		m.Backups = make(map[string]int)
	}
	m.Backups[result]++
}
