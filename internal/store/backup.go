package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"sightd/internal/providers"
	"sightd/internal/store/interfaces"
	"sightd/internal/structures"
)

const (
	backupPrefix = "sights-"
	backupSuffix = ".json.zst"
)

var ErrNoBackups = errors.New("no backups found")

// BackupManager keeps zstd-compressed copies of the sights document.
type BackupManager struct {
	mu          sync.Mutex
	dir         string
	keep        int
	store       interfaces.SightStoreInterface
	fileManager *FileManager
	compressor  interfaces.CompressorInterface
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	last        time.Time
	now         func() time.Time
}

func NewBackupManager(conf *structures.Config, store interfaces.SightStoreInterface, fileManager *FileManager, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *BackupManager {
	return &BackupManager{
		dir:         conf.Backup.Dir,
		keep:        conf.Backup.Keep,
		store:       store,
		fileManager: fileManager,
		compressor:  compressor,
		logger:      logger,
		metrics:     metrics,
		now:         time.Now,
	}
}

// Snapshot stores the current document and prunes old snapshots. It returns
// the snapshot file name, or "" when there is no document yet.
func (b *BackupManager) Snapshot() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := os.ReadFile(b.store.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		b.metrics.IncBackups("error")
		return "", err
	}

	compressed, err := b.compressor.Compress(data)
	if err != nil {
		b.metrics.IncBackups("error")
		return "", err
	}

	now := b.now()
	name := backupPrefix + strconv.FormatInt(now.UnixNano(), 10) + backupSuffix
	if err := b.fileManager.WriteFile(filepath.Join(b.dir, name), compressed); err != nil {
		b.metrics.IncBackups("error")
		return "", err
	}
	b.last = now
	b.metrics.IncBackups("ok")
	b.logger.Infof(providers.TypeApp, "Snapshot %s written (%d -> %d bytes)", name, len(data), len(compressed))

	if err := b.prune(); err != nil {
		b.logger.Warnf(providers.TypeApp, "Unable to prune snapshots: %s", err)
	}
	return name, nil
}

// List returns snapshot names, oldest first.
func (b *BackupManager) List() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !isBackupName(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Slice(names, func(i, j int) bool {
		return backupStamp(names[i]) < backupStamp(names[j])
	})
	return names, nil
}

// Read returns the decompressed document stored in the named snapshot.
func (b *BackupManager) Read(name string) ([]byte, error) {
	if !isBackupName(name) {
		return nil, fmt.Errorf("invalid snapshot name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(b.dir, name))
	if err != nil {
		return nil, err
	}
	return b.compressor.Decompress(data)
}

// Restore replaces the document with the named snapshot, or the newest one
// when name is empty. The snapshot must decode as a sights document.
func (b *BackupManager) Restore(name string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if name == "" {
		names, err := b.List()
		if err != nil {
			return "", err
		}
		if len(names) == 0 {
			return "", ErrNoBackups
		}
		name = names[len(names)-1]
	}

	data, err := b.Read(name)
	if err != nil {
		return "", err
	}
	sights, err := DecodeDocument(data)
	if err != nil {
		return "", fmt.Errorf("snapshot %s is not a sights document: %w", name, err)
	}
	if err := b.fileManager.WriteFile(b.store.Path(), data); err != nil {
		return "", err
	}
	b.logger.Warnf(providers.TypeApp, "Document %s restored from %s (%d records)", b.store.Path(), name, len(sights))
	return name, nil
}

// LastSnapshot is the time of the last successful snapshot in this process.
func (b *BackupManager) LastSnapshot() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

func (b *BackupManager) prune() error {
	if b.keep <= 0 {
		return nil
	}
	names, err := b.List()
	if err != nil {
		return err
	}
	for len(names) > b.keep {
		if err := os.Remove(filepath.Join(b.dir, names[0])); err != nil {
			return err
		}
		names = names[1:]
	}
	return nil
}

func isBackupName(name string) bool {
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return strings.HasPrefix(name, backupPrefix) && strings.HasSuffix(name, backupSuffix) && backupStamp(name) > 0
}

func backupStamp(name string) int64 {
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, backupPrefix), backupSuffix)
	n, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
