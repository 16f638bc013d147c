package store

import (
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"sightd/internal/models"
)

const fileMode = 0644

// FileManager reads and atomically rewrites whole files. It knows nothing
// about seeding or locking; SightStore and BackupManager handle that.
type FileManager struct{}

func NewFileManager() *FileManager {
	return &FileManager{}
}

// ReadDocument parses the JSON array at fileName. A missing file is returned
// as an error satisfying errors.Is(err, os.ErrNotExist).
func (f *FileManager) ReadDocument(fileName string) ([]*models.Sight, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	return DecodeDocument(data)
}

func DecodeDocument(data []byte) ([]*models.Sight, error) {
	var sights []*models.Sight
	if err := json.Unmarshal(data, &sights); err != nil {
		return nil, err
	}
	if sights == nil {
		sights = []*models.Sight{}
	}
	return sights, nil
}

func (f *FileManager) WriteDocument(fileName string, sights []*models.Sight) error {
	if sights == nil {
		sights = []*models.Sight{}
	}
	data, err := json.MarshalIndent(sights, "", "  ")
	if err != nil {
		return err
	}
	return f.WriteFile(fileName, data)
}

// WriteFile writes data next to fileName and renames it into place, so
// readers only ever see the old or the new content.
func (f *FileManager) WriteFile(fileName string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(fileName), 0755); err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}
