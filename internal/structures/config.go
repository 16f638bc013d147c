package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StoreConfig struct {
	FilePath     string   `yaml:"filePath" validate:"required|unixPath"`
	TemplatePath string   `yaml:"templatePath"`
	PicturesDir  string   `yaml:"picturesDir" validate:"required|unixPath"`
	ImagesDir    string   `yaml:"imagesDir"`
	MaxPhotoSize int64    `yaml:"maxPhotoSize"`
	Kinds        []string `yaml:"kinds"`
}

type BackupConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Dir      string        `yaml:"dir"`
	Interval time.Duration `yaml:"interval"`
	Keep     int           `yaml:"keep"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Store     StoreConfig   `yaml:"store"`
	Backup    BackupConfig  `yaml:"backup"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}
