package config

import "fmt"

// Поддерживаемые драйверы хранилища
const (
	DriverMemory   = "memory"
	DriverYAML     = "yaml"
	DriverJSONL    = "jsonl"
	DriverSQLite   = "sqlite"
	DriverProtobuf = "protobuf"
)

// Drivers возвращает все поддерживаемые драйверы
func Drivers() []string {
	return []string{DriverMemory, DriverYAML, DriverJSONL, DriverSQLite, DriverProtobuf}
}

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level string `mapstructure:"level"`
}

// ConfigStorage настройки хранилища заметок
type ConfigStorage struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// ConfigDisplay настройки вывода
type ConfigDisplay struct {
	PageSize int  `mapstructure:"page_size"`
	Color    bool `mapstructure:"color"`
}

// Config основная структура конфигурации
type Config struct {
	Logger  *ConfigLogger  `mapstructure:"logger"`
	Storage *ConfigStorage `mapstructure:"storage"`
	Display *ConfigDisplay `mapstructure:"display"`
}

// Default конфигурация без файла: YAML-хранилище в текущем каталоге
func Default() *Config {
	return &Config{
		Logger:  &ConfigLogger{Level: "info"},
		Storage: &ConfigStorage{Driver: DriverYAML, Path: "notes.yaml"},
		Display: &ConfigDisplay{PageSize: 3, Color: true},
	}
}

// fillDefaults заполняет пропущенные секции и поля
func (c *Config) fillDefaults() {
	def := Default()
	if c.Logger == nil {
		c.Logger = def.Logger
	}
	if c.Logger.Level == "" {
		c.Logger.Level = def.Logger.Level
	}
	if c.Storage == nil {
		c.Storage = def.Storage
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = def.Storage.Driver
	}
	if c.Storage.Path == "" {
		c.Storage.Path = DefaultPath(c.Storage.Driver)
	}
	if c.Display == nil {
		c.Display = def.Display
	}
	if c.Display.PageSize <= 0 {
		c.Display.PageSize = def.Display.PageSize
	}
}

// DefaultPath путь к хранилищу по умолчанию для драйвера
func DefaultPath(driver string) string {
	switch driver {
	case DriverJSONL:
		return "notes.jsonl"
	case DriverSQLite:
		return "notes.db"
	case DriverProtobuf:
		return "notes.pb"
	case DriverMemory:
		return ""
	default:
		return "notes.yaml"
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	for _, d := range Drivers() {
		if c.Storage.Driver == d {
			return nil
		}
	}
	return fmt.Errorf("unsupported storage driver %q (supported: %v)", c.Storage.Driver, Drivers())
}
