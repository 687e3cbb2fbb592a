// Package config - пакет для получения конфигурационных данных для запуска сервера
package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Kostushka/webworker/internal/connection/consts"
	"github.com/Kostushka/webworker/internal/log"
)

var (
	// ErrNoRootDir - корневой каталог не существует или не является каталогом
	ErrNoRootDir = errors.New("некорректный путь до *корневого* каталога")
	// ErrInvalidAddr - указан некорректный IP-адрес
	ErrInvalidAddr = errors.New("указан некорректный IP-адрес")
	// ErrInvalidPort - порт вне диапазона
	ErrInvalidPort = errors.New("указан некорректный порт")
)

const (
	portNumber = 5000
	// префикс переменных окружения
	envPrefix = "WEBWORKER_"
)

// Data - данные для конфигурации сервера
type Data struct {
	Server ServerConfig `yaml:"server"`
	HTML   HTMLConfig   `yaml:"html"`
	Log    LogConfig    `yaml:"log"`
	Admin  AdminConfig  `yaml:"admin"`
}

// ServerConfig - настройки приема соединений
type ServerConfig struct {
	Host string `yaml:"host"` // адрес, на котором будет запущен сервер
	Port int    `yaml:"port"` // порт, на котором сервер принимает соединения
	Root string `yaml:"root"` // каталог с отдаваемыми файлами
	Name string `yaml:"name"` // значение заголовка Server

	// 0 - ждать строку запроса бесконечно
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

// HTMLConfig - настройки отдачи html файлов
type HTMLConfig struct {
	LegacyNewlines bool `yaml:"legacy_newlines"`
}

// LogConfig - настройки логирования
type LogConfig struct {
	File  string `yaml:"file"` // пусто - stdout/stderr
	Level string `yaml:"level"`
}

// AdminConfig - настройки служебного http сервера со статусом
type AdminConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default - конфигурация по умолчанию
func Default() *Data {
	return &Data{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: portNumber,
			Root: ".",
			Name: consts.DefaultServerName,
		},
		Log: LogConfig{
			Level: "info",
		},
		Admin: AdminConfig{
			Addr: "127.0.0.1:5001",
		},
	}
}

// ListenAddress - адрес для net.Listen
func (c *Data) ListenAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// NewConfigData - функция-конструктор для получения структуры с конфигурационными данными.
// Порядок применения: значения по умолчанию, yaml файл, переменные окружения, флаги.
func NewConfigData(args []string) (*Data, error) {
	fs := flag.NewFlagSet("webworker", flag.ContinueOnError)

	configFile := fs.String("config", os.Getenv(envPrefix+"CONFIG"), "path to yaml config file")
	// путь до каталога с файлами
	rootPath := fs.String("path", "", "a path to home directory")
	// адрес, на котором будет запущен сервер
	listenAddress := fs.String("IP", "", "a listening address")
	// порт, на котором сервер будет принимать запросы на соединение
	port := fs.Int("port", 0, "a port")
	// имя файла для записи лога в него, иначе вывод лога будет в stdout
	logFile := fs.String("log", "", "output log to file")
	logLevel := fs.String("log-level", "", "log level: debug, info, error")
	name := fs.String("name", "", "value of the Server header")
	admin := fs.String("admin", "", "enable status server on this address")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := Default()

	if *configFile != "" {
		if err := cfg.LoadFile(*configFile); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	// флаги применяются, только если указаны явно
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "path":
			cfg.Server.Root = *rootPath
		case "IP":
			cfg.Server.Host = *listenAddress
		case "port":
			cfg.Server.Port = *port
		case "log":
			cfg.Log.File = *logFile
		case "log-level":
			cfg.Log.Level = *logLevel
		case "name":
			cfg.Server.Name = *name
		case "admin":
			cfg.Admin.Enabled = true
			cfg.Admin.Addr = *admin
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile - прочитать настройки из yaml файла поверх текущих
func (c *Data) LoadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("не удалось прочитать файл конфигурации: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("не удалось разобрать файл конфигурации %q: %w", path, err)
	}

	return nil
}

// переменные окружения переопределяют файл конфигурации
func (c *Data) applyEnv() error {
	if v := os.Getenv(envPrefix + "HOST"); v != "" {
		c.Server.Host = v
	}

	if v := os.Getenv(envPrefix + "PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q", ErrInvalidPort, envPrefix, "PORT", v)
		}

		c.Server.Port = p
	}

	if v := os.Getenv(envPrefix + "ROOT"); v != "" {
		c.Server.Root = v
	}

	if v := os.Getenv(envPrefix + "NAME"); v != "" {
		c.Server.Name = v
	}

	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	return nil
}

// Validate - проверить корректность настроек
func (c *Data) Validate() error {
	// IP адрес должен быть корректным
	if net.ParseIP(c.Server.Host) == nil {
		return fmt.Errorf("%w: %q", ErrInvalidAddr, c.Server.Host)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Server.Port)
	}

	// корневой каталог должен существовать
	fi, err := os.Stat(c.Server.Root)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoRootDir, err)
	}

	if !fi.IsDir() {
		return fmt.Errorf("%w: %q", ErrNoRootDir, c.Server.Root)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return err
	}

	if c.Server.ReadTimeout < 0 {
		return fmt.Errorf("отрицательный read_timeout: %s", c.Server.ReadTimeout)
	}

	if c.Admin.Enabled && c.Admin.Addr == "" {
		return errors.New("не указан адрес служебного сервера")
	}

	return nil
}
