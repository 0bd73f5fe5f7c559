package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gifcrop/internal/appdirs"
	"gifcrop/log"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

type App struct {
	SessionIdleMinutes int    `toml:"session_idle_minutes"`
	DefaultMethod      string `toml:"default_method"`
}

type Server struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Editor holds the pointer hit-testing tunables, in screen or video pixels.
type Editor struct {
	EndpointHitRadius     float64 `toml:"endpoint_hit_radius"`
	LineHitRadius         float64 `toml:"line_hit_radius"`
	LineCreationThreshold float64 `toml:"line_creation_threshold"`
	MinLineLength         float64 `toml:"min_line_length"`
	MinRegionSize         float64 `toml:"min_region_size"`
	LeavePolicy           string  `toml:"leave_policy"`
}

type ClipDefaults struct {
	StartTime float64 `toml:"start_time"`
	Duration  float64 `toml:"duration"`
	Fps       int     `toml:"fps"`
}

type Renderer struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type Queue struct {
	Provider  string `toml:"provider"`
	RedisAddr string `toml:"redis_addr"`
	Workers   int    `toml:"workers"`
	Capacity  int    `toml:"capacity"`
	MaxRetry  int    `toml:"max_retry"`
}

type Storage struct {
	Enabled bool   `toml:"enabled"`
	DBPath  string `toml:"db_path"`
}

type Config struct {
	App          App          `toml:"app"`
	Server       Server       `toml:"server"`
	Editor       Editor       `toml:"editor"`
	ClipDefaults ClipDefaults `toml:"clip_defaults"`
	Renderer     Renderer     `toml:"renderer"`
	Queue        Queue        `toml:"queue"`
	Storage      Storage      `toml:"storage"`
}

const (
	LeavePolicyCommit = "commit"
	LeavePolicyCancel = "cancel"

	QueueProviderMemory = "memory"
	QueueProviderRedis  = "redis"
)

var Conf = defaultConfig()

var resolveConfigPath = func() (string, error) {
	paths, err := appdirs.Resolve()
	if err != nil {
		return "", err
	}
	return paths.ConfigFile, nil
}

func defaultConfig() Config {
	return Config{
		App: App{
			SessionIdleMinutes: 60,
			DefaultMethod:      "grid",
		},
		Server: Server{
			Host: "127.0.0.1",
			Port: 8888,
		},
		Editor: Editor{
			EndpointHitRadius:     12,
			LineHitRadius:         10,
			LineCreationThreshold: 20,
			MinLineLength:         10,
			MinRegionSize:         10,
			LeavePolicy:           LeavePolicyCommit,
		},
		ClipDefaults: ClipDefaults{
			StartTime: 0,
			Duration:  5,
			Fps:       15,
		},
		Renderer: Renderer{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		Queue: Queue{
			Provider:  QueueProviderMemory,
			RedisAddr: "127.0.0.1:6379",
			Workers:   2,
			Capacity:  64,
			MaxRetry:  3,
		},
		Storage: Storage{
			Enabled: true,
		},
	}
}

func ResolveConfigPath() (string, error) {
	return resolveConfigPath()
}

// LoadOrCreateConfig reads the config file into Conf, writing the defaults
// first when the file does not exist yet.
func LoadOrCreateConfig() (bool, error) {
	configPath, err := resolveConfigPath()
	if err != nil {
		return false, fmt.Errorf("resolve config path: %w", err)
	}

	if _, err = os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		Conf = defaultConfig()
		if err = SaveConfig(); err != nil {
			return false, err
		}
		log.GetLogger().Info("未找到配置文件，已生成默认配置 Default config created", zap.String("path", configPath))
		return true, nil
	} else if err != nil {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	loaded := defaultConfig()
	if _, err = toml.DecodeFile(configPath, &loaded); err != nil {
		return false, fmt.Errorf("decode config file %s: %w", configPath, err)
	}
	Conf = loaded
	log.GetLogger().Info("已加载配置文件 Config loaded", zap.String("path", configPath))
	return false, nil
}

func SaveConfig() error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer file.Close()

	if err = toml.NewEncoder(file).Encode(Conf); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// CheckConfig validates Conf and fills values that fall outside usable ranges.
func CheckConfig() error {
	defaults := defaultConfig()

	if Conf.Server.Port <= 0 || Conf.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", Conf.Server.Port)
	}
	if strings.TrimSpace(Conf.Server.Host) == "" {
		Conf.Server.Host = defaults.Server.Host
	}

	switch Conf.App.DefaultMethod {
	case "grid", "lines", "drag", "manual":
	case "":
		Conf.App.DefaultMethod = defaults.App.DefaultMethod
	default:
		return fmt.Errorf("invalid app.default_method: %q", Conf.App.DefaultMethod)
	}

	switch Conf.Editor.LeavePolicy {
	case LeavePolicyCommit, LeavePolicyCancel:
	case "":
		Conf.Editor.LeavePolicy = LeavePolicyCommit
	default:
		return fmt.Errorf("invalid editor.leave_policy: %q", Conf.Editor.LeavePolicy)
	}
	if Conf.Editor.EndpointHitRadius <= 0 {
		Conf.Editor.EndpointHitRadius = defaults.Editor.EndpointHitRadius
	}
	if Conf.Editor.LineHitRadius <= 0 {
		Conf.Editor.LineHitRadius = defaults.Editor.LineHitRadius
	}
	if Conf.Editor.LineCreationThreshold <= 0 {
		Conf.Editor.LineCreationThreshold = defaults.Editor.LineCreationThreshold
	}
	if Conf.Editor.MinLineLength < 0 {
		Conf.Editor.MinLineLength = defaults.Editor.MinLineLength
	}
	if Conf.Editor.MinRegionSize < 0 {
		Conf.Editor.MinRegionSize = defaults.Editor.MinRegionSize
	}

	if Conf.ClipDefaults.StartTime < 0 {
		Conf.ClipDefaults.StartTime = 0
	}
	if Conf.ClipDefaults.Duration <= 0 {
		Conf.ClipDefaults.Duration = defaults.ClipDefaults.Duration
	}
	if Conf.ClipDefaults.Fps < 1 || Conf.ClipDefaults.Fps > 30 {
		return fmt.Errorf("clip_defaults.fps must be within [1,30], got %d", Conf.ClipDefaults.Fps)
	}

	if strings.TrimSpace(Conf.Renderer.BaseURL) == "" {
		return errors.New("renderer.base_url is required")
	}
	if Conf.Renderer.TimeoutSeconds <= 0 {
		Conf.Renderer.TimeoutSeconds = defaults.Renderer.TimeoutSeconds
	}

	switch Conf.Queue.Provider {
	case QueueProviderMemory:
	case QueueProviderRedis:
		if strings.TrimSpace(Conf.Queue.RedisAddr) == "" {
			return errors.New("queue.redis_addr is required when queue.provider is redis")
		}
	case "":
		Conf.Queue.Provider = QueueProviderMemory
	default:
		return fmt.Errorf("invalid queue.provider: %q", Conf.Queue.Provider)
	}
	if Conf.Queue.Workers <= 0 {
		Conf.Queue.Workers = defaults.Queue.Workers
	}
	if Conf.Queue.Capacity <= 0 {
		Conf.Queue.Capacity = defaults.Queue.Capacity
	}
	if Conf.Queue.MaxRetry < 0 {
		Conf.Queue.MaxRetry = 0
	}

	if Conf.App.SessionIdleMinutes < 0 {
		Conf.App.SessionIdleMinutes = 0
	}
	return nil
}

// LoadConfig is used by main; failures are logged and reported as false.
func LoadConfig() bool {
	if _, err := LoadOrCreateConfig(); err != nil {
		log.GetLogger().Error("加载配置失败 Failed to load config", zap.Error(err))
		return false
	}
	if err := CheckConfig(); err != nil {
		log.GetLogger().Error("配置校验失败 Invalid config", zap.Error(err))
		return false
	}
	return true
}
