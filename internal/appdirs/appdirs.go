// Package appdirs decides where gifcrop keeps its config, logs, exported
// config lists and the render job database.
package appdirs

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	// HomeEnv roots every directory under one explicit path.
	HomeEnv     = "GIFCROP_HOME"
	PortableEnv = "GIFCROP_PORTABLE"

	appName        = "GifCrop"
	configFileName = "config.toml"
)

type Paths struct {
	Portable   bool
	ConfigDir  string
	ConfigFile string
	LogDir     string
	ExportDir  string
	CacheDir   string
}

// lookup holds the environment queries used to pick a layout. Zero fields
// fall back to the running system.
type lookup struct {
	goos          string
	getenv        func(string) string
	executable    func() (string, error)
	userConfigDir func() (string, error)
	userCacheDir  func() (string, error)
}

// roots is a layout before it is expanded into Paths. Exports and the cache
// always live under data.
type roots struct {
	portable bool
	config   string
	data     string
	logs     string
}

func (r roots) paths() Paths {
	return Paths{
		Portable:   r.portable,
		ConfigDir:  r.config,
		ConfigFile: filepath.Join(r.config, configFileName),
		LogDir:     r.logs,
		ExportDir:  filepath.Join(r.data, "exports"),
		CacheDir:   filepath.Join(r.data, "cache"),
	}
}

// Resolve picks the layout in order: GIFCROP_HOME, portable next to the
// executable, the per-user dirs on Windows, then paths relative to the
// working directory.
func Resolve() (Paths, error) {
	return resolve(lookup{})
}

// Prepare resolves the layout and creates its directories.
func Prepare() (Paths, error) {
	paths, err := Resolve()
	if err != nil {
		return Paths{}, err
	}
	return paths, paths.Ensure()
}

func resolve(l lookup) (Paths, error) {
	r, err := l.system().roots()
	if err != nil {
		return Paths{}, err
	}
	return r.paths(), nil
}

func (l lookup) system() lookup {
	if l.goos == "" {
		l.goos = runtime.GOOS
	}
	if l.getenv == nil {
		l.getenv = os.Getenv
	}
	if l.executable == nil {
		l.executable = os.Executable
	}
	if l.userConfigDir == nil {
		l.userConfigDir = os.UserConfigDir
	}
	if l.userCacheDir == nil {
		l.userCacheDir = os.UserCacheDir
	}
	return l
}

func (l lookup) roots() (roots, error) {
	if home := strings.TrimSpace(l.getenv(HomeEnv)); home != "" {
		return dataRoots(filepath.Clean(home), false), nil
	}
	if isPortableEnabled(l.getenv(PortableEnv)) {
		exe, err := l.executable()
		if err != nil {
			return roots{}, err
		}
		return dataRoots(filepath.Join(filepath.Dir(exe), "data"), true), nil
	}
	if l.goos == "windows" {
		return l.windowsRoots()
	}
	return roots{config: "config", logs: "."}, nil
}

func (l lookup) windowsRoots() (roots, error) {
	configRoot, err := userDir(l.userConfigDir, "user config dir")
	if err != nil {
		return roots{}, err
	}
	cacheRoot, err := userDir(l.userCacheDir, "user cache dir")
	if err != nil {
		return roots{}, err
	}
	data := filepath.Join(cacheRoot, appName)
	return roots{
		config: filepath.Join(configRoot, appName),
		data:   data,
		logs:   filepath.Join(data, "logs"),
	}, nil
}

func userDir(query func() (string, error), name string) (string, error) {
	dir, err := query()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(dir) == "" {
		return "", errors.New(name + " is empty")
	}
	return dir, nil
}

// dataRoots keeps everything, config and logs included, under one directory.
func dataRoots(dir string, portable bool) roots {
	return roots{
		portable: portable,
		config:   filepath.Join(dir, "config"),
		data:     dir,
		logs:     filepath.Join(dir, "logs"),
	}
}

// Ensure creates the writable directories of the layout.
func (p Paths) Ensure() error {
	for _, dir := range []string{p.ConfigDir, p.LogDir, p.ExportDir, p.CacheDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

func isPortableEnabled(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true":
		return true
	}
	return false
}
