package storage

import (
	"os"
	"path/filepath"
	"strings"

	"gifcrop/internal/appdirs"
	"gifcrop/internal/types"
	"gifcrop/log"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB
var appDirsResolver = appdirs.Resolve

// InitDB opens the handoff database; override wins over the app dirs layout.
func InitDB(override string) {
	dbPath := strings.TrimSpace(override)
	if dbPath == "" {
		var err error
		dbPath, err = resolveDBPath()
		if err != nil {
			log.GetLogger().Fatal("failed to resolve database path", zap.Error(err))
		}
	}

	if err := Open(dbPath); err != nil {
		log.GetLogger().Fatal("failed to initialize database", zap.String("path", dbPath), zap.Error(err))
	}

	log.GetLogger().Info("Database initialized successfully", zap.String("path", dbPath))
}

// Open connects DB to the sqlite file at dbPath and migrates the schema.
func Open(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	if err = db.AutoMigrate(&types.RenderJob{}); err != nil {
		return err
	}
	DB = db
	return nil
}

func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	DB = nil
	return sqlDB.Close()
}

func resolveDBPath() (string, error) {
	dirs, err := appDirsResolver()
	if err != nil {
		return "", err
	}
	return appdirs.DBPathFor(dirs), nil
}
