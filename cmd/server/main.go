package main

import (
	"os"

	"gifcrop/config"
	"gifcrop/internal/appdirs"
	"gifcrop/internal/server"
	"gifcrop/internal/storage"
	"gifcrop/log"

	"go.uber.org/zap"
)

func main() {
	if handled, exitCode := handleCLIFlags(); handled {
		os.Exit(exitCode)
	}

	log.InitLogger()
	defer log.GetLogger().Sync()

	if !config.LoadConfig() {
		return
	}

	if _, err := appdirs.Prepare(); err != nil {
		log.GetLogger().Warn("Failed to prepare app dirs", zap.Error(err))
	}

	if config.Conf.Storage.Enabled {
		storage.InitDB(config.Conf.Storage.DBPath)
		defer storage.Close()

		// Jobs left pending by a previous run never reach the renderer
		if count, err := storage.MarkStaleJobs(); err != nil {
			log.GetLogger().Warn("Failed to mark stale render jobs", zap.Error(err))
		} else if count > 0 {
			log.GetLogger().Info("Marked stale render jobs as failed", zap.Int64("count", count))
		}
	}

	if err := server.StartBackend(); err != nil {
		log.GetLogger().Error("后端服务启动失败", zap.Error(err))
		os.Exit(1)
	}
}
