package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gifcrop/internal/appdirs"
	"gifcrop/log"
	"gifcrop/pkg/errors"

	"go.uber.org/zap"
)

var appDirsResolver = appdirs.Resolve

func resolveExportPath(sessionID string) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", fmt.Errorf("session id is empty")
	}
	if strings.ContainsAny(sessionID, `/\`) || strings.Contains(sessionID, "..") {
		return "", fmt.Errorf("session id %q is not a file name", sessionID)
	}

	dirs, err := appDirsResolver()
	if err != nil {
		return "", err
	}
	return appdirs.ExportPathFor(dirs, sessionID), nil
}

// ExportConfigs writes the session's current config list as JSON into the
// export directory and returns the file path.
func (s *Service) ExportConfigs(sessionID string) (string, error) {
	sess, err := s.Sessions.Get(sessionID)
	if err != nil {
		return "", err
	}
	configs := sess.Configs()
	if len(configs) == 0 {
		return "", errors.ErrNoConfigs
	}

	path, err := resolveExportPath(sessionID)
	if err != nil {
		return "", errors.Wrap(errors.CodeInvalidParams, errors.ErrInvalidParams.Message, err)
	}
	data, err := json.MarshalIndent(configs, "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.CodeUnknown, "导出失败 Export failed", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return "", errors.Wrap(errors.CodeUnknown, "导出失败 Export failed", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(errors.CodeUnknown, "导出失败 Export failed", err)
	}
	log.GetLogger().Info("configs exported", zap.String("session_id", sessionID), zap.String("path", path))
	return path, nil
}
