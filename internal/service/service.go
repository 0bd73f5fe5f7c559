package service

import (
	"time"

	"gifcrop/config"
	"gifcrop/internal/editor"
	"gifcrop/internal/interaction"
	"gifcrop/internal/types"
	"gifcrop/log"
	"gifcrop/pkg/renderer"

	"go.uber.org/zap"
)

// Dispatcher hands a render payload to a background worker.
type Dispatcher interface {
	Dispatch(payload types.RenderPayload) error
}

type Service struct {
	Sessions   *SessionStore
	Renderer   renderer.Submitter
	Dispatcher Dispatcher
}

func NewService() *Service {
	method, err := types.ParseCropMethod(config.Conf.App.DefaultMethod)
	if err != nil {
		method = types.MethodGrid
	}
	log.GetLogger().Info("editor service ready",
		zap.String("default_method", string(method)),
		zap.String("leave_policy", config.Conf.Editor.LeavePolicy),
		zap.String("renderer", config.Conf.Renderer.BaseURL))

	return &Service{
		Sessions: NewSessionStore(method, EditorOptions()),
		Renderer: renderer.NewClient(config.Conf.Renderer.BaseURL, time.Duration(config.Conf.Renderer.TimeoutSeconds)*time.Second),
	}
}

// EditorOptions maps the editor and clip sections of the config.
func EditorOptions() editor.Options {
	ec := config.Conf.Editor
	return editor.Options{
		Interaction: interaction.Config{
			EndpointHitRadius:     ec.EndpointHitRadius,
			LineHitRadius:         ec.LineHitRadius,
			LineCreationThreshold: ec.LineCreationThreshold,
			MinLineLength:         ec.MinLineLength,
			MinRegionSize:         ec.MinRegionSize,
			CancelOnLeave:         ec.LeavePolicy == config.LeavePolicyCancel,
		},
		Defaults: types.ClipDefaults{
			StartTime: config.Conf.ClipDefaults.StartTime,
			Duration:  config.Conf.ClipDefaults.Duration,
			Fps:       config.Conf.ClipDefaults.Fps,
		},
	}
}
