package service

import (
	"strings"
	"sync"
	"time"

	"gifcrop/internal/editor"
	"gifcrop/internal/types"
	"gifcrop/log"
	"gifcrop/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionStore keeps live editor sessions in memory, keyed by id.
type SessionStore struct {
	sessions      sync.Map
	defaultMethod types.CropMethod
	opts          editor.Options
}

func NewSessionStore(defaultMethod types.CropMethod, opts editor.Options) *SessionStore {
	return &SessionStore{defaultMethod: defaultMethod, opts: opts}
}

// Create starts a session; an empty method falls back to the default.
func (s *SessionStore) Create(method string) (*editor.Session, error) {
	m := s.defaultMethod
	if strings.TrimSpace(method) != "" {
		parsed, err := types.ParseCropMethod(method)
		if err != nil {
			return nil, err
		}
		m = parsed
	}

	id := uuid.New().String()
	sess := editor.New(id, m, s.opts)
	s.sessions.Store(id, sess)
	log.ForSession(id).Info("session created", zap.String("method", string(m)))
	return sess, nil
}

func (s *SessionStore) Get(id string) (*editor.Session, error) {
	v, ok := s.sessions.Load(id)
	if !ok {
		return nil, errors.WrapWithDetail(errors.CodeSessionNotFound, errors.ErrSessionNotFound.Message, id, nil)
	}
	return v.(*editor.Session), nil
}

func (s *SessionStore) Delete(id string) error {
	if _, ok := s.sessions.LoadAndDelete(id); !ok {
		return errors.WrapWithDetail(errors.CodeSessionNotFound, errors.ErrSessionNotFound.Message, id, nil)
	}
	log.ForSession(id).Info("session deleted")
	return nil
}

func (s *SessionStore) Len() int {
	n := 0
	s.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// EvictIdle drops sessions untouched since before now-maxIdle.
func (s *SessionStore) EvictIdle(now time.Time, maxIdle time.Duration) int {
	evicted := 0
	s.sessions.Range(func(key, value any) bool {
		if now.Sub(value.(*editor.Session).LastActive()) > maxIdle {
			s.sessions.Delete(key)
			evicted++
		}
		return true
	})
	if evicted > 0 {
		log.GetLogger().Info("idle sessions evicted", zap.Int("count", evicted))
	}
	return evicted
}
