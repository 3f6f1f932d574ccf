package middleware

import (
	"context"
	"net/http"
	"time"

	"school-store/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context keys for session state
const (
	CtxSessionID = "session_id"
	CtxSession   = "session_state"
)

const sessionCookie = "sid"

// SessionStore — то, что middleware и хендлеры требуют от хранилища сессий.
type SessionStore interface {
	Get(ctx context.Context, sid string) (*session.State, error)
	Save(ctx context.Context, sid string, st *session.State) error
	Destroy(ctx context.Context, sid string) error
}

// Session выдаёт непрозрачную sid-куку и кладёт состояние сессии в контекст
// запроса. Хендлеры, мутирующие состояние, сохраняют его явно.
func Session(store SessionStore, ttl time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
		}
		// Продлеваем куку на каждый запрос (30-дневная скользящая сессия)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, sid, int(ttl.Seconds()), "/", "", false, true)

		st, err := store.Get(c.Request.Context(), sid)
		if err != nil {
			// Недоступный redis не валит навигацию по витрине — пустая сессия
			log.Error("session load failed", zap.String("sid", sid), zap.Error(err))
			st = session.NewState()
		}

		c.Set(CtxSessionID, sid)
		c.Set(CtxSession, st)
		c.Next()
	}
}

func SessionID(c *gin.Context) string {
	return c.GetString(CtxSessionID)
}

func State(c *gin.Context) *session.State {
	if v, ok := c.Get(CtxSession); ok {
		if st, ok := v.(*session.State); ok {
			return st
		}
	}
	return session.NewState()
}
