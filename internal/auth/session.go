package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const (
	SessionCookie = "session_token"
	DefaultTTL    = 30 * 24 * time.Hour
)

type contextKey string

const sessionIDKey contextKey = "sessionID"

// Sessions hands every browser a signed, anonymous session ID so saved
// calculations can be kept apart without user accounts.
type Sessions struct {
	Key    []byte
	TTL    time.Duration
	Secure bool
	Clock  clockwork.Clock
	Log    logrus.FieldLogger
}

func (s *Sessions) clock() clockwork.Clock {
	if s.Clock == nil {
		return clockwork.NewRealClock()
	}
	return s.Clock
}

func (s *Sessions) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultTTL
	}
	return s.TTL
}

// Middleware puts the session ID in the request context, issuing a new
// cookie when the request has none or its token does not verify.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if c, err := r.Cookie(SessionCookie); err == nil {
			sid, err = s.Parse(c.Value)
			if err != nil && s.Log != nil {
				s.Log.WithError(err).Debug("discarding session token")
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			if err := s.addCookie(w, sid); err != nil {
				if s.Log != nil {
					s.Log.WithError(err).Error("signing session token")
				}
				http.Error(w, "Session error", http.StatusInternalServerError)
				return
			}
		}
		next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sid)))
	})
}

// Sign returns a token carrying sid that expires after the TTL.
func (s *Sessions) Sign(sid string) (string, error) {
	now := s.clock().Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl())),
	})
	return token.SignedString(s.Key)
}

// Parse verifies a token and returns its session ID.
func (s *Sessions) Parse(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.Key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock().Now),
	)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", jwt.ErrTokenInvalidSubject
	}
	return claims.Subject, nil
}

func (s *Sessions) addCookie(w http.ResponseWriter, sid string) error {
	tokenString, err := s.Sign(sid)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    tokenString,
		Expires:  s.clock().Now().Add(s.ttl()),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sid)
}

// SessionID returns the ID set by Middleware, or "" outside a session.
func SessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionIDKey).(string)
	return sid
}
