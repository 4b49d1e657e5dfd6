package middleware

import (
	"crypto/sha256"
	"encoding/base64"

	"DocRegistry/config"
	"DocRegistry/models"
	"DocRegistry/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	SessionCookieName = "docregistry_session"

	SessionUserIDKey = "user_id"
	SessionNameKey   = "name"
	SessionRoleKey   = "role"

	identityLocalsKey = "identity"
)

// NewSessionStore builds the cookie session store. A nil storage keeps
// sessions in process memory.
func NewSessionStore(cfg config.SessionConfig, storage fiber.Storage) *session.Store {
	return session.New(session.Config{
		Expiration:     cfg.TTL,
		Storage:        storage,
		KeyLookup:      "cookie:" + SessionCookieName,
		CookieSecure:   cfg.CookieSecure,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// CookieKey derives the encryptcookie key from SECRET_KEY.
func CookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Sessions wraps the store with the identity and flash helpers handlers use.
type Sessions struct {
	store *session.Store
}

func NewSessions(store *session.Store) *Sessions {
	return &Sessions{store: store}
}

// Identity reads the caller from the session. A missing or unreadable
// session yields the anonymous identity.
func (s *Sessions) Identity(c *fiber.Ctx) services.Identity {
	if who, ok := c.Locals(identityLocalsKey).(services.Identity); ok {
		return who
	}

	sess, err := s.store.Get(c)
	if err != nil {
		return services.Identity{}
	}

	id, _ := sess.Get(SessionUserIDKey).(uint)
	name, _ := sess.Get(SessionNameKey).(string)
	role, _ := sess.Get(SessionRoleKey).(string)
	return services.Identity{UserID: id, Name: name, Role: models.Role(role)}
}

// Login starts a fresh session for who.
func (s *Sessions) Login(c *fiber.Ctx, who services.Identity) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(SessionUserIDKey, who.UserID)
	sess.Set(SessionNameKey, who.Name)
	sess.Set(SessionRoleKey, string(who.Role))
	c.Locals(identityLocalsKey, who)
	return sess.Save()
}

// Logout clears every session value.
func (s *Sessions) Logout(c *fiber.Ctx) error {
	c.Locals(identityLocalsKey, nil)
	sess, err := s.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}
