package sessions

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/shopapp-dev/shopapp/app/configs"
)

const (
	sessionCookieName = "shopapp-session"

	userIDSessionKey = "userID"
)

var Store *sessions.CookieStore

// InitStore builds the cookie store from the configured auth and
// encryption keys. Must be called before the router starts serving.
func InitStore() error {
	keys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load session keys: %w", err)
	}

	Store = sessions.NewCookieStore(keys.AuthKey, keys.EncKey)
	Store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	}
	return nil
}

// GetUserID resolves the caller's identity from the session cookie.
// A zero return means no authenticated user.
func GetUserID(r *http.Request) uint {
	session, err := Store.Get(r, sessionCookieName)
	if err != nil {
		return 0
	}
	userID, ok := session.Values[userIDSessionKey].(uint)
	if !ok {
		return 0
	}
	return userID
}

func SetUserID(w http.ResponseWriter, r *http.Request, userID uint) error {
	session, err := Store.Get(r, sessionCookieName)
	if err != nil {
		session, _ = Store.New(r, sessionCookieName)
	}
	session.Values[userIDSessionKey] = userID
	return session.Save(r, w)
}

func Clear(w http.ResponseWriter, r *http.Request) error {
	session, err := Store.Get(r, sessionCookieName)
	if err != nil {
		return err
	}
	delete(session.Values, userIDSessionKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
