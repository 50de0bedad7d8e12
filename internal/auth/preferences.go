package auth

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// DarkModeCookie matches the key the browser client stores the theme under.
const DarkModeCookie = "darkMode"

type Preferences struct {
	DarkMode bool `json:"dark_mode"`
}

func ReadPreferences(r *http.Request) Preferences {
	c, err := r.Cookie(DarkModeCookie)
	if err != nil {
		return Preferences{}
	}
	dark, _ := strconv.ParseBool(c.Value)
	return Preferences{DarkMode: dark}
}

type PreferencesHandler struct {
	Secure bool
}

func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ReadPreferences(r))
}

func (h *PreferencesHandler) Put(w http.ResponseWriter, r *http.Request) {
	var p Preferences
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     DarkModeCookie,
		Value:    strconv.FormatBool(p.DarkMode),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}
