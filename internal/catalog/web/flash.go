package web

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
)

const flashCookie = "flash"

// Flash is a one-shot message carried across a redirect.
type Flash struct {
	Level   string // "success" or "error"
	Message string
}

// FlashCodec signs flash cookies so a client cannot forge or alter the
// message that gets rendered back at them.
type FlashCodec struct {
	key []byte
}

// NewFlashCodec builds a codec from a signing key. An empty key gets a
// random one, which is fine for single-instance deployments; restarts just
// drop in-flight flashes.
func NewFlashCodec(key []byte) *FlashCodec {
	if len(key) == 0 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
	}
	return &FlashCodec{key: key}
}

func (c *FlashCodec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.key)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Set queues a flash for the next rendered page.
func (c *FlashCodec) Set(w http.ResponseWriter, level, message string) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(level + "\x00" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    payload + "." + c.sign(payload),
		Path:     "/",
		MaxAge:   300,
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
	})
}

// Pop reads and clears the pending flash. A missing, malformed or
// badly-signed cookie yields nil.
func (c *FlashCodec) Pop(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	// One-shot: clear regardless of validity.
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
	})

	payload, sig, ok := strings.Cut(cookie.Value, ".")
	if !ok || !hmac.Equal([]byte(c.sign(payload)), []byte(sig)) {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil
	}
	level, message, ok := strings.Cut(string(raw), "\x00")
	if !ok {
		return nil
	}
	return &Flash{Level: level, Message: message}
}
