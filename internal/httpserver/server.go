// internal/httpserver/server.go
//
// HTTP server wiring for the Word Scramble backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, logging).
//   - Public endpoints: "/", "/health".
//   - Round endpoints (see routes_round.go), authorized by a signed round token.
//
// Notes:
//   - A round token is an HS256 JWT carrying the round ID ("rid"). It is returned
//     in the body and set as an HttpOnly cookie; either may be presented.
//   - The round engine is not safe for concurrent use; handlers lock the session
//     around every Reset/Submit.

package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/apps/go-server/internal/round"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/store"
)

const (
	tokenCookieName = "scramble_round"
	defaultTokenTTL = 24 * time.Hour
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Store        store.Store
	Dictionary   round.Dictionary
	Sources      map[string]round.RootWordSource // keyed by mode, e.g. "random", "daily"
	Language     language.Tag
	Secret       []byte
	TokenTTL     time.Duration
	ClientOrigin string
	Secure       bool // mark cookies Secure (production)
}

// Server bundles router, session store and round collaborators.
type Server struct {
	r    *chi.Mux
	deps Deps
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	if d.TokenTTL <= 0 {
		d.TokenTTL = defaultTokenTTL
	}
	if d.ClientOrigin == "" {
		d.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), deps: d}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordscramble-go","endpoints":["/health","POST /round/new","POST /round/submit","POST /round/restart","GET /round"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountRound()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.deps.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger writes one zerolog line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Info().
				Str("requestId", chimw.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}

// ------------------------------ round tokens -------------------------------

var errBadToken = errors.New("invalid round token")

// signToken creates an HS256 JWT bound to roundID.
func (s *Server) signToken(roundID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.deps.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"rid": roundID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString(s.deps.Secret)
	return ss, exp, err
}

// parseToken verifies tok and returns its round ID.
func (s *Server) parseToken(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return s.deps.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return "", fmt.Errorf("%w: %v", errBadToken, err)
	}
	rid, _ := claims["rid"].(string)
	if rid == "" {
		return "", errBadToken
	}
	return rid, nil
}

// setTokenCookie writes the round token cookie.
func (s *Server) setTokenCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.deps.Secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.deps.Secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a token from the Authorization header or the round cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(tokenCookieName); err == nil {
		return c.Value
	}
	return ""
}
