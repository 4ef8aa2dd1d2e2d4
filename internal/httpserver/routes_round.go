// internal/httpserver/routes_round.go
//
// HTTP routes for playing a round:
//   - POST /round/new     → start a round ("random" or "daily" root word)
//   - POST /round/submit  → submit a candidate word
//   - POST /round/restart → start over with a new root word from the same source
//   - GET  /round         → current round snapshot
//
// All but /round/new require the round token issued by /round/new.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/apps/go-server/internal/round"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/store"
)

const defaultMode = "random"

func (s *Server) mountRound() {
	s.r.Route("/round", func(r chi.Router) {
		r.Post("/new", s.handleNewRound)
		r.Post("/submit", s.handleSubmit)
		r.Post("/restart", s.handleRestart)
		r.Get("/", s.handleGetRound)
	})
}

// stateRes is the client view of a round.
type stateRes struct {
	RoundID   string   `json:"roundId"`
	Mode      string   `json:"mode"`
	RootWord  string   `json:"rootWord"`
	UsedWords []string `json:"usedWords"` // newest first
	Score     int      `json:"score"`
}

// view renders the session; the caller holds the session lock.
func view(sess *store.Session) stateRes {
	st := sess.Engine.Snapshot()
	used := make([]string, len(st.UsedWords))
	for i, w := range st.UsedWords {
		used[len(used)-1-i] = w
	}
	return stateRes{
		RoundID:   sess.ID,
		Mode:      sess.Mode,
		RootWord:  st.RootWord,
		UsedWords: used,
		Score:     st.Score,
	}
}

// -----------------------------------------------------------------------------
// /round/new

type newRoundReq struct {
	Mode string `json:"mode"` // "random" (default) | "daily"
}

type newRoundRes struct {
	Token string   `json:"token"`
	Round stateRes `json:"round"`
}

// handleNewRound creates a session, pulls its first root word and issues a token.
// Sessions whose token lifetime has passed are evicted first.
func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Mode == "" {
		req.Mode = defaultMode
	}
	src, ok := s.deps.Sources[req.Mode]
	if !ok {
		http.Error(w, `{"error":"unknown_mode"}`, http.StatusBadRequest)
		return
	}

	var sess *store.Session
	eng := round.New(
		round.WithLanguage(s.deps.Language),
		round.WithObserver(func(st round.State) {
			log.Debug().Str("roundId", sess.ID).Str("root", st.RootWord).
				Int("used", len(st.UsedWords)).Int("score", st.Score).Msg("round state")
		}),
	)
	sess = store.NewSession(req.Mode, eng)

	if err := eng.Reset(src); err != nil {
		writeResetError(w, err)
		return
	}
	// Sessions outlive their token only until the next round starts.
	if n := s.deps.Store.Sweep(r.Context(), time.Now().Add(-s.deps.TokenTTL)); n > 0 {
		log.Debug().Int("evicted", n).Msg("expired rounds swept")
	}
	if err := s.deps.Store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save round")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	tok, exp, err := s.signToken(sess.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign round token")
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	s.setTokenCookie(w, tok, exp)

	log.Info().Str("roundId", sess.ID).Str("mode", sess.Mode).Msg("round started")
	_ = json.NewEncoder(w).Encode(newRoundRes{Token: tok, Round: view(sess)})
}

// -----------------------------------------------------------------------------
// /round/submit

type submitReq struct {
	Word string `json:"word"`
}

type submitRes struct {
	round.Outcome
	Title   string   `json:"title,omitempty"`
	Message string   `json:"message,omitempty"`
	Round   stateRes `json:"round"`
}

// handleSubmit runs one word through the round engine.
// Rejections are normal gameplay and answer 200 with a reason.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	sess.Lock()
	defer sess.Unlock()

	out, err := sess.Engine.Submit(req.Word, s.deps.Dictionary)
	if errors.Is(err, round.ErrNotStarted) {
		http.Error(w, `{"error":"not_started"}`, http.StatusConflict)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("roundId", sess.ID).Msg("submit")
		http.Error(w, `{"error":"submit_failed"}`, http.StatusInternalServerError)
		return
	}

	res := submitRes{Outcome: out, Round: view(sess)}
	if !out.Accepted {
		res.Title, res.Message = out.Reason.Message(sess.Engine.RootWord())
	}
	log.Info().Str("roundId", sess.ID).Str("word", out.Word).Bool("accepted", out.Accepted).
		Str("reason", string(out.Reason)).Int("score", out.Score).Msg("word submitted")
	_ = json.NewEncoder(w).Encode(res)
}

// -----------------------------------------------------------------------------
// /round/restart and GET /round

// handleRestart resets the caller's round from the source it was started with.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	src, ok := s.deps.Sources[sess.Mode]
	if !ok {
		http.Error(w, `{"error":"unknown_mode"}`, http.StatusBadRequest)
		return
	}

	sess.Lock()
	defer sess.Unlock()
	if err := sess.Engine.Reset(src); err != nil {
		writeResetError(w, err)
		return
	}
	log.Info().Str("roundId", sess.ID).Str("root", sess.Engine.RootWord()).Msg("round restarted")
	_ = json.NewEncoder(w).Encode(view(sess))
}

func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Lock()
	defer sess.Unlock()
	_ = json.NewEncoder(w).Encode(view(sess))
}

// -----------------------------------------------------------------------------
// helpers

// session resolves the caller's round from its token, writing 401/404 on failure.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	tok := bearerOrCookie(r)
	if tok == "" {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return nil, false
	}
	rid, err := s.parseToken(tok)
	if err != nil {
		http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
		return nil, false
	}
	sess, err := s.deps.Store.Get(r.Context(), rid)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

// writeResetError maps a failed Reset to a response.
func writeResetError(w http.ResponseWriter, err error) {
	if errors.Is(err, round.ErrNoRootWord) {
		log.Error().Err(err).Msg("no root word")
		http.Error(w, `{"error":"no_root_word"}`, http.StatusServiceUnavailable)
		return
	}
	log.Error().Err(err).Msg("reset round")
	http.Error(w, `{"error":"reset_failed"}`, http.StatusInternalServerError)
}
