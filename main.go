package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/apps/go-server/internal/config"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/dictstore"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/httpserver"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/round"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/store"
	"github.com/robalobadob/wordscramble/apps/go-server/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	roots, err := words.LoadRoots(cfg.RootWordsFile, cfg.Language)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load root words")
	}
	if len(roots) == 0 {
		// Rounds will fail with no_root_word until the list is fixed.
		log.Warn().Msg("root word list is empty")
	}
	dictWords, err := words.LoadDictionary(cfg.DictionaryFile, cfg.Language)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}

	dict, closeDict := buildDictionary(cfg, dictWords)
	defer closeDict()

	srv := httpserver.New(httpserver.Deps{
		Store:      store.NewMemoryStore(),
		Dictionary: dict,
		Sources: map[string]round.RootWordSource{
			"random": words.NewListSource(roots),
			"daily":  words.NewDailySource(roots, cfg.DailySalt, nil),
		},
		Language:     cfg.Language,
		Secret:       []byte(cfg.JWTSecret),
		TokenTTL:     cfg.TokenTTL(),
		ClientOrigin: cfg.ClientOrigin,
		Secure:       cfg.Production(),
	})

	log.Info().
		Str("port", cfg.Port).
		Str("language", cfg.Language.String()).
		Str("dictionary", cfg.DictionaryBackend).
		Int("roots", len(roots)).
		Int("words", len(dictWords)).
		Msg("starting go-server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// buildDictionary loads dictWords into the configured backend.
func buildDictionary(cfg config.Config, dictWords []string) (round.Dictionary, func()) {
	if cfg.DictionaryBackend == config.BackendSQLite {
		ds, err := dictstore.Open(cfg.DictionaryDSN)
		if err != nil {
			log.Fatal().Err(err).Str("dsn", cfg.DictionaryDSN).Msg("open dictionary store")
		}
		ctx := context.Background()
		if err := ds.Load(ctx, cfg.Language, dictWords); err != nil {
			log.Fatal().Err(err).Msg("load dictionary store")
		}
		n, err := ds.Count(ctx, cfg.Language)
		if err != nil {
			log.Fatal().Err(err).Msg("count dictionary store")
		}
		log.Info().Str("dsn", cfg.DictionaryDSN).Int("stored", n).Msg("dictionary store ready")
		return ds, func() {
			if err := ds.Close(); err != nil {
				log.Warn().Err(err).Msg("close dictionary store")
			}
		}
	}
	d := words.NewSetDictionary()
	d.Add(cfg.Language, dictWords...)
	return d, func() {}
}
