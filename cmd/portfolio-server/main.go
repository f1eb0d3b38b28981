// portfolio-server serves content generation, HTML export and the export
// archive over HTTP.
//
// Configuration comes from the environment (a .env file is loaded when
// present):
//
//	PORT              listen port (default 8080)
//	GROQ_API_KEY      chat-completions API key
//	GROQ_API_URL      chat-completions endpoint
//	GROQ_MODEL        model name
//	GENERATE_TIMEOUT  per-request generation timeout (default 60s)
//	ARCHIVE_PATH      SQLite file for exported documents; empty disables the archive
//	ARCHIVE_MAX_AGE   exports older than this are pruned hourly; 0 keeps everything
//	PARTICLE_PRESETS  YAML presets file served at /api/particles/presets
//	ANIMATIONS_APP    gdata app name; when set the animation store is served at /api/animations
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/quasilyte/gdata/v2"
	"golang.org/x/sync/errgroup"

	"github.com/gonewx/folio/pkg/archive"
	"github.com/gonewx/folio/pkg/config"
	"github.com/gonewx/folio/pkg/generate"
	"github.com/gonewx/folio/pkg/server"
	"github.com/gonewx/folio/pkg/store"
)

type serverEnv struct {
	Port            string        `env:"PORT"             envDefault:"8080"`
	APIKey          string        `env:"GROQ_API_KEY"`
	APIURL          string        `env:"GROQ_API_URL"     envDefault:"https://api.groq.com/openai/v1/chat/completions"`
	Model           string        `env:"GROQ_MODEL"       envDefault:"meta-llama/llama-4-scout-17b-16e-instruct"`
	GenerateTimeout time.Duration `env:"GENERATE_TIMEOUT" envDefault:"60s"`
	ArchivePath     string        `env:"ARCHIVE_PATH"`
	ArchiveMaxAge   time.Duration `env:"ARCHIVE_MAX_AGE"`
	PresetsPath     string        `env:"PARTICLE_PRESETS"`
	AnimationsApp   string        `env:"ANIMATIONS_APP"`
	GinMode         string        `env:"GIN_MODE"         envDefault:"release"`
}

const pruneInterval = time.Hour

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("[Server] %v", err)
	}
}

func run(ctx context.Context) error {
	var cfg serverEnv
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	gin.SetMode(cfg.GinMode)

	gen := generate.NewClient(cfg.APIKey)
	gen.APIURL = cfg.APIURL
	gen.Model = cfg.Model
	if cfg.APIKey == "" {
		log.Printf("[Server] Warning: GROQ_API_KEY is not set, /api/generate will return 503")
	}

	srvCfg := server.Config{
		Generator:       gen,
		GenerateTimeout: cfg.GenerateTimeout,
	}

	var exports *archive.Store
	if cfg.ArchivePath != "" {
		s, err := archive.Open(cfg.ArchivePath)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer s.Close()
		exports = s
		srvCfg.Archive = s
		log.Printf("[Server] Archiving exports to %s", cfg.ArchivePath)
	}

	if cfg.PresetsPath != "" {
		presets, err := config.LoadParticlePresets(cfg.PresetsPath)
		if err != nil {
			return fmt.Errorf("load particle presets: %w", err)
		}
		srvCfg.Presets = presets
	}

	if cfg.AnimationsApp != "" {
		manager, err := gdata.Open(gdata.Config{AppName: cfg.AnimationsApp})
		if err != nil {
			return fmt.Errorf("open app data: %w", err)
		}
		anims := store.NewAnimationStore(manager)
		anims.SetAutosave(true)
		srvCfg.Store = anims
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.New(srvCfg).ListenAndServe(ctx, ":"+cfg.Port)
	})
	if exports != nil && cfg.ArchiveMaxAge > 0 {
		g.Go(func() error {
			pruneLoop(ctx, exports, cfg.ArchiveMaxAge)
			return nil
		})
	}
	return g.Wait()
}

// pruneLoop 定期删除过期导出，直到 ctx 结束
func pruneLoop(ctx context.Context, exports *archive.Store, maxAge time.Duration) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		n, err := exports.Prune(ctx, time.Now().Add(-maxAge))
		switch {
		case err != nil && ctx.Err() == nil:
			log.Printf("[Server] Warning: prune failed: %v", err)
		case n > 0:
			log.Printf("[Server] Pruned %d export(s) older than %v", n, maxAge)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
