package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/million-dollar-projects/mumskids-sub000/internal/app"
	"github.com/million-dollar-projects/mumskids-sub000/internal/config"
	"github.com/million-dollar-projects/mumskids-sub000/internal/practice"
	"github.com/million-dollar-projects/mumskids-sub000/internal/rewards"
	"github.com/million-dollar-projects/mumskids-sub000/internal/screens/quiz"
	"github.com/million-dollar-projects/mumskids-sub000/internal/store"
)

// runApp opens the store and launches the TUI, optionally straight into
// a practice.
func runApp(cmd *cobra.Command, start *practice.Practice) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	// The alt screen owns the terminal, so logs go to a file.
	verbose, _ := cmd.Flags().GetBool("verbose")
	logPath := config.DefaultLogPath()
	if err := store.EnsureDir(logPath); err == nil {
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			defer f.Close()
			setupLogging(f, verbose)
		}
	}

	return app.Run(st.PracticeRepo(), newEnv(cfg, st), start)
}

func newEnv(cfg config.Config, st *store.Store) quiz.Env {
	events := st.EventRepo()
	return quiz.Env{
		Events:  events,
		Rewards: rewards.NewService(nil, events),
		Catalog: rewards.DefaultCatalog(),
		Locale:  cfg.Locale,
	}
}

// loadPractice fetches a stored practice by ID.
func loadPractice(cmd *cobra.Command, st *store.Store, id string) (*practice.Practice, error) {
	p, err := st.PracticeRepo().Get(cmd.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("load practice %s: %w", id, err)
	}
	slog.Debug("practice loaded", "id", p.ID, "title", p.Title)
	return p, nil
}
