package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/matchday-bot/matchday/pkg/domain/interfaces"
	"github.com/matchday-bot/matchday/pkg/repository/firestore"
	"github.com/matchday-bot/matchday/pkg/repository/memory"
	"github.com/matchday-bot/matchday/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for fact store backend configuration
type Repository struct {
	backend    string
	projectID  string
	databaseID string
}

// Flags returns CLI flags for fact store configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Fact store backend type (memory or firestore)",
			Category:    "Fact store",
			Value:       "memory",
			Sources:     cli.EnvVars("MATCHDAY_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Category:    "Fact store",
			Sources:     cli.EnvVars("MATCHDAY_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Category:    "Fact store",
			Sources:     cli.EnvVars("MATCHDAY_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
	}
}

// Configure initializes and returns a fact store based on the
// configured backend. The caller is responsible for calling Close().
func (r *Repository) Configure(ctx context.Context) (interfaces.FactStore, error) {
	switch r.backend {
	case "firestore":
		if r.projectID == "" {
			return nil, goerr.New("firestore-project-id is required when using firestore backend")
		}
		store, err := firestore.New(ctx, r.projectID, r.databaseID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore fact store")
		}
		logging.Default().Info("Using Firestore fact store",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		return store, nil

	case "memory":
		logging.Default().Info("Using in-memory fact store")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", r.backend))
	}
}
