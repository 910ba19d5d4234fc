package cli

import (
	"context"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/matchday-bot/matchday/pkg/domain/model"
	"github.com/matchday-bot/matchday/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// factsCollection is the subcollection facts are stored in:
// collections/{collection}/facts
const factsCollection = "facts"

func cmdMigrate() *cli.Command {
	var projectID string
	var databaseID string
	var dryRun bool

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrate Firestore indexes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "firestore-project-id",
				Usage:       "Firestore Project ID (required)",
				Required:    true,
				Sources:     cli.EnvVars("MATCHDAY_FIRESTORE_PROJECT_ID"),
				Destination: &projectID,
			},
			&cli.StringFlag{
				Name:        "firestore-database-id",
				Usage:       "Firestore Database ID",
				Sources:     cli.EnvVars("MATCHDAY_FIRESTORE_DATABASE_ID"),
				Destination: &databaseID,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Preview changes without applying",
				Destination: &dryRun,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			logger.Info("Migrate configuration",
				"projectID", projectID,
				"databaseID", databaseID,
				"dryRun", dryRun)

			client, err := fireconf.New(ctx, projectID, databaseID, getIndexConfig())
			if err != nil {
				return goerr.Wrap(err, "failed to create fireconf client")
			}
			defer func() {
				if err := client.Close(); err != nil {
					logger.Error("failed to close fireconf client", "error", err.Error())
				}
			}()

			if dryRun {
				logger.Info("Dry run mode - previewing changes")
				current, err := client.Import(ctx, factsCollection)
				if err != nil {
					return goerr.Wrap(err, "failed to import current Firestore configuration")
				}

				diff, err := client.DiffConfigs(current)
				if err != nil {
					return goerr.Wrap(err, "failed to diff Firestore configurations")
				}

				changes := summarizeDiff(diff)
				if len(changes) == 0 {
					logger.Info("No changes required")
					return nil
				}

				for _, change := range changes {
					logger.Info("Pending change",
						"collection", change.Collection,
						"action", change.Action,
						"indexesToAdd", change.IndexesToAdd,
						"indexesToDelete", change.IndexesToDelete)
				}
			} else {
				logger.Info("Applying migrations")
				if err := client.Migrate(ctx); err != nil {
					return goerr.Wrap(err, "failed to apply migrations")
				}
				logger.Info("Migrations applied successfully")
			}

			return nil
		},
	}
}

// getIndexConfig returns the Firestore index configuration for the
// facts subcollection
func getIndexConfig() *fireconf.Config {
	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: factsCollection,
				Indexes: []fireconf.Index{
					// Vector search index for fact retrieval
					{
						Fields: []fireconf.IndexField{
							{
								Path: "Embedding",
								Vector: &fireconf.VectorConfig{
									Dimension: model.EmbeddingDimension,
								},
							},
						},
					},
				},
			},
		},
	}
}

// pendingChange is one collection entry of a dry-run preview
type pendingChange struct {
	Collection      string
	Action          fireconf.DiffAction
	IndexesToAdd    int
	IndexesToDelete int
}

// summarizeDiff flattens a fireconf diff into per-collection log
// entries. DiffConfigs already omits collections without changes.
func summarizeDiff(diff *fireconf.DiffResult) []pendingChange {
	changes := make([]pendingChange, 0, len(diff.Collections))
	for _, col := range diff.Collections {
		changes = append(changes, pendingChange{
			Collection:      col.Name,
			Action:          col.Action,
			IndexesToAdd:    len(col.IndexesToAdd),
			IndexesToDelete: len(col.IndexesToDelete),
		})
	}
	return changes
}
