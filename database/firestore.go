package database

import (
	"context"
	"fmt"
	"log/slog"

	"savecart/config"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// OpenFirestore creates the client used by the Firestore saved-cart backend.
// An empty credentials file falls back to Application Default Credentials.
func OpenFirestore(ctx context.Context, cfg *config.Config) (*firestore.Client, error) {
	if cfg.FirestoreProjectID == "" {
		return nil, fmt.Errorf("firestore project id is empty")
	}

	var opts []option.ClientOption
	if cfg.FirestoreCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirestoreCredentialsFile))
	}

	client, err := firestore.NewClient(ctx, cfg.FirestoreProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client (project=%s): %w", cfg.FirestoreProjectID, err)
	}

	slog.Info("firestore connected", "project", cfg.FirestoreProjectID, "collection", cfg.FirestoreCartCollection)
	return client, nil
}
