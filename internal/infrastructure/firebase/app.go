package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"resqnet/pkg/logger"
)

// Credentials selects the service account. JSON wins over Path; with neither,
// application default credentials (or FIRESTORE_EMULATOR_HOST) are used.
type Credentials struct {
	ProjectID string
	JSON      string
	Path      string
}

func (c Credentials) options() ([]option.ClientOption, error) {
	if c.JSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(c.JSON))}, nil
	}
	if c.Path != "" {
		if _, err := os.Stat(c.Path); os.IsNotExist(err) {
			return nil, fmt.Errorf("service account file does not exist: %s", c.Path)
		}
		logger.Info("Using Firebase service account from file: %s", c.Path)
		return []option.ClientOption{option.WithCredentialsFile(c.Path)}, nil
	}
	logger.Info("Using application default credentials for Firebase")
	return nil, nil
}

// NewFirestoreClient boots a Firebase app and returns its Firestore client.
func NewFirestoreClient(ctx context.Context, creds Credentials) (*firestore.Client, error) {
	if creds.ProjectID == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID is required for the firestore backend")
	}

	opts, err := creds.options()
	if err != nil {
		return nil, err
	}

	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: creds.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firestore: %w", err)
	}
	return client, nil
}
