package firebase

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsOptions(t *testing.T) {
	opts, err := Credentials{JSON: `{"type":"service_account"}`, Path: "ignored.json"}.options()
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	_, err = Credentials{Path: filepath.Join(t.TempDir(), "missing.json")}.options()
	assert.Error(t, err)

	opts, err = Credentials{}.options()
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestNewFirestoreClientRequiresProject(t *testing.T) {
	_, err := NewFirestoreClient(context.Background(), Credentials{})

	assert.ErrorContains(t, err, "FIREBASE_PROJECT_ID")
}
