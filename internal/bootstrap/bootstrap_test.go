package bootstrap

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/academia/internal/app/models"
	"github.com/yigit/academia/internal/config"
	"github.com/yigit/academia/internal/db"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildDependenciesCreatesIndexes(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set, skipping document store tests")
	}

	cfg := &config.Config{}
	cfg.Database.URI = uri
	cfg.Database.Name = fmt.Sprintf("academia_boot_%d", time.Now().UnixNano())
	cfg.Database.Timeout = "5s"

	database, err := SetupDatabase(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.Database().Drop(context.Background())
		database.Close()
	})

	deps, err := BuildDependencies(cfg, database, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, deps.Repos)

	assert.Contains(t, indexNames(t, database, models.CourseCollection), "estado_1")
	assert.Contains(t, indexNames(t, database, models.UserCollection), "cursos_1")
}

func indexNames(t *testing.T, database *db.MongoDB, collection string) []string {
	t.Helper()
	ctx := context.Background()

	cursor, err := database.Database().Collection(collection).Indexes().List(ctx)
	require.NoError(t, err)

	var specs []bson.M
	require.NoError(t, cursor.All(ctx, &specs))

	names := make([]string, 0, len(specs))
	for _, spec := range specs {
		if name, ok := spec["name"].(string); ok {
			names = append(names, name)
		}
	}
	return names
}
