//go:build integration

package testutil

import (
	"context"
	"time"
)

// CleanAll truncates all tables; children first, though CASCADE covers them.
func (env *TestEnv) CleanAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tables := []string{
		"profile_interests",
		"profile_formations",
		"profile_seasons",
		"profile_qualities",
		"player_profiles",
	}

	for _, table := range tables {
		_, _ = env.Pool.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
	}
}
