package users

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/JaimeStill/docket/pkg/repository"
)

// permissionCacheSize bounds the (grade, module) lookup cache. The full
// permission matrix is small, so this comfortably holds all of it.
const permissionCacheSize = 128

// Gate answers whether a grade may use a module. Lookups are cached so
// the hot path (every authorized request) rarely touches the database.
type Gate struct {
	db     *sql.DB
	cache  *lru.Cache[string, bool]
	logger *slog.Logger
}

// NewGate creates a permission gate over the permissions table.
func NewGate(db *sql.DB, logger *slog.Logger) (*Gate, error) {
	cache, err := lru.New[string, bool](permissionCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create permission cache: %w", err)
	}

	return &Gate{
		db:     db,
		cache:  cache,
		logger: logger.With("system", "permissions"),
	}, nil
}

func cacheKey(grade Grade, module string) string {
	return string(grade) + ":" + module
}

// HasAccess reports whether the grade is granted the module. A missing
// grant is an ordinary false, never an error.
func (g *Gate) HasAccess(ctx context.Context, grade Grade, module string) (bool, error) {
	if !validModule(module) {
		return false, ErrInvalidModule
	}

	key := cacheKey(grade, module)
	if allowed, ok := g.cache.Get(key); ok {
		return allowed, nil
	}

	var allowed bool
	err := g.db.QueryRowContext(
		ctx,
		"SELECT EXISTS (SELECT 1 FROM permissions WHERE grade = $1 AND module = $2)",
		grade, module,
	).Scan(&allowed)
	if err != nil {
		return false, fmt.Errorf("query permission %s/%s: %w", grade, module, err)
	}

	g.cache.Add(key, allowed)
	return allowed, nil
}

// Grant adds a (grade, module) permission. Granting an existing
// permission is a no-op.
func (g *Gate) Grant(ctx context.Context, grade Grade, module string) error {
	if !validModule(module) {
		return ErrInvalidModule
	}

	_, err := g.db.ExecContext(
		ctx,
		"INSERT INTO permissions(grade, module) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		grade, module,
	)
	if err != nil {
		return fmt.Errorf("grant permission %s/%s: %w", grade, module, err)
	}

	g.cache.Remove(cacheKey(grade, module))
	g.logger.Info("permission granted", "grade", grade, "module", module)
	return nil
}

// Revoke removes a (grade, module) permission. Revoking an absent
// permission is a no-op.
func (g *Gate) Revoke(ctx context.Context, grade Grade, module string) error {
	if !validModule(module) {
		return ErrInvalidModule
	}

	_, err := g.db.ExecContext(
		ctx,
		"DELETE FROM permissions WHERE grade = $1 AND module = $2",
		grade, module,
	)
	if err != nil {
		return fmt.Errorf("revoke permission %s/%s: %w", grade, module, err)
	}

	g.cache.Remove(cacheKey(grade, module))
	g.logger.Info("permission revoked", "grade", grade, "module", module)
	return nil
}

// ListForGrade returns the modules granted to a grade.
func (g *Gate) ListForGrade(ctx context.Context, grade Grade) ([]Permission, error) {
	perms, err := repository.QueryMany(ctx, g.db,
		"SELECT grade, module FROM permissions WHERE grade = $1 ORDER BY module",
		[]any{grade},
		func(s repository.Scanner) (Permission, error) {
			var p Permission
			err := s.Scan(&p.Grade, &p.Module)
			return p, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("list permissions for %s: %w", grade, err)
	}

	if perms == nil {
		perms = []Permission{}
	}
	return perms, nil
}
