package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MohamedRasheqA/teachback/internal/errs"
	"github.com/MohamedRasheqA/teachback/internal/model/settings"
)

// SettingsStore reads and updates the global prompt configuration.
// Most-recently-updated row wins, matching the admin surface's contract.
type SettingsStore struct {
	pool *pgxpool.Pool
}

// NewSettingsStore builds a settings store on the shared pool.
func NewSettingsStore(pool *pgxpool.Pool) *SettingsStore {
	return &SettingsStore{pool: pool}
}

// Latest returns the current configuration with documented defaults
// substituted for unset fields. A missing row resolves to pure defaults.
func (s *SettingsStore) Latest(ctx context.Context) (settings.PromptConfiguration, error) {
	const query = `
		SELECT prompt, heading, description, page_title
		FROM prompt_settings
		ORDER BY updated_at DESC
		LIMIT 1`

	var cfg settings.PromptConfiguration
	err := s.pool.QueryRow(ctx, query).Scan(&cfg.Prompt, &cfg.Heading, &cfg.Description, &cfg.PageTitle)
	if errors.Is(err, pgx.ErrNoRows) {
		return settings.PromptConfiguration{}.WithDefaults(), nil
	}
	if err != nil {
		return settings.PromptConfiguration{}, errs.Persistencef("fetching prompt settings", err)
	}

	return cfg.WithDefaults(), nil
}

// Update applies the provided fields to the most-recently-updated row and
// refreshes its updated_at stamp. Nil fields are left untouched.
func (s *SettingsStore) Update(ctx context.Context, upd settings.Update) error {
	setClauses := make([]string, 0, 5)
	values := make([]any, 0, 4)

	appendClause := func(column string, value *string) {
		if value == nil {
			return
		}
		values = append(values, *value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(values)))
	}

	appendClause("prompt", upd.Prompt)
	appendClause("heading", upd.Heading)
	appendClause("description", upd.Description)
	appendClause("page_title", upd.PageTitle)
	setClauses = append(setClauses, "updated_at = CURRENT_TIMESTAMP")

	query := fmt.Sprintf(`
		UPDATE prompt_settings
		SET %s
		WHERE id = (SELECT id FROM prompt_settings ORDER BY updated_at DESC LIMIT 1)`,
		strings.Join(setClauses, ", "))

	if _, err := s.pool.Exec(ctx, query, values...); err != nil {
		return errs.Persistencef("updating prompt settings", err)
	}
	return nil
}
