package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dm-server/internal/interfaces"
	"dm-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgCharacterRepository implements CharacterRepository
var _ interfaces.CharacterRepository = (*pgCharacterRepository)(nil)

type pgCharacterRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgCharacterRepository creates a new PostgreSQL-backed CharacterRepository.
func NewPgCharacterRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.CharacterRepository {
	return &pgCharacterRepository{
		db:     db,
		logger: logger.Named("PgCharacterRepo"),
	}
}

const characterColumns = `id, user_id, name, race, class, alignment, background, level, experience,
hp, max_hp, ac, strength, dexterity, constitution, intelligence, wisdom, charisma,
pp, gp, ep, sp, cp, inventory, created_at, updated_at`

const listCharactersByUserQuery = `
SELECT ` + characterColumns + `
FROM characters
WHERE user_id = $1
ORDER BY created_at DESC`

const getCharacterByIDQuery = `
SELECT ` + characterColumns + `
FROM characters
WHERE id = $1 AND user_id = $2`

const getCharacterByIDUnscopedQuery = `
SELECT ` + characterColumns + `
FROM characters
WHERE id = $1`

const createCharacterQuery = `
INSERT INTO characters (id, user_id, name, race, class, alignment, background, level, experience,
	hp, max_hp, ac, strength, dexterity, constitution, intelligence, wisdom, charisma,
	pp, gp, ep, sp, cp, inventory)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
RETURNING created_at, updated_at`

const deleteCharacterQuery = `DELETE FROM characters WHERE id = $1 AND user_id = $2`

// ListByUser returns the caller's characters, newest first.
func (r *pgCharacterRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Character, error) {
	characters := make([]models.Character, 0)
	if err := pgxscan.Select(ctx, r.db, &characters, listCharactersByUserQuery, userID); err != nil {
		r.logger.Error("Failed to list characters", zap.String("userID", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return characters, nil
}

// GetByID returns a character owned by userID.
func (r *pgCharacterRepository) GetByID(ctx context.Context, userID, characterID uuid.UUID) (*models.Character, error) {
	var c models.Character
	if err := pgxscan.Get(ctx, r.db, &c, getCharacterByIDQuery, characterID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCharacterNotFound
		}
		r.logger.Error("Failed to get character", zap.String("characterID", characterID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return &c, nil
}

// Create inserts a new character.
func (r *pgCharacterRepository) Create(ctx context.Context, c *models.Character) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx, createCharacterQuery,
		c.ID, c.UserID, c.Name, c.Race, c.Class, c.Alignment, c.Background, c.Level, c.Experience,
		c.HP, c.MaxHP, c.AC, c.Strength, c.Dexterity, c.Constitution, c.Intelligence, c.Wisdom, c.Charisma,
		c.PP, c.GP, c.EP, c.SP, c.CP, c.Inventory,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create character", zap.String("userID", c.UserID.String()), zap.Error(err))
		return fmt.Errorf("failed to create character: %w", err)
	}
	r.logger.Info("Character created", zap.String("characterID", c.ID.String()), zap.String("userID", c.UserID.String()))
	return nil
}

// Delete removes a character. Campaigns referencing it are un-linked by ON DELETE SET NULL.
func (r *pgCharacterRepository) Delete(ctx context.Context, userID, characterID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteCharacterQuery, characterID, userID)
	if err != nil {
		r.logger.Error("Failed to delete character", zap.String("characterID", characterID.String()), zap.Error(err))
		return fmt.Errorf("failed to delete character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrCharacterNotFound
	}
	return nil
}

// ApplyPatch updates only the columns present in the patch and returns the whole row.
func (r *pgCharacterRepository) ApplyPatch(ctx context.Context, characterID uuid.UUID, patch *models.CharacterPatch) (*models.Character, error) {
	query, args := buildPatchQuery(characterID, patch)

	var c models.Character
	if err := pgxscan.Get(ctx, r.db, &c, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCharacterNotFound
		}
		r.logger.Error("Failed to apply character patch",
			zap.String("characterID", characterID.String()),
			zap.Strings("keys", patch.Keys()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to apply character patch: %w", err)
	}
	r.logger.Info("Character updated", zap.String("characterID", characterID.String()), zap.Strings("keys", patch.Keys()))
	return &c, nil
}

// buildPatchQuery собирает UPDATE только по колонкам из фиксированного списка патча.
// Пустой патч превращается в обычный SELECT.
func buildPatchQuery(characterID uuid.UUID, patch *models.CharacterPatch) (string, []any) {
	if patch.IsEmpty() {
		return getCharacterByIDUnscopedQuery, []any{characterID}
	}

	fields := patch.IntFieldList()
	sets := make([]string, 0, len(fields)+2)
	args := make([]any, 0, len(fields)+2)
	for _, f := range fields {
		args = append(args, f.Value)
		sets = append(sets, fmt.Sprintf("%s = $%d", f.Column, len(args)))
	}
	if patch.Inventory != nil {
		args = append(args, *patch.Inventory)
		sets = append(sets, fmt.Sprintf("inventory = $%d", len(args)))
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, characterID)

	query := fmt.Sprintf("UPDATE characters SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), characterColumns)
	return query, args
}
