package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"greenjobs/internal/model"
)

// SQLStore keeps the token in the session_tokens table.
type SQLStore struct {
	db *gorm.DB
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore builds a GORM-backed store. The table is created by db.Migrate.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Load(ctx context.Context) (string, error) {
	var row model.StoredToken
	err := s.db.WithContext(ctx).Where("`key` = ?", Key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return row.Value, nil
}

func (s *SQLStore) Save(ctx context.Context, token string) error {
	if err := upsert(s.db.WithContext(ctx), token).Error; err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *SQLStore) Clear(ctx context.Context) error {
	if err := remove(s.db.WithContext(ctx)).Error; err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func upsert(tx *gorm.DB, token string) *gorm.DB {
	row := model.StoredToken{Key: Key, Value: token}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row)
}

func remove(tx *gorm.DB) *gorm.DB {
	return tx.Where("`key` = ?", Key).Delete(&model.StoredToken{})
}
