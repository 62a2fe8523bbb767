package nodes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dns-fleet/core/database"
	"dns-fleet/core/node"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is a Store backed by the registry database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store on an open connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the registry table and checks that the
// resulting schema has every column the store reads.
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("migrate %s: %w", TableName, err)
	}
	return s.Verify(ctx)
}

// Verify checks the registry table schema.
func (s *GormStore) Verify(ctx context.Context) error {
	missing, err := database.MissingColumns(s.db.WithContext(ctx), TableName, requiredColumns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns: %s", TableName, strings.Join(missing, ", "))
	}
	return nil
}

func (s *GormStore) List(ctx context.Context) ([]node.Node, error) {
	var records []Record
	if err := s.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}

	out := make([]node.Node, len(records))
	for i, r := range records {
		out[i] = r.toNode()
	}
	return out, nil
}

func (s *GormStore) Get(ctx context.Context, id string) (node.Node, error) {
	var r Record
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return node.Node{}, ErrNotFound
	}
	if err != nil {
		return node.Node{}, fmt.Errorf("get node %s: %w", id, err)
	}
	return r.toNode(), nil
}

func (s *GormStore) Upsert(ctx context.Context, n node.Node) error {
	r := recordFrom(n)
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "url", "token", "updated_at"}),
	}).Create(&r).Error
	if err != nil {
		return fmt.Errorf("upsert node %s: %w", n.ID, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Record{})
	if res.Error != nil {
		return fmt.Errorf("delete node %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
