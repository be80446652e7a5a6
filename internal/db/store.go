package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store is the persistence layer for orders and leads.
type Store struct {
	db *gorm.DB
}

// Open opens the sqlite database at path and runs migrations.
func Open(path string) (*Store, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := gdb.AutoMigrate(&Order{}, &Lead{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &Store{db: gdb}, nil
}

// RecordOrder persists the order unless one already exists for the same
// session id. It reports whether a new record was created.
func (s *Store) RecordOrder(ctx context.Context, order *Order) (bool, error) {
	var existing Order
	err := s.db.WithContext(ctx).Where("session_id = ?", order.SessionID).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("look up order: %w", err)
	}

	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return false, fmt.Errorf("create order: %w", err)
	}
	return true, nil
}

// SaveLead stores the lead, updating the existing record when the email was
// seen before.
func (s *Store) SaveLead(ctx context.Context, lead *Lead) error {
	var existing Lead
	err := s.db.WithContext(ctx).Where("email = ?", lead.Email).First(&existing).Error
	if err == nil {
		existing.Name = lead.Name
		existing.Interest = lead.Interest
		if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return fmt.Errorf("update lead: %w", err)
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("look up lead: %w", err)
	}

	lead.LeadID = uuid.NewString()
	if err := s.db.WithContext(ctx).Create(lead).Error; err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}
