package recurring

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/models"

	"gorm.io/gorm"
)

// Store is the persistence surface the processor needs. Each due definition is
// handled inside its own unit of work: the materialized transaction, the
// category resolution and the due-date advance commit or roll back together,
// and a failed unit never touches other definitions.
type Store interface {
	// DueDefinitions returns all definitions with auto-add enabled whose
	// next run date is on or before today (day granularity).
	DueDefinitions(ctx context.Context, today time.Time) ([]models.RecurringExpense, error)

	// InUnit runs fn inside one transactional unit of work.
	InUnit(ctx context.Context, fn func(u Unit) error) error
}

// Unit exposes the per-definition writes. The category id is not known until
// after ResolveCategory, so attaching it is necessarily a second write on the
// transaction row.
type Unit interface {
	CreateTransaction(txn *models.Transaction) error
	ResolveCategory(name, categoryType string, ownerID uint) (*models.Category, error)
	AttachCategory(txn *models.Transaction, categoryID uint) error
	AdvanceNextRun(def *models.RecurringExpense, next time.Time) error
}

// GormStore implements Store on the application database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) DueDefinitions(ctx context.Context, today time.Time) ([]models.RecurringExpense, error) {
	var defs []models.RecurringExpense
	err := s.db.WithContext(ctx).
		Where("auto_add = ? AND next_run_date <= ?", true, DateOnly(today)).
		Find(&defs).Error
	if err != nil {
		return nil, fmt.Errorf("query due definitions: %w", err)
	}
	return defs, nil
}

func (s *GormStore) InUnit(ctx context.Context, fn func(u Unit) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormUnit{tx: tx})
	})
}

type gormUnit struct {
	tx *gorm.DB
}

func (u *gormUnit) CreateTransaction(txn *models.Transaction) error {
	if err := u.tx.Create(txn).Error; err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// ResolveCategory finds or creates the category identified by (name, type).
// The owner is only attached when the row has to be created. A concurrent
// insert may trip the categories unique index; in that case the winning row
// is re-read instead of failing the unit.
func (u *gormUnit) ResolveCategory(name, categoryType string, ownerID uint) (*models.Category, error) {
	var cat models.Category
	err := u.tx.
		Where("name = ? AND type = ?", name, categoryType).
		Attrs(models.Category{UserID: ownerID}).
		FirstOrCreate(&cat).Error
	if err != nil {
		if retryErr := u.tx.Where("name = ? AND type = ?", name, categoryType).First(&cat).Error; retryErr == nil {
			return &cat, nil
		}
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	return &cat, nil
}

func (u *gormUnit) AttachCategory(txn *models.Transaction, categoryID uint) error {
	txn.CategoryID = &categoryID
	if err := u.tx.Model(txn).Update("category_id", categoryID).Error; err != nil {
		return fmt.Errorf("attach category: %w", err)
	}
	return nil
}

func (u *gormUnit) AdvanceNextRun(def *models.RecurringExpense, next time.Time) error {
	if err := u.tx.Model(def).Update("next_run_date", next).Error; err != nil {
		return fmt.Errorf("advance next run date: %w", err)
	}
	def.NextRunDate = next
	return nil
}
