package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SundayYogurt/onboarding_service/internal/domain"
	"github.com/SundayYogurt/onboarding_service/internal/helper"
	"gorm.io/gorm"
)

type EmployeeRepository interface {
	// Transaction runs fn against a repository bound to one database transaction.
	Transaction(ctx context.Context, fn func(repo EmployeeRepository) error) error

	Create(ctx context.Context, emp *domain.Employee) error
	FindConflict(ctx context.Context, email, aadhaar, pan string) (string, error)

	FindByID(ctx context.Context, id uint) (*domain.Employee, error)
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Count(ctx context.Context) (int64, error)
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Transaction(ctx context.Context, fn func(repo EmployeeRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&employeeRepository{db: tx})
	})
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	if err := r.db.WithContext(ctx).Create(emp).Error; err != nil {
		if field, ok := helper.UniqueViolationField(err); ok {
			return &domain.ConflictError{Field: field}
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// FindConflict returns the first of Email, Aadhaar or PAN already taken, or "".
func (r *employeeRepository) FindConflict(ctx context.Context, email, aadhaar, pan string) (string, error) {
	checks := []struct {
		field  string
		column string
		value  string
	}{
		{"Email", "emp_email", email},
		{"Aadhaar", "emp_aadhaar", aadhaar},
		{"PAN", "emp_pan", pan},
	}
	for _, c := range checks {
		var n int64
		err := r.db.WithContext(ctx).
			Model(&domain.Employee{}).
			Where(c.column+" = ?", c.value).
			Count(&n).Error
		if err != nil {
			return "", fmt.Errorf("check %s uniqueness: %w", c.column, err)
		}
		if n > 0 {
			return c.field, nil
		}
	}
	return "", nil
}

func (r *employeeRepository) FindByID(ctx context.Context, id uint) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).First(&emp, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).Where("emp_email = ?", email).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// List returns every employee, newest first.
func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	var emps []domain.Employee
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&emps).Error
	if err != nil {
		return nil, err
	}
	return emps, nil
}

func (r *employeeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Employee{}).Count(&n).Error
	return n, err
}
