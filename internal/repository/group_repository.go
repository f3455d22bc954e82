package repository

import (
	"context"
	"errors"

	"ProjectScoreService/internal/models"

	"gorm.io/gorm"
)

type GroupRepository struct {
	database *gorm.DB
}

func NewGroupRepository(database *gorm.DB) *GroupRepository {
	return &GroupRepository{
		database: database,
	}
}

func (r *GroupRepository) FindByID(ctx context.Context, id uint) (*models.UserGroup, error) {
	var group models.UserGroup
	result := r.database.WithContext(ctx).Preload("Department").Where("id = ?", id).First(&group)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return &group, nil
}

func (r *GroupRepository) FindAll(ctx context.Context) ([]models.UserGroup, error) {
	var groups []models.UserGroup
	err := r.database.WithContext(ctx).
		Preload("Department").
		Joins("JOIN departments ON departments.id = user_groups.department_id").
		Order("departments.name, user_groups.name").
		Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) FindDepartmentByName(ctx context.Context, name string) (*models.Department, error) {
	var department models.Department
	result := r.database.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&department)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return &department, nil
}

func (r *GroupRepository) FindDepartments(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	err := r.database.WithContext(ctx).Order("name").Find(&departments).Error
	return departments, err
}
