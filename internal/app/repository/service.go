package repository

import (
	"context"

	"shiningstar/internal/app/catalog"
	"shiningstar/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для работы с услугами

func (r *Repository) ListServices(ctx context.Context, filter ServiceFilter) ([]ds.Service, error) {
	q := r.db.WithContext(ctx).Order("created_at, id")
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.AvailableOnly {
		q = q.Where("available = ?", true)
	}
	if filter.Query != "" {
		q = q.Where("name->>'en' ILIKE ?", "%"+filter.Query+"%")
	}

	var services []ds.Service
	if err := q.Find(&services).Error; err != nil {
		return nil, translate(err, "list services")
	}
	return services, nil
}

func (r *Repository) GetService(ctx context.Context, id string) (*ds.Service, error) {
	var service ds.Service
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&service).Error
	if err != nil {
		return nil, translate(err, "service "+id)
	}
	return &service, nil
}

func (r *Repository) CreateService(ctx context.Context, service ds.Service) (*ds.Service, error) {
	if err := r.db.WithContext(ctx).Create(&service).Error; err != nil {
		return nil, translate(err, "create service "+service.ID)
	}
	return &service, nil
}

func (r *Repository) UpdateService(ctx context.Context, service ds.Service) (*ds.Service, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing ds.Service
		if err := tx.Where("id = ?", service.ID).First(&existing).Error; err != nil {
			return err
		}
		service.CreatedAt = existing.CreatedAt
		return tx.Save(&service).Error
	})
	if err != nil {
		return nil, translate(err, "update service "+service.ID)
	}
	return &service, nil
}

// Удалить услугу и убрать ее из всех пакетов в одной транзакции
func (r *Repository) DeleteService(ctx context.Context, id string) (bool, error) {
	modified := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&ds.Service{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var packages []ds.Package
		if err := tx.Find(&packages).Error; err != nil {
			return err
		}
		for _, pkg := range catalog.RemoveServiceFromPackages(packages, id) {
			if err := tx.Save(&pkg).Error; err != nil {
				return err
			}
			modified = true
		}
		return nil
	})
	if err != nil {
		return false, translate(err, "delete service "+id)
	}
	return modified, nil
}
