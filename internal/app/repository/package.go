package repository

import (
	"context"

	"shiningstar/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для работы с пакетами

func (r *Repository) ListPackages(ctx context.Context) ([]ds.Package, error) {
	var packages []ds.Package
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&packages).Error; err != nil {
		return nil, translate(err, "list packages")
	}
	return packages, nil
}

func (r *Repository) GetPackage(ctx context.Context, id string) (*ds.Package, error) {
	var pkg ds.Package
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pkg).Error; err != nil {
		return nil, translate(err, "package "+id)
	}
	return &pkg, nil
}

func (r *Repository) CreatePackage(ctx context.Context, pkg ds.Package) (*ds.Package, error) {
	if err := r.db.WithContext(ctx).Create(&pkg).Error; err != nil {
		return nil, translate(err, "create package "+pkg.ID)
	}
	return &pkg, nil
}

func (r *Repository) UpdatePackage(ctx context.Context, pkg ds.Package) (*ds.Package, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing ds.Package
		if err := tx.Where("id = ?", pkg.ID).First(&existing).Error; err != nil {
			return err
		}
		pkg.CreatedAt = existing.CreatedAt
		return tx.Save(&pkg).Error
	})
	if err != nil {
		return nil, translate(err, "update package "+pkg.ID)
	}
	return &pkg, nil
}

func (r *Repository) DeletePackage(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ds.Package{})
	if res.Error != nil {
		return translate(res.Error, "delete package "+id)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete package "+id)
	}
	return nil
}
