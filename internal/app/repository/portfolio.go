package repository

import (
	"context"

	"shiningstar/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для портфолио

func (r *Repository) ListPortfolio(ctx context.Context) ([]ds.PortfolioItem, error) {
	var items []ds.PortfolioItem
	if err := r.db.WithContext(ctx).Order("date DESC, id").Find(&items).Error; err != nil {
		return nil, translate(err, "list portfolio")
	}
	return items, nil
}

func (r *Repository) GetPortfolioItem(ctx context.Context, id string) (*ds.PortfolioItem, error) {
	var item ds.PortfolioItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, translate(err, "portfolio item "+id)
	}
	return &item, nil
}

func (r *Repository) CreatePortfolioItem(ctx context.Context, item ds.PortfolioItem) (*ds.PortfolioItem, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, translate(err, "create portfolio item "+item.ID)
	}
	return &item, nil
}

func (r *Repository) DeletePortfolioItem(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ds.PortfolioItem{})
	if res.Error != nil {
		return translate(res.Error, "delete portfolio item "+id)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete portfolio item "+id)
	}
	return nil
}
