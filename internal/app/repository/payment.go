package repository

import (
	"context"

	"shiningstar/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для платежей и счетов

func (r *Repository) CreatePayment(ctx context.Context, p ds.Payment) (*ds.Payment, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, translate(err, "create payment "+p.ID)
	}
	return &p, nil
}

func (r *Repository) GetPayment(ctx context.Context, id string) (*ds.Payment, error) {
	var p ds.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, translate(err, "payment "+id)
	}
	return &p, nil
}

func (r *Repository) UpdatePayment(ctx context.Context, p ds.Payment) (*ds.Payment, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing ds.Payment
		if err := tx.Where("id = ?", p.ID).First(&existing).Error; err != nil {
			return err
		}
		p.CreatedAt = existing.CreatedAt
		return tx.Save(&p).Error
	})
	if err != nil {
		return nil, translate(err, "update payment "+p.ID)
	}
	return &p, nil
}

func (r *Repository) CreateInvoice(ctx context.Context, inv ds.Invoice) (*ds.Invoice, error) {
	if err := r.db.WithContext(ctx).Create(&inv).Error; err != nil {
		return nil, translate(err, "create invoice "+inv.Number)
	}
	return &inv, nil
}

func (r *Repository) GetInvoice(ctx context.Context, number string) (*ds.Invoice, error) {
	var inv ds.Invoice
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&inv).Error; err != nil {
		return nil, translate(err, "invoice "+number)
	}
	return &inv, nil
}
