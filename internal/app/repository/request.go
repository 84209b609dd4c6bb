package repository

import (
	"context"

	"shiningstar/internal/app/ds"
)

// Методы для сообщений и заявок

func (r *Repository) CreateContactMessage(ctx context.Context, msg ds.ContactMessage) (*ds.ContactMessage, error) {
	if err := r.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, translate(err, "create contact message")
	}
	return &msg, nil
}

func (r *Repository) ListContactMessages(ctx context.Context) ([]ds.ContactMessage, error) {
	var msgs []ds.ContactMessage
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&msgs).Error; err != nil {
		return nil, translate(err, "list contact messages")
	}
	return msgs, nil
}

func (r *Repository) CreateServiceRequest(ctx context.Context, req ds.ServiceRequest) (*ds.ServiceRequest, error) {
	if err := r.db.WithContext(ctx).Create(&req).Error; err != nil {
		return nil, translate(err, "create service request")
	}
	return &req, nil
}

func (r *Repository) ListServiceRequests(ctx context.Context) ([]ds.ServiceRequest, error) {
	var reqs []ds.ServiceRequest
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, translate(err, "list service requests")
	}
	return reqs, nil
}
