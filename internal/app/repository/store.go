package repository

import (
	"context"

	"shiningstar/internal/app/ds"
)

// ServiceFilter сужает ListServices. Нулевые значения не фильтруют.
type ServiceFilter struct {
	Category      string
	Query         string // подстрока name.en без учета регистра
	AvailableOnly bool
}

// Store - общий интерфейс хранилищ postgres и JSON файла.
// Поиск отсутствующей записи возвращает ошибку с ds.ErrNotFound,
// создание записи с занятым id возвращает ds.ErrConflict.
type Store interface {
	ListServices(ctx context.Context, filter ServiceFilter) ([]ds.Service, error)
	GetService(ctx context.Context, id string) (*ds.Service, error)
	CreateService(ctx context.Context, service ds.Service) (*ds.Service, error)
	UpdateService(ctx context.Context, service ds.Service) (*ds.Service, error)
	// DeleteService также убирает id из всех пакетов и сообщает, изменился ли хоть один
	DeleteService(ctx context.Context, id string) (bool, error)

	ListPackages(ctx context.Context) ([]ds.Package, error)
	GetPackage(ctx context.Context, id string) (*ds.Package, error)
	CreatePackage(ctx context.Context, pkg ds.Package) (*ds.Package, error)
	UpdatePackage(ctx context.Context, pkg ds.Package) (*ds.Package, error)
	DeletePackage(ctx context.Context, id string) error

	ListPortfolio(ctx context.Context) ([]ds.PortfolioItem, error)
	GetPortfolioItem(ctx context.Context, id string) (*ds.PortfolioItem, error)
	CreatePortfolioItem(ctx context.Context, item ds.PortfolioItem) (*ds.PortfolioItem, error)
	DeletePortfolioItem(ctx context.Context, id string) error

	GetUserByID(ctx context.Context, id uint) (*ds.User, error)
	GetUserByUsername(ctx context.Context, username string) (*ds.User, error)
	CreateUser(ctx context.Context, user ds.User) (*ds.User, error)

	CreateContactMessage(ctx context.Context, msg ds.ContactMessage) (*ds.ContactMessage, error)
	ListContactMessages(ctx context.Context) ([]ds.ContactMessage, error)
	CreateServiceRequest(ctx context.Context, req ds.ServiceRequest) (*ds.ServiceRequest, error)
	ListServiceRequests(ctx context.Context) ([]ds.ServiceRequest, error)

	CreatePayment(ctx context.Context, p ds.Payment) (*ds.Payment, error)
	GetPayment(ctx context.Context, id string) (*ds.Payment, error)
	UpdatePayment(ctx context.Context, p ds.Payment) (*ds.Payment, error)
	CreateInvoice(ctx context.Context, inv ds.Invoice) (*ds.Invoice, error)
	GetInvoice(ctx context.Context, number string) (*ds.Invoice, error)

	Close() error
}

// Matches проверяет, проходит ли s фильтр. Используется обоими хранилищами.
func (f ServiceFilter) Matches(s ds.Service) bool {
	if f.Category != "" && s.Category != f.Category {
		return false
	}
	if f.AvailableOnly && !s.Available {
		return false
	}
	if f.Query != "" && !containsFold(s.Name.En(), f.Query) {
		return false
	}
	return true
}
