package filestore

import (
	"context"
	"sort"
	"time"

	"shiningstar/internal/app/catalog"
	"shiningstar/internal/app/ds"
	"shiningstar/internal/app/repository"
)

func (r *FileRepository) ListServices(_ context.Context, filter repository.ServiceFilter) ([]ds.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	services := make([]ds.Service, 0, len(r.state.Services))
	for _, s := range r.state.Services {
		if filter.Matches(s) {
			services = append(services, copyService(s))
		}
	}
	sortByCreated(services, func(s ds.Service) time.Time { return s.CreatedAt }, func(s ds.Service) string { return s.ID })
	return services, nil
}

func (r *FileRepository) GetService(_ context.Context, id string) (*ds.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.state.Services[id]
	if !ok {
		return nil, notFound("service", id)
	}
	s = copyService(s)
	return &s, nil
}

func (r *FileRepository) CreateService(_ context.Context, service ds.Service) (*ds.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.state.Services[service.ID]; exists {
		return nil, conflict("service", service.ID)
	}
	now := r.now().UTC()
	service.CreatedAt, service.UpdatedAt = now, now
	r.state.Services[service.ID] = copyService(service)

	if err := r.persistLocked(); err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *FileRepository) UpdateService(_ context.Context, service ds.Service) (*ds.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.state.Services[service.ID]
	if !ok {
		return nil, notFound("service", service.ID)
	}
	service.CreatedAt = existing.CreatedAt
	service.UpdatedAt = r.now().UTC()
	r.state.Services[service.ID] = copyService(service)

	if err := r.persistLocked(); err != nil {
		return nil, err
	}
	return &service, nil
}

// DeleteService удаляет услугу и ее id из всех пакетов одной записью на диск
func (r *FileRepository) DeleteService(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.Services[id]; !ok {
		return false, notFound("service", id)
	}
	delete(r.state.Services, id)

	packages := make([]ds.Package, 0, len(r.state.Packages))
	for _, pkg := range r.state.Packages {
		packages = append(packages, pkg)
	}
	changed := catalog.RemoveServiceFromPackages(packages, id)
	now := r.now().UTC()
	for _, pkg := range changed {
		pkg.UpdatedAt = now
		r.state.Packages[pkg.ID] = pkg
	}

	if err := r.persistLocked(); err != nil {
		return false, err
	}
	return len(changed) > 0, nil
}

func (r *FileRepository) ListPackages(_ context.Context) ([]ds.Package, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	packages := make([]ds.Package, 0, len(r.state.Packages))
	for _, pkg := range r.state.Packages {
		packages = append(packages, copyPackage(pkg))
	}
	sortByCreated(packages, func(p ds.Package) time.Time { return p.CreatedAt }, func(p ds.Package) string { return p.ID })
	return packages, nil
}

func (r *FileRepository) GetPackage(_ context.Context, id string) (*ds.Package, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pkg, ok := r.state.Packages[id]
	if !ok {
		return nil, notFound("package", id)
	}
	pkg = copyPackage(pkg)
	return &pkg, nil
}

func (r *FileRepository) CreatePackage(_ context.Context, pkg ds.Package) (*ds.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.state.Packages[pkg.ID]; exists {
		return nil, conflict("package", pkg.ID)
	}
	now := r.now().UTC()
	pkg.CreatedAt, pkg.UpdatedAt = now, now
	pkg = copyPackage(pkg)
	r.state.Packages[pkg.ID] = pkg

	if err := r.persistLocked(); err != nil {
		return nil, err
	}
	out := copyPackage(pkg)
	return &out, nil
}

func (r *FileRepository) UpdatePackage(_ context.Context, pkg ds.Package) (*ds.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.state.Packages[pkg.ID]
	if !ok {
		return nil, notFound("package", pkg.ID)
	}
	pkg.CreatedAt = existing.CreatedAt
	pkg.UpdatedAt = r.now().UTC()
	pkg = copyPackage(pkg)
	r.state.Packages[pkg.ID] = pkg

	if err := r.persistLocked(); err != nil {
		return nil, err
	}
	out := copyPackage(pkg)
	return &out, nil
}

func (r *FileRepository) DeletePackage(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.Packages[id]; !ok {
		return notFound("package", id)
	}
	delete(r.state.Packages, id)
	return r.persistLocked()
}

func (r *FileRepository) ListPortfolio(_ context.Context) ([]ds.PortfolioItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]ds.PortfolioItem, 0, len(r.state.Portfolio))
	for _, item := range r.state.Portfolio {
		items = append(items, copyPortfolioItem(item))
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (r *FileRepository) GetPortfolioItem(_ context.Context, id string) (*ds.PortfolioItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.state.Portfolio[id]
	if !ok {
		return nil, notFound("portfolio item", id)
	}
	item = copyPortfolioItem(item)
	return &item, nil
}

func (r *FileRepository) CreatePortfolioItem(_ context.Context, item ds.PortfolioItem) (*ds.PortfolioItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.state.Portfolio[item.ID]; exists {
		return nil, conflict("portfolio item", item.ID)
	}
	item.CreatedAt = r.now().UTC()
	if item.Date.IsZero() {
		item.Date = item.CreatedAt
	}
	r.state.Portfolio[item.ID] = copyPortfolioItem(item)

	if err := r.persistLocked(); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *FileRepository) DeletePortfolioItem(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.Portfolio[id]; !ok {
		return notFound("portfolio item", id)
	}
	delete(r.state.Portfolio, id)
	return r.persistLocked()
}
