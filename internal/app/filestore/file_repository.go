// Package filestore хранит весь каталог в одном JSON документе
// для установок из одного экземпляра без базы данных.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"time"

	"shiningstar/internal/app/ds"
	"shiningstar/internal/app/repository"
)

type fileState struct {
	Services        map[string]ds.Service       `json:"services"`
	Packages        map[string]ds.Package       `json:"packages"`
	Portfolio       map[string]ds.PortfolioItem `json:"portfolio"`
	Users           map[uint]ds.User            `json:"users"`
	ContactMessages []ds.ContactMessage         `json:"contactMessages"`
	ServiceRequests []ds.ServiceRequest         `json:"serviceRequests"`
	Payments        map[string]ds.Payment       `json:"payments"`
	Invoices        map[string]ds.Invoice       `json:"invoices"`
	Sequence        uint                        `json:"sequence"`
}

type FileRepository struct {
	path           string
	mu             sync.RWMutex
	state          fileState
	persistedState fileState
	now            func() time.Time
}

var _ repository.Store = (*FileRepository)(nil)

func NewFileRepository(path string) (*FileRepository, error) {
	if path == "" {
		path = "./data/store.json"
	}

	repo := &FileRepository{path: path, now: time.Now}
	repo.ensureMapsLocked()
	repo.persistedState = cloneFileState(repo.state)

	if err := repo.load(); err != nil {
		return nil, err
	}

	return repo, nil
}

func (r *FileRepository) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	content, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return r.persistLocked()
		}
		return err
	}

	if len(content) == 0 {
		return nil
	}

	if err := json.Unmarshal(content, &r.state); err != nil {
		return fmt.Errorf("decode store data: %w", err)
	}

	r.ensureMapsLocked()
	r.persistedState = cloneFileState(r.state)
	return nil
}

func (r *FileRepository) Close() error {
	return nil
}

func (r *FileRepository) ensureMapsLocked() {
	if r.state.Services == nil {
		r.state.Services = map[string]ds.Service{}
	}
	if r.state.Packages == nil {
		r.state.Packages = map[string]ds.Package{}
	}
	if r.state.Portfolio == nil {
		r.state.Portfolio = map[string]ds.PortfolioItem{}
	}
	if r.state.Users == nil {
		r.state.Users = map[uint]ds.User{}
	}
	if r.state.Payments == nil {
		r.state.Payments = map[string]ds.Payment{}
	}
	if r.state.Invoices == nil {
		r.state.Invoices = map[string]ds.Invoice{}
	}
}

func (r *FileRepository) nextIDLocked() uint {
	r.state.Sequence++
	return r.state.Sequence
}

// persistLocked записывает состояние через временный файл.
// При ошибке состояние в памяти откатывается к последнему записанному.
func (r *FileRepository) persistLocked() error {
	r.ensureMapsLocked()
	body, err := json.MarshalIndent(r.state, "", "  ")
	if err != nil {
		r.state = cloneFileState(r.persistedState)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		r.state = cloneFileState(r.persistedState)
		return err
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o600); err != nil {
		_ = os.Remove(tmp)
		r.state = cloneFileState(r.persistedState)
		return err
	}

	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		r.state = cloneFileState(r.persistedState)
		return err
	}
	r.persistedState = cloneFileState(r.state)

	return nil
}

func notFound(what, id string) error {
	return fmt.Errorf("%s %s: %w", what, id, ds.ErrNotFound)
}

func conflict(what, id string) error {
	return fmt.Errorf("%s %s: %w", what, id, ds.ErrConflict)
}

func copyService(s ds.Service) ds.Service {
	s.Name = maps.Clone(s.Name)
	s.Description = maps.Clone(s.Description)
	s.Unit = clonePtr(s.Unit)
	s.MaxQuantity = clonePtr(s.MaxQuantity)
	s.MinArea = clonePtr(s.MinArea)
	s.MaxArea = clonePtr(s.MaxArea)
	s.ImageURL = clonePtr(s.ImageURL)
	return s
}

func copyPackage(pkg ds.Package) ds.Package {
	pkg.Name = maps.Clone(pkg.Name)
	pkg.Description = maps.Clone(pkg.Description)
	pkg.Services = append([]string{}, pkg.Services...)
	return pkg
}

func copyPortfolioItem(item ds.PortfolioItem) ds.PortfolioItem {
	item.Title = maps.Clone(item.Title)
	item.Description = maps.Clone(item.Description)
	item.BeforeImage = clonePtr(item.BeforeImage)
	item.AfterImage = clonePtr(item.AfterImage)
	return item
}

func copyPayment(p ds.Payment) ds.Payment {
	p.Metadata = maps.Clone(p.Metadata)
	p.RefundID = clonePtr(p.RefundID)
	p.RefundAmount = clonePtr(p.RefundAmount)
	p.ProcessedAt = clonePtr(p.ProcessedAt)
	p.RefundedAt = clonePtr(p.RefundedAt)
	return p
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyInvoice(inv ds.Invoice) ds.Invoice {
	inv.Lines = append([]ds.InvoiceLine{}, inv.Lines...)
	return inv
}

func copyContactMessage(msg ds.ContactMessage) ds.ContactMessage {
	msg.Services = slices.Clone(msg.Services)
	return msg
}

func copyServiceRequest(req ds.ServiceRequest) ds.ServiceRequest {
	req.Services = slices.Clone(req.Services)
	req.Packages = slices.Clone(req.Packages)
	req.PreferredDate = clonePtr(req.PreferredDate)
	return req
}

func cloneFileState(state fileState) fileState {
	clone := fileState{
		Services:        make(map[string]ds.Service, len(state.Services)),
		Packages:        make(map[string]ds.Package, len(state.Packages)),
		Portfolio:       make(map[string]ds.PortfolioItem, len(state.Portfolio)),
		Users:           make(map[uint]ds.User, len(state.Users)),
		ContactMessages: make([]ds.ContactMessage, 0, len(state.ContactMessages)),
		ServiceRequests: make([]ds.ServiceRequest, 0, len(state.ServiceRequests)),
		Payments:        make(map[string]ds.Payment, len(state.Payments)),
		Invoices:        make(map[string]ds.Invoice, len(state.Invoices)),
		Sequence:        state.Sequence,
	}

	for _, msg := range state.ContactMessages {
		clone.ContactMessages = append(clone.ContactMessages, copyContactMessage(msg))
	}
	for _, req := range state.ServiceRequests {
		clone.ServiceRequests = append(clone.ServiceRequests, copyServiceRequest(req))
	}
	for id, service := range state.Services {
		clone.Services[id] = copyService(service)
	}
	for id, pkg := range state.Packages {
		clone.Packages[id] = copyPackage(pkg)
	}
	for id, item := range state.Portfolio {
		clone.Portfolio[id] = copyPortfolioItem(item)
	}
	for id, user := range state.Users {
		clone.Users[id] = user
	}
	for id, p := range state.Payments {
		clone.Payments[id] = copyPayment(p)
	}
	for id, inv := range state.Invoices {
		clone.Invoices[id] = copyInvoice(inv)
	}

	return clone
}

func sortByCreated[T any](items []T, created func(T) time.Time, id func(T) string) {
	sort.Slice(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return id(items[i]) < id(items[j])
	})
}
