// Package seed загружает JSON файлы каталога в хранилище. Услуги и пакеты проходят
// валидацию каталога, записи обновляются по id, поэтому повторный seed безопасен.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shiningstar/internal/app/catalog"
	"shiningstar/internal/app/ds"
	"shiningstar/internal/app/repository"
	"shiningstar/internal/app/role"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	ServicesFile  = "services.json"
	PackagesFile  = "packages.json"
	PortfolioFile = "portfolio.json"
	UsersFile     = "users.json"
)

type ServiceRecord struct {
	ID string `json:"id"`
	catalog.ServiceInput
}

type PackageRecord struct {
	ID string `json:"id"`
	catalog.PackageInput
}

type UserRecord struct {
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Password string    `json:"password"` // открытый текст или готовый bcrypt хэш
	Role     role.Role `json:"role"`
	Name     string    `json:"name"`
}

type Data struct {
	Services  []ServiceRecord
	Packages  []PackageRecord
	Portfolio []ds.PortfolioItem
	Users     []UserRecord
}

type Report struct {
	Services  int
	Packages  int
	Portfolio int
	Users     int
	Skipped   []string
}

// Load читает seed файлы из dir. Отсутствующий файл считается пустым.
func Load(dir string) (Data, error) {
	var d Data
	for name, target := range map[string]any{
		ServicesFile:  &d.Services,
		PackagesFile:  &d.Packages,
		PortfolioFile: &d.Portfolio,
		UsersFile:     &d.Users,
	} {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return Data{}, fmt.Errorf("read %s: %w", name, err)
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return Data{}, fmt.Errorf("parse %s: %w", name, err)
		}
	}
	return d, nil
}

// Apply записывает d в хранилище. Невалидные записи пропускаются и попадают в отчет,
// ошибка хранилища прерывает импорт.
func Apply(ctx context.Context, store repository.Store, d Data) (Report, error) {
	var rep Report
	now := time.Now()

	existing, err := store.ListServices(ctx, repository.ServiceFilter{})
	if err != nil {
		return rep, fmt.Errorf("load services: %w", err)
	}
	serviceIDs := make([]string, 0, len(existing)+len(d.Services))
	for _, s := range existing {
		serviceIDs = append(serviceIDs, s.ID)
	}

	for _, rec := range d.Services {
		if errs := catalog.ValidateService(rec.ServiceInput); len(errs) > 0 {
			rep.skip("service %q: %s", rec.Name.En(), errs.Error())
			continue
		}
		id := rec.ID
		if id == "" {
			id = catalog.AssignID(rec.Name.En(), catalog.IDSet(serviceIDs), now)
		}
		if err := upsertService(ctx, store, rec.ToService(id)); err != nil {
			return rep, err
		}
		serviceIDs = append(serviceIDs, id)
		rep.Services++
	}

	packages, err := store.ListPackages(ctx)
	if err != nil {
		return rep, fmt.Errorf("load packages: %w", err)
	}
	packageIDs := make([]string, 0, len(packages)+len(d.Packages))
	for _, p := range packages {
		packageIDs = append(packageIDs, p.ID)
	}

	for _, rec := range d.Packages {
		if errs := catalog.ValidatePackage(rec.PackageInput, serviceIDs); len(errs) > 0 {
			rep.skip("package %q: %s", rec.Name.En(), errs.Error())
			continue
		}
		id := rec.ID
		if id == "" {
			id = catalog.AssignID(rec.Name.En(), catalog.IDSet(packageIDs), now)
		}
		if err := upsertPackage(ctx, store, rec.ToPackage(id)); err != nil {
			return rep, err
		}
		packageIDs = append(packageIDs, id)
		rep.Packages++
	}

	for _, item := range d.Portfolio {
		if strings.TrimSpace(item.Title.En()) == "" {
			rep.skip("portfolio item %q: title.en is required", item.ID)
			continue
		}
		if item.ID == "" {
			item.ID = catalog.Slugify(item.Title.En())
		}
		if _, err := store.GetPortfolioItem(ctx, item.ID); err == nil {
			continue
		} else if !errors.Is(err, ds.ErrNotFound) {
			return rep, err
		}
		if _, err := store.CreatePortfolioItem(ctx, item); err != nil {
			return rep, fmt.Errorf("create portfolio item %s: %w", item.ID, err)
		}
		rep.Portfolio++
	}

	for _, u := range d.Users {
		created, err := createUser(ctx, store, u)
		if err != nil {
			return rep, err
		}
		if created {
			rep.Users++
		}
	}

	logrus.WithFields(logrus.Fields{
		"services":  rep.Services,
		"packages":  rep.Packages,
		"portfolio": rep.Portfolio,
		"users":     rep.Users,
		"skipped":   len(rep.Skipped),
	}).Info("seed applied")
	return rep, nil
}

func upsertService(ctx context.Context, store repository.Store, s ds.Service) error {
	current, err := store.GetService(ctx, s.ID)
	switch {
	case errors.Is(err, ds.ErrNotFound):
		_, err = store.CreateService(ctx, s)
	case err == nil:
		s.ImageURL = current.ImageURL
		_, err = store.UpdateService(ctx, s)
	}
	if err != nil {
		return fmt.Errorf("save service %s: %w", s.ID, err)
	}
	return nil
}

func upsertPackage(ctx context.Context, store repository.Store, p ds.Package) error {
	_, err := store.GetPackage(ctx, p.ID)
	switch {
	case errors.Is(err, ds.ErrNotFound):
		_, err = store.CreatePackage(ctx, p)
	case err == nil:
		_, err = store.UpdatePackage(ctx, p)
	}
	if err != nil {
		return fmt.Errorf("save package %s: %w", p.ID, err)
	}
	return nil
}

// createUser не трогает существующего пользователя
func createUser(ctx context.Context, store repository.Store, u UserRecord) (bool, error) {
	if _, err := store.GetUserByUsername(ctx, u.Username); err == nil {
		return false, nil
	} else if !errors.Is(err, ds.ErrNotFound) {
		return false, err
	}

	user, err := NewUser(u)
	if err != nil {
		return false, err
	}
	if _, err := store.CreateUser(ctx, user); err != nil {
		return false, fmt.Errorf("create user %s: %w", u.Username, err)
	}
	return true, nil
}

// NewUser хэширует пароль, если это еще не bcrypt хэш
func NewUser(u UserRecord) (ds.User, error) {
	if u.Username == "" || u.Password == "" {
		return ds.User{}, errors.New("username and password are required")
	}
	if u.Role == "" {
		u.Role = role.User
	}
	if !u.Role.Valid() {
		return ds.User{}, fmt.Errorf("unknown role %q", u.Role)
	}

	hash := u.Password
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		b, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return ds.User{}, err
		}
		hash = string(b)
	}

	return ds.User{
		Username: u.Username,
		Email:    u.Email,
		Password: hash,
		Role:     u.Role,
		Name:     u.Name,
		Active:   true,
	}, nil
}

func (r *Report) skip(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logrus.Warn("seed: skipped " + msg)
	r.Skipped = append(r.Skipped, msg)
}
