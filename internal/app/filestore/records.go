package filestore

import (
	"context"
	"strconv"
	"strings"

	"shiningstar/internal/app/ds"
)

func (r *FileRepository) GetUserByID(_ context.Context, id uint) (*ds.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.state.Users[id]
	if !ok {
		return nil, notFound("user", strconv.FormatUint(uint64(id), 10))
	}
	return &user, nil
}

func (r *FileRepository) GetUserByUsername(_ context.Context, username string) (*ds.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.state.Users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, notFound("user", username)
}

func (r *FileRepository) CreateUser(_ context.Context, user ds.User) (*ds.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.state.Users {
		if existing.Username == user.Username || strings.EqualFold(existing.Email, user.Email) {
			return nil, conflict("user", user.Username)
		}
	}
	user.ID = r.nextIDLocked()
	user.CreatedAt = r.now().UTC()
	r.state.Users[user.ID] = user

	if err := r.persistLocked(); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *FileRepository) CreateContactMessage(_ context.Context, msg ds.ContactMessage) (*ds.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg.ID = r.nextIDLocked()
	msg.CreatedAt = r.now().UTC()
	r.state.ContactMessages = append(r.state.ContactMessages, msg)

	if err := r.persistLocked(); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListContactMessages возвращает сообщения, новые первыми
func (r *FileRepository) ListContactMessages(_ context.Context) ([]ds.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ds.ContactMessage, 0, len(r.state.ContactMessages))
	for i := len(r.state.ContactMessages) - 1; i >= 0; i-- {
		out = append(out, copyContactMessage(r.state.ContactMessages[i]))
	}
	return out, nil
}

func (r *FileRepository) CreateServiceRequest(_ context.Context, req ds.ServiceRequest) (*ds.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req.ID = r.nextIDLocked()
	req.CreatedAt = r.now().UTC()
	r.state.ServiceRequests = append(r.state.ServiceRequests, req)

	if err := r.persistLocked(); err != nil {
		return nil, err
	}
	return &req, nil
}

// ListServiceRequests возвращает заявки, новые первыми
func (r *FileRepository) ListServiceRequests(_ context.Context) ([]ds.ServiceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ds.ServiceRequest, 0, len(r.state.ServiceRequests))
	for i := len(r.state.ServiceRequests) - 1; i >= 0; i-- {
		out = append(out, copyServiceRequest(r.state.ServiceRequests[i]))
	}
	return out, nil
}

func (r *FileRepository) CreatePayment(_ context.Context, p ds.Payment) (*ds.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.state.Payments[p.ID]; exists {
		return nil, conflict("payment", p.ID)
	}
	p = copyPayment(p)
	r.state.Payments[p.ID] = p

	if err := r.persistLocked(); err != nil {
		return nil, err
	}
	out := copyPayment(p)
	return &out, nil
}

func (r *FileRepository) GetPayment(_ context.Context, id string) (*ds.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.state.Payments[id]
	if !ok {
		return nil, notFound("payment", id)
	}
	p = copyPayment(p)
	return &p, nil
}

func (r *FileRepository) UpdatePayment(_ context.Context, p ds.Payment) (*ds.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.state.Payments[p.ID]
	if !ok {
		return nil, notFound("payment", p.ID)
	}
	p.CreatedAt = existing.CreatedAt
	p = copyPayment(p)
	r.state.Payments[p.ID] = p

	if err := r.persistLocked(); err != nil {
		return nil, err
	}
	out := copyPayment(p)
	return &out, nil
}

func (r *FileRepository) CreateInvoice(_ context.Context, inv ds.Invoice) (*ds.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.state.Invoices[inv.Number]; exists {
		return nil, conflict("invoice", inv.Number)
	}
	inv = copyInvoice(inv)
	r.state.Invoices[inv.Number] = inv

	if err := r.persistLocked(); err != nil {
		return nil, err
	}
	out := copyInvoice(inv)
	return &out, nil
}

func (r *FileRepository) GetInvoice(_ context.Context, number string) (*ds.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.state.Invoices[number]
	if !ok {
		return nil, notFound("invoice", number)
	}
	inv = copyInvoice(inv)
	return &inv, nil
}
