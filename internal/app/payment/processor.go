// Package payment - mock платежный провайдер: платежи сохраняются и помечаются оплаченными
// без обращения к шлюзу, на каждый оплаченный платеж выставляется HTML счет.
package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"shiningstar/internal/app/ds"
	"shiningstar/internal/app/quote"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidAmount  = errors.New("amount must be greater than zero")
	ErrInvalidMethod  = errors.New("invalid payment method")
	ErrAlreadyPaid    = errors.New("payment already processed")
	ErrNotRefundable  = errors.New("only succeeded payments can be refunded")
	ErrRefundTooLarge = errors.New("refund exceeds payment amount")
)

const invoiceDueDays = 30

// Store - часть репозитория, нужная процессору
type Store interface {
	CreatePayment(ctx context.Context, p ds.Payment) (*ds.Payment, error)
	GetPayment(ctx context.Context, id string) (*ds.Payment, error)
	UpdatePayment(ctx context.Context, p ds.Payment) (*ds.Payment, error)
	CreateInvoice(ctx context.Context, inv ds.Invoice) (*ds.Invoice, error)
}

type Business struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

type Processor struct {
	store    Store
	business Business
	taxRate  float64
	now      func() time.Time
}

func NewProcessor(store Store, business Business, taxRate float64) *Processor {
	return &Processor{store: store, business: business, taxRate: taxRate, now: time.Now}
}

type PaymentMethod struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Brand string `json:"brand"`
	Last4 string `json:"last4"`
	Valid bool   `json:"valid"`
}

// InvoiceRequest - данные о клиенте и работе со страницы оплаты
type InvoiceRequest struct {
	Customer      ds.Customer
	Lines         []ds.InvoiceLine
	TravelCost    float64
	DistanceMiles float64
	Discounts     float64
}

type Refund struct {
	ID        string    `json:"id"`
	PaymentID string    `json:"paymentId"`
	Amount    int64     `json:"amount"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
}

// CreatePaymentIntent сохраняет новый платеж на amount долларов
func (p *Processor) CreatePaymentIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*ds.Payment, error) {
	if math.IsNaN(amount) || !(amount > 0) {
		return nil, ErrInvalidAmount
	}
	if currency == "" {
		currency = quote.Currency
	}

	now := p.now().UTC()
	meta := make(map[string]string, len(metadata)+3)
	for k, v := range metadata {
		meta[k] = v
	}
	meta["businessName"] = p.business.Name
	meta["businessAddress"] = p.business.Address
	meta["timestamp"] = now.Format(time.RFC3339)

	intent := ds.Payment{
		ID:           fmt.Sprintf("pi_%d_%s", now.UnixMilli(), randomSuffix()),
		ClientSecret: fmt.Sprintf("pi_%d_secret_%s", now.UnixMilli(), randomSuffix()),
		Amount:       int64(math.Round(amount * 100)),
		Currency:     strings.ToLower(currency),
		Status:       ds.PaymentRequiresMethod,
		Metadata:     meta,
		CreatedAt:    now,
	}

	created, err := p.store.CreatePayment(ctx, intent)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	logrus.WithFields(logrus.Fields{"payment": created.ID, "amount": created.Amount}).Info("payment intent created")
	return created, nil
}

// ValidatePaymentMethod принимает любой непустой id как mock карту visa
func (p *Processor) ValidatePaymentMethod(methodID string) PaymentMethod {
	if strings.TrimSpace(methodID) == "" {
		return PaymentMethod{}
	}
	return PaymentMethod{ID: methodID, Type: "card", Brand: "visa", Last4: "4242", Valid: true}
}

// ProcessPayment помечает платеж оплаченным и выставляет счет
func (p *Processor) ProcessPayment(ctx context.Context, intentID, methodID string, req InvoiceRequest) (*ds.Payment, *ds.Invoice, error) {
	method := p.ValidatePaymentMethod(methodID)
	if !method.Valid {
		return nil, nil, ErrInvalidMethod
	}

	payment, err := p.store.GetPayment(ctx, intentID)
	if err != nil {
		return nil, nil, err
	}
	if payment.Status != ds.PaymentRequiresMethod {
		return nil, nil, fmt.Errorf("%w: %s is %s", ErrAlreadyPaid, payment.ID, payment.Status)
	}

	now := p.now().UTC()
	payment.Status = ds.PaymentSucceeded
	payment.PaymentMethod = method.ID
	payment.ProcessedAt = &now

	invoice, err := p.GenerateInvoice(*payment, req)
	if err != nil {
		return nil, nil, err
	}

	updated, err := p.store.UpdatePayment(ctx, *payment)
	if err != nil {
		return nil, nil, fmt.Errorf("update payment: %w", err)
	}
	saved, err := p.store.CreateInvoice(ctx, invoice)
	if err != nil {
		return nil, nil, fmt.Errorf("save invoice: %w", err)
	}

	logrus.WithFields(logrus.Fields{"payment": updated.ID, "invoice": saved.Number}).Info("payment processed")
	return updated, saved, nil
}

// ProcessRefund возвращает amount центов или весь платеж, если amount == nil
func (p *Processor) ProcessRefund(ctx context.Context, intentID string, amount *int64, reason string) (*Refund, error) {
	payment, err := p.store.GetPayment(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != ds.PaymentSucceeded {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotRefundable, payment.ID, payment.Status)
	}

	refundAmount := payment.Amount
	if amount != nil {
		if *amount <= 0 {
			return nil, ErrInvalidAmount
		}
		if *amount > payment.Amount {
			return nil, ErrRefundTooLarge
		}
		refundAmount = *amount
	}
	if reason == "" {
		reason = "requested_by_customer"
	}

	now := p.now().UTC()
	refund := &Refund{
		ID:        fmt.Sprintf("re_%d_%s", now.UnixMilli(), randomSuffix()),
		PaymentID: payment.ID,
		Amount:    refundAmount,
		Reason:    reason,
		Status:    ds.PaymentSucceeded,
		CreatedAt: now,
	}

	payment.Status = ds.PaymentRefunded
	payment.RefundID = &refund.ID
	payment.RefundAmount = &refundAmount
	payment.RefundedAt = &now
	if _, err := p.store.UpdatePayment(ctx, *payment); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}

	logrus.WithFields(logrus.Fields{"payment": payment.ID, "refund": refund.ID, "amount": refundAmount}).Info("payment refunded")
	return refund, nil
}

// CalculateTotal считает налог от subtotal + travel - discounts, все суммы округляются до центов
func (p *Processor) CalculateTotal(subtotal, travelCost, discounts float64) ds.Totals {
	serviceTotal := subtotal + travelCost - discounts
	tax := serviceTotal * p.taxRate
	total := serviceTotal + tax

	return ds.Totals{
		Subtotal:   quote.Round2(subtotal),
		TravelCost: quote.Round2(travelCost),
		Discounts:  quote.Round2(discounts),
		Tax:        quote.Round2(tax),
		Total:      quote.Round2(total),
	}
}

// GenerateInvoice собирает и формирует счет по оплаченному платежу, не сохраняя его
func (p *Processor) GenerateInvoice(payment ds.Payment, req InvoiceRequest) (ds.Invoice, error) {
	now := p.now().UTC()

	var subtotal float64
	for _, line := range req.Lines {
		subtotal += line.Total
	}

	inv := ds.Invoice{
		Number:        fmt.Sprintf("INV-%d", now.UnixMilli()),
		PaymentID:     payment.ID,
		Customer:      req.Customer,
		Lines:         append([]ds.InvoiceLine{}, req.Lines...),
		DistanceMiles: req.DistanceMiles,
		Totals:        p.CalculateTotal(subtotal, req.TravelCost, req.Discounts),
		IssuedAt:      now,
		DueAt:         now.AddDate(0, 0, invoiceDueDays),
	}

	html, err := RenderInvoice(inv, p.business, payment)
	if err != nil {
		return ds.Invoice{}, err
	}
	inv.HTML = html
	return inv, nil
}
