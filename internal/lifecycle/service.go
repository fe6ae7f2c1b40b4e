// Package lifecycle orchestrates the order workflow: validation, pricing,
// registration, kitchen dispatch, and durable logging.
package lifecycle

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"maitred/internal/ledger"
	"maitred/internal/menu"
	"maitred/internal/models"
	"maitred/internal/monitoring"
	"maitred/internal/notify"
	"maitred/internal/pricing"
	"maitred/internal/store"
)

// Notifier delivers kitchen notifications.
type Notifier interface {
	Send(ctx context.Context, msg notify.Message) error
}

// Ledger appends order rows to a durable log.
type Ledger interface {
	Append(ctx context.Context, row ledger.Row) error
}

// InvalidItemError reports an order request naming a code the menu cannot
// serve, either unknown or currently unavailable.
type InvalidItemError struct {
	Code string
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("invalid menu item %q", e.Code)
}

// CreateResult reports a successful order creation.
type CreateResult struct {
	OrderID      string       `json:"order_id"`
	Order        models.Order `json:"order"`
	Confirmation string       `json:"confirmation"`
}

// DispatchResult reports one kitchen dispatch attempt. The rendered body is
// always present, delivered or not.
type DispatchResult struct {
	OrderID       string `json:"order_id"`
	Recipient     string `json:"recipient"`
	Body          string `json:"body"`
	Delivered     bool   `json:"delivered"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// LogResult reports one ledger append attempt.
type LogResult struct {
	OrderID       string `json:"order_id"`
	Logged        bool   `json:"logged"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// Deps carries the collaborators of a Service.
type Deps struct {
	Catalog  *menu.Catalog
	Pricing  *pricing.Engine
	Store    *store.Store
	Notifier Notifier
	Ledger   Ledger
	Monitor  *monitoring.Monitor
	Logger   *zap.Logger

	// DispatchTimeout bounds the notifier call. Zero means 10s.
	DispatchTimeout time.Duration
	// DefaultRecipient receives kitchen notifications when the caller does
	// not name one.
	DefaultRecipient string
	// Clock supplies creation timestamps. Nil means time.Now.
	Clock func() time.Time
}

// Service runs orders through their lifecycle.
type Service struct {
	deps Deps
}

// New creates the lifecycle service.
func New(deps Deps) *Service {
	if deps.DispatchTimeout <= 0 {
		deps.DispatchTimeout = 10 * time.Second
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Service{deps: deps}
}

// Menu returns the items in the requested category. The boolean reports
// whether the category was recognized.
func (s *Service) Menu(category string) ([]models.MenuItem, bool) {
	return s.deps.Catalog.ListByCategory(category)
}

// Quote prices a sequence of item codes without creating anything.
func (s *Service) Quote(itemCodes []string) (pricing.Quote, error) {
	return s.deps.Pricing.ComputeTotal(itemCodes)
}

// CreateOrder validates, prices, and registers a new order with status
// pending. Kitchen dispatch is a separate, explicit step.
func (s *Service) CreateOrder(req models.OrderRequest) (CreateResult, error) {
	if err := req.Validate(); err != nil {
		return CreateResult{}, err
	}

	codes := make([]string, len(req.ItemCodes))
	for i, raw := range req.ItemCodes {
		code := menu.NormalizeCode(raw)
		item, ok := s.deps.Catalog.Lookup(code)
		if !ok || !item.Available {
			return CreateResult{}, &InvalidItemError{Code: raw}
		}
		codes[i] = code
	}

	quote, err := s.deps.Pricing.ComputeTotal(codes)
	if err != nil {
		return CreateResult{}, fmt.Errorf("pricing order: %w", err)
	}

	order := models.Order{
		ID:              s.deps.Store.NextIdentifier(),
		CustomerName:    req.CustomerName,
		ServiceLocation: req.ServiceLocation,
		ContactPhone:    req.ContactPhone,
		CustomerEmail:   req.CustomerEmail,
		ItemCodes:       codes,
		Customizations:  req.Customizations,
		Subtotal:        quote.Subtotal,
		Tax:             quote.Tax,
		GrandTotal:      quote.GrandTotal,
		CreatedAt:       s.deps.Clock(),
		Status:          models.StatusPending,
	}

	if err := s.deps.Store.Create(order); err != nil {
		return CreateResult{}, fmt.Errorf("registering order %s: %w", order.ID, err)
	}

	s.deps.Monitor.RecordOrderCreated()
	s.deps.Logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("customer", order.CustomerName),
		zap.String("grand_total", order.GrandTotal.StringFixed(2)))

	return CreateResult{
		OrderID:      order.ID,
		Order:        order.Clone(),
		Confirmation: renderConfirmation(order),
	}, nil
}

// Dispatch renders the kitchen notification for an order and hands it to the
// notifier. Transport failure is reported inside the result, never as an
// error: the order stays pending and dispatch can be retried. The only error
// return is an unknown order id.
func (s *Service) Dispatch(ctx context.Context, orderID, recipient string) (DispatchResult, error) {
	order, err := s.deps.Store.Get(orderID)
	if err != nil {
		return DispatchResult{}, err
	}

	if recipient == "" {
		recipient = s.deps.DefaultRecipient
	}

	body := s.renderKitchenBody(order)
	result := DispatchResult{OrderID: order.ID, Recipient: recipient, Body: body}

	msg := notify.Message{
		OrderID: order.ID,
		To:      recipient,
		Subject: renderSubject(order),
		Body:    body,
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.deps.DispatchTimeout)
	defer cancel()

	if err := s.deps.Notifier.Send(sendCtx, msg); err != nil {
		s.deps.Monitor.RecordDispatch(false)
		s.deps.Logger.Warn("kitchen dispatch failed",
			zap.String("order_id", order.ID),
			zap.String("recipient", recipient),
			zap.Error(err))
		result.FailureReason = err.Error()
		return result, nil
	}

	result.Delivered = true
	s.deps.Monitor.RecordDispatch(true)

	if order.Status == models.StatusPending {
		if err := s.deps.Store.SetStatus(order.ID, models.StatusSentToKitchen); err != nil {
			// Lost a race with a concurrent dispatch; the delivery itself
			// still happened.
			s.deps.Logger.Warn("status transition failed",
				zap.String("order_id", order.ID),
				zap.Error(err))
		}
	}

	s.deps.Logger.Info("order dispatched",
		zap.String("order_id", order.ID),
		zap.String("recipient", recipient))
	return result, nil
}

// Log renders the ledger row for an order and appends it. Append failure is
// reported inside the result and is independent of dispatch state. The only
// error return is an unknown order id.
func (s *Service) Log(ctx context.Context, orderID string) (LogResult, error) {
	order, err := s.deps.Store.Get(orderID)
	if err != nil {
		return LogResult{}, err
	}

	result := LogResult{OrderID: order.ID}

	if err := s.deps.Ledger.Append(ctx, s.renderLedgerRow(order)); err != nil {
		s.deps.Monitor.RecordLedgerAppend(false)
		s.deps.Logger.Warn("ledger append failed",
			zap.String("order_id", order.ID),
			zap.Error(err))
		result.FailureReason = err.Error()
		return result, nil
	}

	result.Logged = true
	s.deps.Monitor.RecordLedgerAppend(true)
	s.deps.Logger.Info("order logged", zap.String("order_id", order.ID))
	return result, nil
}

// Status returns the stored order record.
func (s *Service) Status(orderID string) (models.Order, error) {
	return s.deps.Store.Get(orderID)
}

// Orders lists every order, ordered by identifier.
func (s *Service) Orders() []models.Order {
	return s.deps.Store.List()
}
