package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tabsplit/internal/cache"
	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/metrics"
	"github.com/mmynk/tabsplit/internal/middleware"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/rpc"
	"github.com/mmynk/tabsplit/internal/storage"
)

// DefaultPreviewTTL is how long a cached preview stays valid.
const DefaultPreviewTTL = time.Minute

// SplitService implements the Connect SplitService
type SplitService struct {
	store      storage.Store
	previews   cache.PreviewCache
	metrics    *metrics.Metrics
	previewTTL time.Duration
}

var _ rpc.SplitServiceHandler = (*SplitService)(nil)

// SplitOption configures a SplitService.
type SplitOption func(*SplitService)

// WithPreviewCache caches previews of stored orders for ttl.
func WithPreviewCache(c cache.PreviewCache, ttl time.Duration) SplitOption {
	return func(s *SplitService) {
		s.previews = c
		if ttl > 0 {
			s.previewTTL = ttl
		}
	}
}

// WithMetrics records calculations and payments in m.
func WithMetrics(m *metrics.Metrics) SplitOption {
	return func(s *SplitService) {
		s.metrics = m
	}
}

// NewSplitService creates a new SplitService with the given storage backend.
func NewSplitService(store storage.Store, opts ...SplitOption) *SplitService {
	s := &SplitService{
		store:      store,
		previews:   cache.NoopPreviewCache{},
		previewTTL: DefaultPreviewTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// calculate runs the calculator for an order. A config that cannot be
// decoded yields an invalid result, like any other validation failure.
func (s *SplitService) calculate(order *models.Order, sc rpc.SplitConfig, simplified bool) calculator.Result {
	cfg, err := sc.Decode()
	if err != nil {
		s.metrics.ObserveCalculation(sc.Method, false)
		return calculator.Result{
			Method:       calculator.Method(sc.Method),
			Participants: []calculator.Participant{},
			Error:        err.Error(),
		}
	}

	var opts []calculator.Option
	if simplified {
		opts = append(opts, calculator.WithMethods(calculator.Simplified...))
	}
	calc := calculator.New(toCalculatorItems(order.Items), order.Subtotal, order.Tax, order.Tip, opts...)
	result := calc.Calculate(cfg)
	s.metrics.ObserveCalculation(string(cfg.Method()), result.Valid)

	slog.Debug("Split calculated",
		"order_id", order.ID,
		"method", cfg.Method(),
		"valid", result.Valid,
		"participants", len(result.Participants),
		"total", result.GrandTotal().String(),
	)
	if !result.Valid {
		slog.Info("Split rejected", "order_id", order.ID, "method", cfg.Method(), "error", result.Error)
	}
	return result
}

// previewKey covers both the order and everything that changes the result.
func previewKey(orderID string, sc rpc.SplitConfig, simplified bool) string {
	return cache.PreviewKey(orderID+":"+strconv.FormatBool(simplified), sc.Fingerprint())
}

// PreviewSplit computes a split without recording anything.
func (s *SplitService) PreviewSplit(ctx context.Context, req *connect.Request[rpc.PreviewSplitRequest]) (*connect.Response[rpc.PreviewSplitResponse], error) {
	if middleware.GetUserID(ctx) == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}

	var order *models.Order
	if req.Msg.OrderID == "" {
		// Ad-hoc order, e.g. a tab not rung up in this system.
		if err := validateItems(req.Msg.Items); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		order = &models.Order{
			Items:    toModelItems(req.Msg.Items),
			Subtotal: req.Msg.Subtotal,
			Tax:      req.Msg.Tax,
			Tip:      req.Msg.Tip,
		}
		for i := range order.Items {
			if order.Items[i].ID == "" {
				order.Items[i].ID = fmt.Sprintf("item-%d", i+1)
			}
		}
		if order.Subtotal == 0 {
			order.Subtotal = order.ItemsTotal()
		}
		result := s.calculate(order, req.Msg.Config, req.Msg.Simplified)
		return connect.NewResponse(&rpc.PreviewSplitResponse{Result: result}), nil
	}

	key := previewKey(req.Msg.OrderID, req.Msg.Config, req.Msg.Simplified)
	cached, ok, err := s.previews.Get(ctx, key)
	if err != nil {
		slog.Warn("Preview cache read failed", "order_id", req.Msg.OrderID, "error", err)
	}
	s.metrics.ObserveCacheLookup(ok)
	if ok {
		return connect.NewResponse(&rpc.PreviewSplitResponse{Result: *cached, Cached: true}), nil
	}

	order, err = loadOrder(ctx, s.store, req.Msg.OrderID)
	if err != nil {
		return nil, err
	}

	result := s.calculate(order, req.Msg.Config, req.Msg.Simplified)
	if err := s.previews.Set(ctx, key, &result, s.previewTTL); err != nil {
		slog.Warn("Preview cache write failed", "order_id", order.ID, "error", err)
	}

	return connect.NewResponse(&rpc.PreviewSplitResponse{Result: result}), nil
}

// ConfirmSplit recalculates the split and records one pending payment per
// participant. The order is closed to further splits.
func (s *SplitService) ConfirmSplit(ctx context.Context, req *connect.Request[rpc.ConfirmSplitRequest]) (*connect.Response[rpc.ConfirmSplitResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}

	order, err := loadOrder(ctx, s.store, req.Msg.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderOpen {
		return nil, connect.NewError(connect.CodeFailedPrecondition, storage.ErrOrderClosed)
	}

	result := s.calculate(order, req.Msg.Config, false)
	if !result.Valid {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New(result.Error))
	}

	payments := toPayments(result, userID)
	if err := s.store.RecordPayments(ctx, order.ID, payments); err != nil {
		if errors.Is(err, storage.ErrOrderClosed) {
			return nil, connect.NewError(connect.CodeFailedPrecondition, err)
		}
		slog.Error("RecordPayments failed", "order_id", order.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.metrics.AddPayments(len(payments))
	if err := s.previews.Invalidate(ctx, order.ID); err != nil {
		slog.Warn("Preview cache invalidation failed", "order_id", order.ID, "error", err)
	}

	slog.Info("Split confirmed",
		"order_id", order.ID,
		"method", result.Method,
		"payments", len(payments),
		"total", result.GrandTotal().String(),
		"user_id", userID,
	)
	return connect.NewResponse(&rpc.ConfirmSplitResponse{
		Result:   result,
		Payments: toProtoPayments(payments),
	}), nil
}

// ListPayments returns the payments recorded for an order.
func (s *SplitService) ListPayments(ctx context.Context, req *connect.Request[rpc.ListPaymentsRequest]) (*connect.Response[rpc.ListPaymentsResponse], error) {
	order, err := loadOrder(ctx, s.store, req.Msg.OrderID)
	if err != nil {
		return nil, err
	}

	payments, err := s.store.ListPayments(ctx, order.ID)
	if err != nil {
		slog.Error("ListPayments failed", "order_id", order.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&rpc.ListPaymentsResponse{Payments: toProtoPayments(payments)}), nil
}
