package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"backoffice/backend/internal/domain"
	"backoffice/backend/internal/report"
)

var ErrInvalidRequest = errors.New("invalid report request")

type actorContextKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor, ok
}

// ReportSource is the read side of the document store.
type ReportSource interface {
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	ListDamagedItems(ctx context.Context) ([]domain.DamagedItem, error)
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
}

type Service struct {
	source   ReportSource
	logger   *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

type Option func(*Service)

// WithClock replaces the wall clock used for empty and bare-year anchors.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(source ReportSource, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		source:   source,
		logger:   logger,
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Report computes a fresh report for the requested period. Nothing is cached:
// every call reads the collections again.
func (s *Service) Report(ctx context.Context, req domain.ReportRequest) (domain.ReportResult, error) {
	req.Type = strings.ToLower(strings.TrimSpace(req.Type))
	req.Date = strings.TrimSpace(req.Date)
	if err := s.validate.Struct(req); err != nil {
		return domain.ReportResult{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	now := s.now().UTC()
	period, err := report.ParsePeriod(req.Type, req.Date, now)
	if err != nil {
		return domain.ReportResult{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	snap := s.snapshot(ctx)
	result := report.Build(snap, period)
	result.GeneratedAt = now.Format(time.RFC3339)

	s.logger.Debug("report generated",
		zap.String("type", req.Type),
		zap.String("anchor", result.Period.AnchorDate),
		zap.Int("sales", result.Summary.SalesCount),
	)
	return result, nil
}

// snapshot loads the three collections concurrently. A collection that
// cannot be read is reported as empty.
func (s *Service) snapshot(ctx context.Context) report.Snapshot {
	var snap report.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		invoices, err := s.source.ListInvoices(gctx)
		snap.Invoices = orEmpty(s, "invoices", invoices, err)
		return nil
	})
	g.Go(func() error {
		damaged, err := s.source.ListDamagedItems(gctx)
		snap.DamagedItems = orEmpty(s, "damagedItems", damaged, err)
		return nil
	})
	g.Go(func() error {
		expenses, err := s.source.ListExpenses(gctx)
		snap.Expenses = orEmpty(s, "expenses", expenses, err)
		return nil
	})
	_ = g.Wait()

	return snap
}

func orEmpty[T any](s *Service, collection string, records []T, err error) []T {
	if err != nil {
		s.logger.Warn("collection unavailable, reporting it as empty",
			zap.String("collection", collection),
			zap.Error(err),
		)
		return []T{}
	}
	if records == nil {
		return []T{}
	}
	return records
}
