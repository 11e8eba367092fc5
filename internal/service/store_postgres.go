package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"notifygate/internal/domain"
	"notifygate/pkg/platform/sentinel"
)

// PostgresStore persists service records in PostgreSQL. Set-valued fields are
// stored as text arrays and rebuilt into validated sets on read.
type PostgresStore struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
}

// NewPostgresStore constructs a PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		pool:   pool,
		tracer: otel.Tracer("notifygate/service"),
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS services (
    service_id                 TEXT PRIMARY KEY,
    service_name               TEXT NOT NULL,
    organization_name          TEXT NOT NULL,
    department_name            TEXT NOT NULL,
    organization_fiscal_code   TEXT NOT NULL DEFAULT '',
    is_visible                 BOOLEAN NOT NULL DEFAULT FALSE,
    max_allowed_payment_amount BIGINT NOT NULL DEFAULT 0,
    authorized_cidrs           TEXT[] NOT NULL DEFAULT '{}',
    authorized_recipients      TEXT[] NOT NULL DEFAULT '{}',
    updated_at                 TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Migrate creates the services table when it does not exist yet.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate services table: %w", err)
	}
	return nil
}

const selectService = `
SELECT service_id, service_name, organization_name, department_name,
       organization_fiscal_code, is_visible, max_allowed_payment_amount,
       authorized_cidrs, authorized_recipients
FROM services
WHERE service_id = $1`

func (s *PostgresStore) BySubscription(ctx context.Context, subscriptionID string) (domain.ServiceRecord, error) {
	return s.find(ctx, subscriptionID)
}

func (s *PostgresStore) ByServiceID(ctx context.Context, serviceID string) (domain.ServiceRecord, error) {
	return s.find(ctx, serviceID)
}

func (s *PostgresStore) find(ctx context.Context, id string) (domain.ServiceRecord, error) {
	ctx, span := s.tracer.Start(ctx, "services.find",
		trace.WithAttributes(attribute.String("service.id", id)))
	defer span.End()

	var payload domain.ServicePayload
	err := s.pool.QueryRow(ctx, selectService, id).Scan(
		&payload.ServiceID,
		&payload.ServiceName,
		&payload.OrganizationName,
		&payload.DepartmentName,
		&payload.OrganizationFiscalCode,
		&payload.IsVisible,
		&payload.MaxAllowedPaymentAmount,
		&payload.AuthorizedCIDRs,
		&payload.AuthorizedRecipients,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ServiceRecord{}, sentinel.ErrNotFound
		}
		return domain.ServiceRecord{}, fmt.Errorf("find service %s: %w", id, err)
	}

	record, err := domain.ServiceFromPayload(payload)
	if err != nil {
		return domain.ServiceRecord{}, fmt.Errorf("decode service %s: %w", id, err)
	}
	return record, nil
}

const upsertService = `
INSERT INTO services (
    service_id, service_name, organization_name, department_name,
    organization_fiscal_code, is_visible, max_allowed_payment_amount,
    authorized_cidrs, authorized_recipients, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
ON CONFLICT (service_id) DO UPDATE SET
    service_name               = EXCLUDED.service_name,
    organization_name          = EXCLUDED.organization_name,
    department_name            = EXCLUDED.department_name,
    organization_fiscal_code   = EXCLUDED.organization_fiscal_code,
    is_visible                 = EXCLUDED.is_visible,
    max_allowed_payment_amount = EXCLUDED.max_allowed_payment_amount,
    authorized_cidrs           = EXCLUDED.authorized_cidrs,
    authorized_recipients      = EXCLUDED.authorized_recipients,
    updated_at                 = now()`

func (s *PostgresStore) Upsert(ctx context.Context, record domain.ServiceRecord) error {
	ctx, span := s.tracer.Start(ctx, "services.upsert",
		trace.WithAttributes(attribute.String("service.id", record.ServiceID)))
	defer span.End()

	payload := record.ToPayload()
	_, err := s.pool.Exec(ctx, upsertService,
		payload.ServiceID,
		payload.ServiceName,
		payload.OrganizationName,
		payload.DepartmentName,
		payload.OrganizationFiscalCode,
		payload.IsVisible,
		payload.MaxAllowedPaymentAmount,
		payload.AuthorizedCIDRs,
		payload.AuthorizedRecipients,
	)
	if err != nil {
		return fmt.Errorf("upsert service %s: %w", record.ServiceID, err)
	}
	return nil
}
