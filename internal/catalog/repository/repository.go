// Package repository provides tenant-scoped data access for the catalogue.
package repository

import (
	"context"
	"errors"
	"time"

	"devis_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Service is a row in the services table.
type Service struct {
	ID          uuid.UUID       `db:"id"`
	BusinessID  uuid.UUID       `db:"business_id"`
	Name        string          `db:"name"`
	Description *string         `db:"description"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	DurationMin *int            `db:"duration_min"`
	Category    *string         `db:"category"`
	IsActive    bool            `db:"is_active"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// PackageItem is one resolved entry of a package, joined with its service.
type PackageItem struct {
	ServiceID   uuid.UUID       `db:"service_id"`
	ServiceName string          `db:"service_name"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Quantity    int             `db:"quantity"`
	SortOrder   int             `db:"sort_order"`
}

// Package is a row in the packages table with its resolved items.
type Package struct {
	ID            uuid.UUID       `db:"id"`
	BusinessID    uuid.UUID       `db:"business_id"`
	Name          string          `db:"name"`
	Description   *string         `db:"description"`
	DiscountType  string          `db:"discount_type"`
	DiscountValue decimal.Decimal `db:"discount_value"`
	IsActive      bool            `db:"is_active"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
	Items         []PackageItem
}

// Repository provides catalogue persistence. Every query is scoped by business_id.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// =============================================================================
// Services
// =============================================================================

// CreateService inserts a new catalogue service.
func (r *Repository) CreateService(ctx context.Context, businessID uuid.UUID, s *Service) (*Service, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO services (business_id, name, description, unit_price, duration_min, category)
		VALUES ($1, $2, $3, $4::numeric, $5, $6)
		RETURNING id, is_active, created_at, updated_at
	`, businessID, s.Name, s.Description, s.UnitPrice.String(), s.DurationMin, s.Category).
		Scan(&s.ID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.BusinessID = businessID
	return s, nil
}

// GetService fetches a service by ID within the business.
func (r *Repository) GetService(ctx context.Context, businessID, serviceID uuid.UUID) (*Service, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, business_id, name, description, unit_price::text, duration_min, category, is_active, created_at, updated_at
		FROM services
		WHERE id = $1 AND business_id = $2 AND deleted_at IS NULL
	`, serviceID, businessID)
	return scanService(row)
}

// ListServices returns the business's services, active only unless requested.
func (r *Repository) ListServices(ctx context.Context, businessID uuid.UUID, includeInactive bool) ([]Service, error) {
	query := `
		SELECT id, business_id, name, description, unit_price::text, duration_min, category, is_active, created_at, updated_at
		FROM services
		WHERE business_id = $1 AND deleted_at IS NULL
	`
	if !includeInactive {
		query += " AND is_active"
	}
	query += " ORDER BY name ASC"

	rows, err := r.pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]Service, 0)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, *svc)
	}
	return services, rows.Err()
}

// UpdateService applies partial updates to a service.
func (r *Repository) UpdateService(ctx context.Context, businessID, serviceID uuid.UUID, name, description *string, unitPrice *decimal.Decimal, durationMin *int, category *string) (*Service, error) {
	var priceText *string
	if unitPrice != nil {
		text := unitPrice.String()
		priceText = &text
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE services SET
			name = COALESCE($3, name),
			description = COALESCE($4, description),
			unit_price = COALESCE($5::numeric, unit_price),
			duration_min = COALESCE($6, duration_min),
			category = COALESCE($7, category),
			updated_at = now()
		WHERE id = $1 AND business_id = $2 AND deleted_at IS NULL
	`, serviceID, businessID, name, description, priceText, durationMin, category)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound("service not found")
	}
	return r.GetService(ctx, businessID, serviceID)
}

// SoftDeleteService deactivates a service without removing it, so quotes that
// snapshotted it keep rendering.
func (r *Repository) SoftDeleteService(ctx context.Context, businessID, serviceID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE services SET is_active = FALSE, deleted_at = now(), updated_at = now()
		WHERE id = $1 AND business_id = $2 AND deleted_at IS NULL
	`, serviceID, businessID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("service not found")
	}
	return nil
}

// =============================================================================
// Packages
// =============================================================================

// CreatePackageWithItems inserts a package and its ordered items atomically.
// Items must reference active services of the same business.
func (r *Repository) CreatePackageWithItems(ctx context.Context, businessID uuid.UUID, p *Package) (*Package, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := r.validateItemServices(ctx, tx, businessID, p.Items); err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO packages (business_id, name, description, discount_type, discount_value)
		VALUES ($1, $2, $3, $4, $5::numeric)
		RETURNING id, is_active, created_at, updated_at
	`, businessID, p.Name, p.Description, p.DiscountType, p.DiscountValue.String()).
		Scan(&p.ID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.BusinessID = businessID

	if err := insertPackageItems(ctx, tx, businessID, p.ID, p.Items); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetPackageWithItems(ctx, businessID, p.ID)
}

// GetPackageWithItems fetches a package and its resolved items.
func (r *Repository) GetPackageWithItems(ctx context.Context, businessID, packageID uuid.UUID) (*Package, error) {
	var p Package
	var discountValue string
	err := r.pool.QueryRow(ctx, `
		SELECT id, business_id, name, description, discount_type, discount_value::text, is_active, created_at, updated_at
		FROM packages
		WHERE id = $1 AND business_id = $2 AND deleted_at IS NULL
	`, packageID, businessID).
		Scan(&p.ID, &p.BusinessID, &p.Name, &p.Description, &p.DiscountType, &discountValue, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("package not found")
		}
		return nil, err
	}
	if p.DiscountValue, err = decimal.NewFromString(discountValue); err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, businessID, p.ID)
	if err != nil {
		return nil, err
	}
	p.Items = items
	return &p, nil
}

// ListPackages returns the business's packages with resolved items.
func (r *Repository) ListPackages(ctx context.Context, businessID uuid.UUID, includeInactive bool) ([]Package, error) {
	query := `
		SELECT id, business_id, name, description, discount_type, discount_value::text, is_active, created_at, updated_at
		FROM packages
		WHERE business_id = $1 AND deleted_at IS NULL
	`
	if !includeInactive {
		query += " AND is_active"
	}
	query += " ORDER BY name ASC"

	rows, err := r.pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := make([]Package, 0)
	for rows.Next() {
		var p Package
		var discountValue string
		if err := rows.Scan(&p.ID, &p.BusinessID, &p.Name, &p.Description, &p.DiscountType, &discountValue, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if p.DiscountValue, err = decimal.NewFromString(discountValue); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range packages {
		items, err := r.loadItems(ctx, businessID, packages[i].ID)
		if err != nil {
			return nil, err
		}
		packages[i].Items = items
	}
	return packages, nil
}

// UpdatePackageWithItems applies partial updates; when items are provided the
// whole item set is replaced in the same transaction.
func (r *Repository) UpdatePackageWithItems(ctx context.Context, businessID, packageID uuid.UUID, name, description, discountType *string, discountValue *decimal.Decimal, items []PackageItem) (*Package, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var valueText *string
	if discountValue != nil {
		text := discountValue.String()
		valueText = &text
	}

	tag, err := tx.Exec(ctx, `
		UPDATE packages SET
			name = COALESCE($3, name),
			description = COALESCE($4, description),
			discount_type = COALESCE($5, discount_type),
			discount_value = COALESCE($6::numeric, discount_value),
			updated_at = now()
		WHERE id = $1 AND business_id = $2 AND deleted_at IS NULL
	`, packageID, businessID, name, description, discountType, valueText)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound("package not found")
	}

	if items != nil {
		if err := r.validateItemServices(ctx, tx, businessID, items); err != nil {
			return nil, err
		}
		if _, err := tx.Exec(ctx, `
			DELETE FROM package_items WHERE package_id = $1 AND business_id = $2
		`, packageID, businessID); err != nil {
			return nil, err
		}
		if err := insertPackageItems(ctx, tx, businessID, packageID, items); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetPackageWithItems(ctx, businessID, packageID)
}

// SoftDeletePackage deactivates a package without removing it.
func (r *Repository) SoftDeletePackage(ctx context.Context, businessID, packageID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE packages SET is_active = FALSE, deleted_at = now(), updated_at = now()
		WHERE id = $1 AND business_id = $2 AND deleted_at IS NULL
	`, packageID, businessID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("package not found")
	}
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

func (r *Repository) loadItems(ctx context.Context, businessID, packageID uuid.UUID) ([]PackageItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT pi.service_id, s.name, s.unit_price::text, pi.quantity, pi.sort_order
		FROM package_items pi
		JOIN services s ON s.id = pi.service_id
		WHERE pi.package_id = $1 AND pi.business_id = $2
		ORDER BY pi.sort_order ASC
	`, packageID, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]PackageItem, 0)
	for rows.Next() {
		var item PackageItem
		var price string
		if err := rows.Scan(&item.ServiceID, &item.ServiceName, &price, &item.Quantity, &item.SortOrder); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *Repository) validateItemServices(ctx context.Context, tx pgx.Tx, businessID uuid.UUID, items []PackageItem) error {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item.ServiceID]; dup {
			continue
		}
		seen[item.ServiceID] = struct{}{}
		ids = append(ids, item.ServiceID)
	}

	var count int
	err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM services
		WHERE id = ANY($1) AND business_id = $2 AND is_active AND deleted_at IS NULL
	`, ids, businessID).Scan(&count)
	if err != nil {
		return err
	}
	if count != len(ids) {
		return apperr.NotFound("package references an unknown or inactive service")
	}
	return nil
}

func insertPackageItems(ctx context.Context, tx pgx.Tx, businessID, packageID uuid.UUID, items []PackageItem) error {
	for i, item := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO package_items (package_id, business_id, service_id, quantity, sort_order)
			VALUES ($1, $2, $3, $4, $5)
		`, packageID, businessID, item.ServiceID, item.Quantity, i); err != nil {
			return err
		}
	}
	return nil
}

func scanService(row pgx.Row) (*Service, error) {
	var s Service
	var price string
	err := row.Scan(&s.ID, &s.BusinessID, &s.Name, &s.Description, &price, &s.DurationMin, &s.Category, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("service not found")
		}
		return nil, err
	}
	if s.UnitPrice, err = decimal.NewFromString(price); err != nil {
		return nil, err
	}
	return &s, nil
}
