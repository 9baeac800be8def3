package pgstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/schoolkit/pkg/fixture"
)

// TxBeginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Seed upserts every record of the fixture set in one transaction.
// Records are keyed by ID, so seeding the same set twice is a no-op.
func Seed(ctx context.Context, db TxBeginner, set *fixture.Set) error {
	return pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		for _, t := range set.Tenants {
			if _, err := tx.Exec(ctx, `
				INSERT INTO tenants (id, name, slug, custom_domain, active, features, modules, created_at)
				VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)
				ON CONFLICT (id) DO UPDATE SET
					name = EXCLUDED.name, slug = EXCLUDED.slug, custom_domain = EXCLUDED.custom_domain,
					active = EXCLUDED.active, features = EXCLUDED.features, modules = EXCLUDED.modules`,
				t.ID, t.Name, normalize(t.Slug), normalize(t.CustomDomain), t.Active,
				nonNil(t.Features), t.Modules, t.CreatedAt,
			); err != nil {
				return fmt.Errorf("seed tenant %q: %w", t.Slug, err)
			}
		}

		for _, p := range set.Principals {
			if _, err := tx.Exec(ctx, `
				INSERT INTO users (id, role, tenant_id) VALUES ($1, $2, $3)
				ON CONFLICT (id) DO UPDATE SET role = EXCLUDED.role, tenant_id = EXCLUDED.tenant_id`,
				p.ID, p.Role.String(), nullable(p.HomeTenantID),
			); err != nil {
				return fmt.Errorf("seed user %s: %w", p.ID, err)
			}
		}

		for _, t := range set.Teachers {
			if _, err := tx.Exec(ctx, `
				INSERT INTO teachers (id, nik, tenant_id, user_id, name, duties, module_access, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				ON CONFLICT (id) DO UPDATE SET
					nik = EXCLUDED.nik, tenant_id = EXCLUDED.tenant_id, user_id = EXCLUDED.user_id,
					name = EXCLUDED.name, duties = EXCLUDED.duties, module_access = EXCLUDED.module_access`,
				t.ID, t.NIK, t.TenantID, nullable(t.UserID), t.Name,
				nonNil(t.Duties), nonNilMap(t.ModuleAccess), t.CreatedAt,
			); err != nil {
				return fmt.Errorf("seed teacher %q: %w", t.NIK, err)
			}
		}

		for _, m := range set.Memberships {
			if _, err := tx.Exec(ctx, `
				INSERT INTO teacher_tenants (teacher_id, tenant_id, active) VALUES ($1, $2, $3)
				ON CONFLICT (teacher_id, tenant_id) DO UPDATE SET active = EXCLUDED.active`,
				m.TeacherID, m.TenantID, m.Active,
			); err != nil {
				return fmt.Errorf("seed membership %s/%s: %w", m.TeacherID, m.TenantID, err)
			}
		}

		for _, s := range set.Students {
			if _, err := tx.Exec(ctx, `
				INSERT INTO students (id, nis, tenant_id, user_id, name, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (id) DO UPDATE SET
					nis = EXCLUDED.nis, tenant_id = EXCLUDED.tenant_id,
					user_id = EXCLUDED.user_id, name = EXCLUDED.name`,
				s.ID, s.NIS, s.TenantID, nullable(s.UserID), s.Name, s.CreatedAt,
			); err != nil {
				return fmt.Errorf("seed student %q: %w", s.NIS, err)
			}
		}

		for _, g := range set.Grants {
			if _, err := tx.Exec(ctx, `
				INSERT INTO super_admin_tenant_access (id, user_id, tenant_id, status, requested_at, approved_at, expires_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (id) DO UPDATE SET
					status = EXCLUDED.status, approved_at = EXCLUDED.approved_at, expires_at = EXCLUDED.expires_at`,
				g.ID, g.UserID, g.TenantID, string(g.Status), g.RequestedAt, g.ApprovedAt, g.ExpiresAt,
			); err != nil {
				return fmt.Errorf("seed grant %s: %w", g.ID, err)
			}
		}
		return nil
	})
}

func nullable(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilMap(m map[string][]string) map[string][]string {
	if m == nil {
		return map[string][]string{}
	}
	return m
}
