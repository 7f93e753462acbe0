package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// CompanyIDKey is the context key for the tenant company ID
	CompanyIDKey ctxKey = "company_id"
	// ActorIDKey is the context key for the acting user's ID
	ActorIDKey ctxKey = "actor_id"
	// ActorNameKey is the context key for the acting user's display name
	ActorNameKey ctxKey = "actor_name"
)

// CompanyScope returns a GORM scope that filters by the company carried in
// the context. This must be applied to all queries for company-scoped
// entities. Without a company in context the scope matches nothing, which
// prevents accidental cross-tenant data access.
func CompanyScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		companyID, ok := ctx.Value(CompanyIDKey).(uuid.UUID)
		if !ok {
			// Fail-safe: return no results if company context missing
			return db.Where("1 = 0")
		}
		return db.Where("company_id = ?", companyID)
	}
}

// sortClause builds an ORDER BY fragment from caller-supplied sort params.
// The column must be on the repository's allowlist; anything else falls back
// to the default so request query params never reach the SQL text.
func sortClause(sortBy, sortOrder, defaultBy string, allowed map[string]bool) string {
	if !allowed[sortBy] {
		sortBy = defaultBy
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	return sortBy + " " + sortOrder
}

// WithCompany adds the company ID to context
func WithCompany(ctx context.Context, companyID uuid.UUID) context.Context {
	return context.WithValue(ctx, CompanyIDKey, companyID)
}

// GetCompanyID extracts the company ID from context
func GetCompanyID(ctx context.Context) (uuid.UUID, bool) {
	companyID, ok := ctx.Value(CompanyIDKey).(uuid.UUID)
	return companyID, ok
}

// WithActor records the acting user on the context for audit rows
func WithActor(ctx context.Context, userID uuid.UUID, name string) context.Context {
	ctx = context.WithValue(ctx, ActorIDKey, userID)
	return context.WithValue(ctx, ActorNameKey, name)
}

// GetActor extracts the acting user from context
func GetActor(ctx context.Context) (uuid.UUID, string, bool) {
	userID, ok := ctx.Value(ActorIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}
	name, _ := ctx.Value(ActorNameKey).(string)
	return userID, name, true
}
