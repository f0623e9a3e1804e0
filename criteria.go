package identity

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Paging defaults for directory queries
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// UserFilter is a sparse criteria record: any unset field leaves matching
// unconstrained on that attribute.
type UserFilter struct {
	ID           *uuid.UUID `json:"id,omitempty"`
	Name         string     `json:"name,omitempty"`
	Login        string     `json:"login,omitempty"`
	Email        string     `json:"email,omitempty"`
	PasswordHash string     `json:"-"`
	IsActive     *bool      `json:"is_active,omitempty"`
	Page         int        `json:"page,omitempty"`
	PageSize     int        `json:"page_size,omitempty"`
}

// Paging normalizes pagination, falling back to page 1 and the default size
func (f *UserFilter) Paging() (page, size int) {
	page, size = DefaultPage, DefaultPageSize
	if f == nil {
		return page, size
	}
	if f.Page >= 1 {
		page = f.Page
	}
	if f.PageSize > 0 {
		size = f.PageSize
	}
	return page, size
}

// UserPredicate narrows a select query by a single optional attribute. When
// the attribute is unset it must return the query untouched, which keeps
// every predicate a pure AND narrowing and the whole set order independent.
type UserPredicate func(*UserFilter) repository.SelectCriteria

// UserPredicates is the fixed predicate set applied by ComposeUserCriteria.
// New searchable attributes are added here without touching existing ones.
var UserPredicates = []UserPredicate{
	FilterUserID,
	FilterUserName,
	FilterUserLogin,
	FilterUserEmail,
	FilterUserPasswordHash,
	FilterUserIsActive,
}

// ComposeUserCriteria folds the predicate set over the filter into a single
// criteria. It only builds a deferred query description, no I/O happens here.
func ComposeUserCriteria(f *UserFilter) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		for _, predicate := range UserPredicates {
			q = predicate(f)(q)
		}
		return q
	}
}

// FilterUserID narrows by exact id equality
func FilterUserID(f *UserFilter) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if f == nil || f.ID == nil {
			return q
		}
		return q.Where("?TableAlias.id = ?", *f.ID)
	}
}

// FilterUserName narrows by substring containment on the display name
func FilterUserName(f *UserFilter) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if f == nil || f.Name == "" {
			return q
		}
		return q.Where("?TableAlias.name LIKE ?", "%"+f.Name+"%")
	}
}

// FilterUserLogin narrows by exact login on the associated credential
// record. Users without a credential never match.
func FilterUserLogin(f *UserFilter) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if f == nil || f.Login == "" {
			return q
		}
		return q.
			Where("?TableAlias.credential_id IS NOT NULL").
			Where(`"credential"."login" = ?`, f.Login)
	}
}

// FilterUserEmail narrows by substring containment on the email
func FilterUserEmail(f *UserFilter) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if f == nil || f.Email == "" {
			return q
		}
		return q.Where("?TableAlias.email LIKE ?", "%"+f.Email+"%")
	}
}

// FilterUserPasswordHash narrows by exact digest equality on the associated
// credential record, same association requirement as the login predicate
func FilterUserPasswordHash(f *UserFilter) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if f == nil || f.PasswordHash == "" {
			return q
		}
		return q.
			Where("?TableAlias.credential_id IS NOT NULL").
			Where(`"credential"."password_hash" = ?`, f.PasswordHash)
	}
}

// FilterUserIsActive narrows by the active flag
func FilterUserIsActive(f *UserFilter) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if f == nil || f.IsActive == nil {
			return q
		}
		return q.Where("?TableAlias.is_active = ?", *f.IsActive)
	}
}

// OrderAndPaginate applies the canonical result ordering, name ascending,
// then the page window. Kept separate from the predicate set since it shapes
// the result rather than narrowing it.
func OrderAndPaginate(f *UserFilter) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		page, size := f.Paging()
		return q.
			OrderExpr("?TableAlias.name ASC").
			Limit(size).
			Offset(size * (page - 1))
	}
}
