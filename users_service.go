package identity

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserPage is the paged projection returned by directory queries
type UserPage struct {
	Items    []*User `json:"items"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	Total    int     `json:"total"`
}

// Directory exposes the filtered user lookups and the manage-user flow on
// top of the repository manager
type Directory struct {
	repo   RepositoryManager
	logger Logger
}

func NewDirectory(repo RepositoryManager) *Directory {
	return &Directory{
		repo:   repo,
		logger: defLogger{},
	}
}

func (d *Directory) WithLogger(logger Logger) *Directory {
	d.logger = logger
	return d
}

// Query narrows the directory by the sparse filter and returns one page of
// results plus the total match count
func (d *Directory) Query(ctx context.Context, filter *UserFilter) (*UserPage, error) {
	items, err := d.repo.Users().FindByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := d.repo.Users().CountByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	page, size := filter.Paging()

	return &UserPage{
		Items:    items,
		Page:     page,
		PageSize: size,
		Total:    total,
	}, nil
}

// GetByID resolves a single user with its credential and notes records
func (d *Directory) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return d.repo.Users().GetWithRelations(ctx, id)
}

// Save decides between register and update by the presence of an id. On
// registration a non-empty password is hashed into the credential record.
func (d *Directory) Save(ctx context.Context, record *User, password string) (*User, error) {
	if record == nil {
		return nil, errors.New("user record is required", errors.CategoryBadInput)
	}

	if record.ID != uuid.Nil {
		var updated *User
		err := d.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			var txErr error
			updated, txErr = d.repo.Users().UpdateProfileTx(ctx, tx, record)
			return txErr
		})
		if err != nil {
			return nil, err
		}
		return updated, nil
	}

	if record.Credential != nil && password != "" {
		digest, err := HashSecret(password)
		if err != nil {
			return nil, err
		}
		record.Credential.PasswordHash = digest
	}

	var saved *User
	err := d.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		saved, txErr = d.repo.Users().RegisterTx(ctx, tx, record)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// Remove deletes the user and its owned notes record
func (d *Directory) Remove(ctx context.Context, id uuid.UUID) error {
	return d.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return d.repo.Users().RemoveTx(ctx, tx, id)
	})
}
