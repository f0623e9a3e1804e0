package identity

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the directory store. It honors the composed predicate set
// exactly, resolves the credential and notes associations eagerly, and
// applies ordering and pagination deterministically.
type Users interface {
	repository.Repository[*User]

	FindByFilter(ctx context.Context, filter *UserFilter) ([]*User, error)
	FindByFilterTx(ctx context.Context, tx bun.IDB, filter *UserFilter) ([]*User, error)
	CountByFilter(ctx context.Context, filter *UserFilter) (int, error)
	CountByFilterTx(ctx context.Context, tx bun.IDB, filter *UserFilter) (int, error)
	FindOneByCredentials(ctx context.Context, filter *UserFilter) (*User, error)
	FindOneByCredentialsTx(ctx context.Context, tx bun.IDB, filter *UserFilter) (*User, error)

	GetWithRelations(ctx context.Context, id uuid.UUID) (*User, error)
	GetWithRelationsTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*User, error)

	Register(ctx context.Context, record *User) (*User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
	UpdateProfile(ctx context.Context, record *User) (*User, error)
	UpdateProfileTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
	Remove(ctx context.Context, id uuid.UUID) error
	RemoveTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) FindByFilter(ctx context.Context, filter *UserFilter) ([]*User, error) {
	return a.FindByFilterTx(ctx, a.db, filter)
}

func (a *users) FindByFilterTx(ctx context.Context, tx bun.IDB, filter *UserFilter) ([]*User, error) {
	records := []*User{}

	err := tx.NewSelect().
		Model(&records).
		Relation("Credential").
		Relation("Notes").
		Apply(ComposeUserCriteria(filter)).
		Apply(OrderAndPaginate(filter)).
		Scan(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to query users by filter")
	}

	return records, nil
}

func (a *users) CountByFilter(ctx context.Context, filter *UserFilter) (int, error) {
	return a.CountByFilterTx(ctx, a.db, filter)
}

func (a *users) CountByFilterTx(ctx context.Context, tx bun.IDB, filter *UserFilter) (int, error) {
	// Notes are not referenced by any predicate, only the credential join
	// is needed for a correct count.
	total, err := tx.NewSelect().
		Model((*User)(nil)).
		Relation("Credential").
		Apply(ComposeUserCriteria(filter)).
		Count(ctx)

	if err != nil {
		return 0, errors.Wrap(err, errors.CategoryInternal, "failed to count users by filter")
	}

	return total, nil
}

func (a *users) FindOneByCredentials(ctx context.Context, filter *UserFilter) (*User, error) {
	return a.FindOneByCredentialsTx(ctx, a.db, filter)
}

// FindOneByCredentialsTx resolves the single user matching a login plus
// password digest pair. Zero matches and more than one match are reported
// the same way so callers never learn whether the login exists.
func (a *users) FindOneByCredentialsTx(ctx context.Context, tx bun.IDB, filter *UserFilter) (*User, error) {
	if filter == nil || filter.Login == "" || filter.PasswordHash == "" {
		return nil, ErrInvalidCredentialsInput
	}

	records := []*User{}

	err := tx.NewSelect().
		Model(&records).
		Relation("Credential").
		Apply(ComposeUserCriteria(filter)).
		Limit(2).
		Scan(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to look up credentials")
	}

	if len(records) != 1 {
		return nil, ErrLoginNotRegistered
	}

	return records[0], nil
}

func (a *users) GetWithRelations(ctx context.Context, id uuid.UUID) (*User, error) {
	return a.GetWithRelationsTx(ctx, a.db, id)
}

func (a *users) GetWithRelationsTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*User, error) {
	record := &User{}

	err := tx.NewSelect().
		Model(record).
		Relation("Credential").
		Relation("Notes").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrUserNotRegistered
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to get user")
	}

	return record, nil
}

func (a *users) Register(ctx context.Context, record *User) (*User, error) {
	return a.RegisterTx(ctx, a.db, record)
}

// RegisterTx persists a new user together with its owned credential and
// notes records. Callers are expected to have hashed the password already.
func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	prepareUserDefaults(record)

	if record.Credential != nil {
		if _, err := tx.NewInsert().Model(record.Credential).Exec(ctx); err != nil {
			return nil, errors.Wrap(err, errors.CategoryConflict, "could not create credential")
		}
		record.CredentialID = &record.Credential.ID
	}

	record, err := a.Repository.CreateTx(ctx, tx, record)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConflict, "could not create user")
	}

	if record.Notes != nil {
		record.Notes.UserID = record.ID
		if _, err := tx.NewInsert().Model(record.Notes).Exec(ctx); err != nil {
			return nil, errors.Wrap(err, errors.CategoryConflict, "could not create profile notes")
		}
	}

	return record, nil
}

func (a *users) UpdateProfile(ctx context.Context, record *User) (*User, error) {
	return a.UpdateProfileTx(ctx, a.db, record)
}

// UpdateProfileTx applies mutable profile fields onto the stored row,
// cascading into the owned notes record and a credential login change.
// Password and profile mutations do not travel through this path.
func (a *users) UpdateProfileTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	existing, err := a.GetWithRelationsTx(ctx, tx, record.ID)
	if err != nil {
		return nil, err
	}

	existing.Name = record.Name
	existing.Email = record.Email
	existing.Age = record.Age
	existing.Address = record.Address
	existing.IsActive = record.IsActive

	if _, err := tx.NewUpdate().Model(existing).WherePK().Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update user")
	}

	if record.Notes != nil {
		if existing.Notes == nil {
			existing.Notes = &ProfileNotes{
				ID:     uuid.New(),
				UserID: existing.ID,
			}
			existing.Notes.Interests = record.Notes.Interests
			existing.Notes.Feelings = record.Notes.Feelings
			existing.Notes.OtherInfo = record.Notes.OtherInfo
			if _, err := tx.NewInsert().Model(existing.Notes).Exec(ctx); err != nil {
				return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create profile notes")
			}
		} else {
			existing.Notes.Interests = record.Notes.Interests
			existing.Notes.Feelings = record.Notes.Feelings
			existing.Notes.OtherInfo = record.Notes.OtherInfo
			if _, err := tx.NewUpdate().Model(existing.Notes).WherePK().Exec(ctx); err != nil {
				return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update profile notes")
			}
		}
	}

	if existing.Credential != nil && record.Credential != nil &&
		record.Credential.Login != "" && existing.Credential.Login != record.Credential.Login {
		existing.Credential.Login = record.Credential.Login
		if _, err := tx.NewUpdate().Model(existing.Credential).WherePK().Exec(ctx); err != nil {
			return nil, errors.Wrap(err, errors.CategoryConflict, "failed to update credential login")
		}
	}

	return existing, nil
}

func (a *users) Remove(ctx context.Context, id uuid.UUID) error {
	return a.RemoveTx(ctx, a.db, id)
}

// RemoveTx deletes the user and its owned notes record. The credential row
// is left behind, matching the weak reference semantics of the association.
func (a *users) RemoveTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	if _, err := a.GetWithRelationsTx(ctx, tx, id); err != nil {
		return err
	}

	if _, err := tx.NewDelete().
		Model((*ProfileNotes)(nil)).
		Where("?TableAlias.user_id = ?", id).
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete profile notes")
	}

	if _, err := tx.NewDelete().
		Model((*User)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete user")
	}

	return nil
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		if id, err := hashid.NewUUID(record.Email); err == nil {
			record.ID = id
		} else {
			record.ID = uuid.New()
		}
	}

	if record.Credential != nil {
		if record.Credential.ID == uuid.Nil {
			record.Credential.ID = uuid.New()
		}
		if record.Credential.Profile == "" {
			record.Credential.Profile = ProfileUser
		}
	}

	if record.Notes != nil && record.Notes.ID == uuid.Nil {
		record.Notes.ID = uuid.New()
	}
}
