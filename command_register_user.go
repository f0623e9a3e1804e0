package identity

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// RegisterUserMessage carries everything needed to create a user with an
// optional credential and notes record
type RegisterUserMessage struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Age       *int    `json:"age"`
	Address   string  `json:"address"`
	Login     string  `json:"login"`
	Password  string  `json:"password"`
	Profile   Profile `json:"profile"`
	Interests string  `json:"interests"`
	Feelings  string  `json:"feelings"`
	OtherInfo string  `json:"other_info"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

type RegisterUserHandler struct {
	repo RepositoryManager
}

func NewRegisterUserHandler(repo RepositoryManager) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) error {
	select {
	case <-ctx.Done():
		return errors.Wrap(
			ctx.Err(),
			errors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) error {
	if strings.TrimSpace(event.Email) == "" {
		return errors.New("email is required", errors.CategoryBadInput)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	record := &User{
		Name:     event.Name,
		Email:    event.Email,
		Age:      event.Age,
		Address:  event.Address,
		IsActive: true,
	}

	if event.Login != "" {
		hash, err := HashSecret(event.Password)
		if err != nil {
			return errors.Wrap(err, errors.CategoryValidation, "invalid password provided")
		}

		profile := ProfileUser
		if event.Profile.IsValid() {
			profile = event.Profile
		}

		record.Credential = &Credential{
			Login:        event.Login,
			PasswordHash: hash,
			Profile:      profile,
		}
	}

	if event.Interests != "" || event.Feelings != "" || event.OtherInfo != "" {
		record.Notes = &ProfileNotes{
			Interests: event.Interests,
			Feelings:  event.Feelings,
			OtherInfo: event.OtherInfo,
		}
	}

	return h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := h.repo.Users().RegisterTx(ctx, tx, record)
		return err
	})
}
