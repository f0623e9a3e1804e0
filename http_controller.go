package identity

import (
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// RouteRegistrar captures the router methods used by the controller.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// HTTPController exposes the authentication and user directory operations
// as a JSON API
type HTTPController struct {
	Debug     bool
	Logger    Logger
	Auther    Authenticator
	Directory *Directory
}

type HTTPControllerOption func(*HTTPController) *HTTPController

func NewHTTPController(opts ...HTTPControllerOption) *HTTPController {
	c := &HTTPController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}

func WithControllerAuthenticator(auther Authenticator) HTTPControllerOption {
	return func(c *HTTPController) *HTTPController {
		c.Auther = auther
		return c
	}
}

func WithControllerDirectory(directory *Directory) HTTPControllerOption {
	return func(c *HTTPController) *HTTPController {
		c.Directory = directory
		return c
	}
}

func WithControllerLogger(logger Logger) HTTPControllerOption {
	return func(c *HTTPController) *HTTPController {
		c.Logger = logger
		return c
	}
}

func WithControllerDebug(debug bool) HTTPControllerOption {
	return func(c *HTTPController) *HTTPController {
		c.Debug = debug
		return c
	}
}

// RegisterRoutes wires the controller routes
func (c *HTTPController) RegisterRoutes(group RouteRegistrar) {
	group.Post("/auth/login", c.AuthenticatePost)
	group.Get("/users", c.UsersList)
	group.Post("/users", c.UserSave)
	group.Get("/users/:id", c.UserShow)
	group.Delete("/users/:id", c.UserDelete)
}

// LoginRequest is the authentication payload
type LoginRequest struct {
	Login    string `json:"login" form:"login"`
	Password string `json:"password" form:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Login, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (c *HTTPController) AuthenticatePost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("authenticate parse payload", "error", err)
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"error": "failed to parse payload",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"error":      ErrInvalidCredentialsInput.Message,
			"code":       ErrInvalidCredentialsInput.TextCode,
			"validation": formatValidationErrors(err),
		})
	}

	resp, err := c.Auther.Authenticate(ctx.Context(), payload.Login, payload.Password)
	if err != nil {
		return c.renderError(ctx, err)
	}

	if c.Debug {
		fmt.Println(print.MaybePrettyJSON(resp))
	}

	return ctx.JSON(fiber.StatusOK, resp)
}

func (c *HTTPController) UsersList(ctx router.Context) error {
	filter, err := filterFromQuery(ctx)
	if err != nil {
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"error": err.Error(),
		})
	}

	page, err := c.Directory.Query(ctx.Context(), filter)
	if err != nil {
		return c.renderError(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, page)
}

func (c *HTTPController) UserShow(ctx router.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"error": "invalid user id",
		})
	}

	user, err := c.Directory.GetByID(ctx.Context(), id)
	if err != nil {
		return c.renderError(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, user)
}

// UserSavePayload is the manage-user payload: create when id is empty,
// update otherwise
type UserSavePayload struct {
	ID        string `json:"id" form:"id"`
	Name      string `json:"name" form:"name"`
	Email     string `json:"email" form:"email"`
	Age       *int   `json:"age" form:"age"`
	Address   string `json:"address" form:"address"`
	IsActive  bool   `json:"is_active" form:"is_active"`
	Login     string `json:"login" form:"login"`
	Password  string `json:"password" form:"password"`
	Profile   string `json:"profile" form:"profile"`
	Interests string `json:"interests" form:"interests"`
	Feelings  string `json:"feelings" form:"feelings"`
	OtherInfo string `json:"other_info" form:"other_info"`
}

// Validate will run validation rules
func (r UserSavePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 150)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 200), is.Email),
		validation.Field(&r.Address, validation.Length(0, 300)),
	)
}

func (r UserSavePayload) toUser() (*User, error) {
	record := &User{
		Name:     r.Name,
		Email:    r.Email,
		Age:      r.Age,
		Address:  r.Address,
		IsActive: r.IsActive,
	}

	if r.ID != "" {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, errors.New("invalid user id", errors.CategoryBadInput)
		}
		record.ID = id
	}

	if r.Login != "" {
		profile := ProfileUser
		if p, ok := ParseProfile(r.Profile); ok {
			profile = p
		}
		record.Credential = &Credential{
			Login:   r.Login,
			Profile: profile,
		}
	}

	if r.Interests != "" || r.Feelings != "" || r.OtherInfo != "" {
		record.Notes = &ProfileNotes{
			Interests: r.Interests,
			Feelings:  r.Feelings,
			OtherInfo: r.OtherInfo,
		}
	}

	return record, nil
}

func (c *HTTPController) UserSave(ctx router.Context) error {
	payload := new(UserSavePayload)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("user save parse payload", "error", err)
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"error": "failed to parse payload",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"validation": formatValidationErrors(err),
		})
	}

	record, err := payload.toUser()
	if err != nil {
		return c.renderError(ctx, err)
	}

	saved, err := c.Directory.Save(ctx.Context(), record, payload.Password)
	if err != nil {
		return c.renderError(ctx, err)
	}

	if c.Debug {
		fmt.Println(print.MaybePrettyJSON(saved))
	}

	return ctx.JSON(fiber.StatusOK, saved)
}

func (c *HTTPController) UserDelete(ctx router.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"error": "invalid user id",
		})
	}

	if err := c.Directory.Remove(ctx.Context(), id); err != nil {
		return c.renderError(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, map[string]any{
		"deleted": true,
	})
}

// renderError maps structured error categories onto HTTP status codes,
// surfacing only the stable code and the human message
func (c *HTTPController) renderError(ctx router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "unexpected error")
	}

	status := fiber.StatusInternalServerError
	switch richErr.Category {
	case errors.CategoryAuth, errors.CategoryAuthz:
		status = fiber.StatusUnauthorized
	case errors.CategoryValidation, errors.CategoryBadInput:
		status = fiber.StatusBadRequest
	case errors.CategoryNotFound:
		status = fiber.StatusNotFound
	case errors.CategoryConflict:
		status = fiber.StatusConflict
	}

	if status == fiber.StatusInternalServerError {
		c.Logger.Error("controller error", "error", err)
	}

	return ctx.JSON(status, map[string]any{
		"error": richErr.Message,
		"code":  richErr.TextCode,
	})
}

func filterFromQuery(ctx router.Context) (*UserFilter, error) {
	filter := &UserFilter{
		Name:  ctx.Query("name"),
		Login: ctx.Query("login"),
		Email: ctx.Query("email"),
	}

	if raw := ctx.Query("id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid id filter: %w", err)
		}
		filter.ID = &id
	}

	if raw := ctx.Query("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid is_active filter: %w", err)
		}
		filter.IsActive = &active
	}

	if raw := ctx.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid page: %w", err)
		}
		filter.Page = page
	}

	if raw := ctx.Query("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid page_size: %w", err)
		}
		filter.PageSize = size
	}

	return filter, nil
}

func formatValidationErrors(err error) map[string]string {
	out := map[string]string{}

	if verrs, ok := err.(validation.Errors); ok {
		for field, ferr := range verrs {
			out[field] = ferr.Error()
		}
		return out
	}

	out["payload"] = err.Error()
	return out
}
