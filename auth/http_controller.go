package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// RegisterAuthRoutes mounts the authentication endpoints on the given router
// group. Logout and me sit behind the controller's protected middleware.
func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Register, controller.RegistrationCreate).
		SetName("auth.register.post")

	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("auth.login.post")

	app.Post(controller.Routes.Refresh, controller.RefreshPost).
		SetName("auth.refresh.post")

	app.Post(controller.Routes.Logout, controller.LogOut, controller.Protected).
		SetName("auth.logout.post")

	app.Get(controller.Routes.Me, controller.MeShow, controller.Protected).
		SetName("auth.me.get")
}

type AuthControllerRoutes struct {
	Register string
	Login    string
	Refresh  string
	Logout   string
	Me       string
}

type AuthController struct {
	Debug      bool
	Logger     Logger
	Repo       RepositoryManager
	Auther     *Auther
	Routes     *AuthControllerRoutes
	Protected  router.MiddlewareFunc
	ContextKey string
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:     defLogger{},
		ContextKey: DefaultContextKey,
		Routes: &AuthControllerRoutes{
			Register: "/register",
			Login:    "/login",
			Refresh:  "/refresh",
			Logout:   "/logout",
			Me:       "/me",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Auther in auth controller...")
	}

	if c.Protected == nil {
		panic("Missing protected middleware in auth controller...")
	}

	return c
}

// RegisterPayload is the registration request body.
type RegisterPayload struct {
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName" form:"lastName"`
	Email     string `json:"email" form:"email"`
	Phone     string `json:"phone" form:"phone"`
	Password  string `json:"password" form:"password"`
	Role      string `json:"role" form:"role"`
}

// Validate will run validation rules
func (r RegisterPayload) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(
				&r.Email,
				validation.Required,
				is.Email,
			),
			validation.Field(
				&r.Phone,
				validation.Required,
				validation.Length(10, 20),
			),
			validation.Field(
				&r.Password,
				validation.Required,
				validation.Length(8, 100),
			),
			validation.Field(
				&r.FirstName,
				validation.Required,
			),
			validation.Field(
				&r.LastName,
				validation.Required,
			),
			validation.Field(
				&r.Role,
				validation.Required,
				validation.In(RoleStudent, RoleOwner, RoleAdmin, RoleParent),
			),
		)
	}, "Invalid registration request payload")
}

// LoginPayload is the login request body. Identifier takes an email or a
// phone number; the email key is honored for older clients.
type LoginPayload struct {
	Identifier string `json:"identifier" form:"identifier"`
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
}

func (r LoginPayload) GetIdentifier() string {
	if r.Identifier != "" {
		return r.Identifier
	}
	return r.Email
}

// Validate will run validation rules
func (r LoginPayload) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(
				&r.Password,
				validation.Required,
			),
		)
	}, "Invalid login request payload")
}

// RefreshPayload is the token refresh request body.
type RefreshPayload struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken"`
}

// Validate will run validation rules
func (r RefreshPayload) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(
				&r.RefreshToken,
				validation.Required,
			),
		)
	}, "Refresh token is required")
}

// RegistrationCreate handles POST /register
func (a *AuthController) RegistrationCreate(ctx router.Context) error {
	payload := RegisterPayload{}
	if err := ctx.Bind(&payload); err != nil {
		return a.respondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "Invalid request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return a.respondError(ctx, err)
	}

	user, tokens, err := a.Auther.Register(ctx.Context(), RegisterUserMessage{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Password:  payload.Password,
		Role:      payload.Role,
	})
	if err != nil {
		a.Logger.Error("registration failed", "error", err)
		return a.respondError(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    user.Public(),
		"tokens":  tokens,
	})
}

// LoginPost handles POST /login
func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := LoginPayload{}
	if err := ctx.Bind(&payload); err != nil {
		return a.respondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "Invalid request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return a.respondError(ctx, err)
	}

	if payload.GetIdentifier() == "" {
		return a.respondError(ctx, goerrors.New("Email or phone is required", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest))
	}

	user, tokens, err := a.Auther.Login(ctx.Context(), payload.GetIdentifier(), payload.Password)
	if err != nil {
		return a.respondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    user.Public(),
		"tokens":  tokens,
	})
}

// RefreshPost handles POST /refresh
func (a *AuthController) RefreshPost(ctx router.Context) error {
	payload := RefreshPayload{}
	if err := ctx.Bind(&payload); err != nil {
		return a.respondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "Invalid request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return a.respondError(ctx, err)
	}

	tokens, err := a.Auther.Refresh(ctx.Context(), payload.RefreshToken)
	if err != nil {
		return a.respondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"message": "Token refreshed successfully",
		"tokens":  tokens,
	})
}

// LogOut handles POST /logout. Tokens are stateless, so this only
// acknowledges the request; it still requires a valid access token.
func (a *AuthController) LogOut(ctx router.Context) error {
	claims, _ := GetRouterClaims(ctx, a.ContextKey)
	a.Auther.Logout(ctx.Context(), claims)

	return ctx.JSON(router.StatusOK, map[string]any{
		"message": "Logout successful",
	})
}

// MeShow handles GET /me, always re-reading the user from the store.
func (a *AuthController) MeShow(ctx router.Context) error {
	claims, ok := GetRouterClaims(ctx, a.ContextKey)
	if !ok {
		return a.respondError(ctx, ErrTokenMalformed)
	}

	user, err := a.Auther.CurrentUser(ctx.Context(), claims.UserID())
	if err != nil {
		return a.respondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"user": user.Public(),
	})
}

func (a *AuthController) respondError(ctx router.Context, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "An unexpected server error occurred").
			WithCode(goerrors.CodeInternal)
	}

	if a.Debug {
		a.Logger.Debug("auth controller error",
			"category", richErr.Category,
			"text_code", richErr.TextCode,
			"message", richErr.Message,
		)
	}

	status, label := httpStatusFor(richErr)

	body := map[string]any{
		"error":   label,
		"message": richErr.Message,
	}

	if richErr.Category == goerrors.CategoryValidation {
		if details := richErr.ValidationMap(); len(details) > 0 {
			body["details"] = details
		}
	}

	return ctx.JSON(status, body)
}

func httpStatusFor(err *goerrors.Error) (int, string) {
	switch err.Category {
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		return router.StatusBadRequest, "Validation failed"
	case goerrors.CategoryConflict:
		// conflicts surface as 400 to keep the public API contract stable
		return router.StatusBadRequest, "Registration failed"
	case goerrors.CategoryAuth, goerrors.CategoryAuthz, goerrors.CategoryRateLimit:
		status := router.StatusUnauthorized
		if err.Code == goerrors.CodeForbidden {
			status = router.StatusForbidden
		}
		return status, "Authentication failed"
	case goerrors.CategoryNotFound:
		return router.StatusNotFound, "Not found"
	default:
		return router.StatusInternalServerError, "Internal server error"
	}
}
