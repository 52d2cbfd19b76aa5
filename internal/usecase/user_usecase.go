package usecase

import (
	"bytes"
	"context"
	"crypto/subtle"
	"fmt"
	"html/template"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/constant"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/observability"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/util"
	"github.com/google/uuid"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	UserLookup
	FindById(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	CheckUsernameOrEmailUnique(ctx context.Context, username string, email string) (bool, bool, error)
	Insert(ctx context.Context, user model.User) error
	ConfirmEmail(ctx context.Context, id uuid.UUID, dateModified time.Time) error
}

// TokenStore keeps SHA-256 hashes of issued tokens, never the tokens.
type TokenStore interface {
	SetAuthToken(ctx context.Context, userId uuid.UUID, accessTokenHash string, refreshTokenHash string) error
	GetAccessTokenHash(ctx context.Context, userId uuid.UUID) (string, error)
	RemoveAuthToken(ctx context.Context, userId uuid.UUID) error
	SetConfirmEmailToken(ctx context.Context, userId uuid.UUID, tokenHash string, ttl time.Duration) error
	GetConfirmEmailToken(ctx context.Context, userId uuid.UUID) (string, error)
	RemoveConfirmEmailToken(ctx context.Context, userId uuid.UUID) error
}

type Mailer interface {
	Send(ctx context.Context, message model.MailMessage) error
}

type AccountService interface {
	Register(ctx context.Context, request model.UserRegisterRequest) model.Result[model.UserResponse]
	ConfirmEmail(ctx context.Context, userId string, token string) model.Result[bool]
	Login(ctx context.Context, request model.UserLoginRequest) model.Result[model.TokenResponse]
	Logout(ctx context.Context, callerId uuid.UUID) error
	Authenticate(ctx context.Context, authHeader string) (uuid.UUID, error)
}

type UserUsecase struct {
	UserRepository  UserStore
	TokenRepository TokenStore
	Mailer          Mailer
	Log             *zap.Logger
	Config          *koanf.Koanf
}

func NewUserUsecase(userRepository UserStore, tokenRepository TokenStore, mailer Mailer, zap *zap.Logger, koanf *koanf.Koanf) *UserUsecase {
	return &UserUsecase{
		UserRepository:  userRepository,
		TokenRepository: tokenRepository,
		Mailer:          mailer,
		Log:             zap,
		Config:          koanf,
	}
}

func (usecase *UserUsecase) Register(ctx context.Context, request model.UserRegisterRequest) (result model.Result[model.UserResponse]) {
	ctx, finish := observability.StartOperation(ctx, "account.register")
	defer func() { finish(result.Outcome()) }()

	log := observability.WithContext(ctx, usecase.Log)

	request.Username = strings.ToLower(strings.TrimSpace(request.Username))
	request.Email = strings.ToLower(strings.TrimSpace(request.Email))

	message := validateRegister(request)
	if message != "" {
		return model.Failure[model.UserResponse](model.ErrorTypeBadRequest, message)
	}

	usernameTaken, emailTaken, err := usecase.UserRepository.CheckUsernameOrEmailUnique(ctx, request.Username, request.Email)
	if err != nil {
		log.Error("failed to check username and email", zap.Error(err))
		return model.Failure[model.UserResponse](model.ErrorTypeProblem, constant.MSG_PROBLEM)
	}

	if usernameTaken {
		return model.Failure[model.UserResponse](model.ErrorTypeBadRequest, "Username is already taken.")
	}

	if emailTaken {
		return model.Failure[model.UserResponse](model.ErrorTypeBadRequest, "Email is already registered.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return model.Failure[model.UserResponse](model.ErrorTypeProblem, constant.MSG_PROBLEM)
	}

	now := defaultNow()
	user := model.User{
		Id:           uuid.New(),
		Username:     request.Username,
		Email:        request.Email,
		Password:     string(hashedPassword),
		DateCreated:  now,
		DateModified: now,
	}

	err = usecase.UserRepository.Insert(ctx, user)
	if err != nil {
		log.Error("failed to insert user", zap.Error(err))
		return model.Failure[model.UserResponse](model.ErrorTypeProblem, constant.MSG_PROBLEM)
	}

	// The account exists from here on; a lost confirmation mail is not a
	// registration failure.
	err = usecase.sendConfirmEmail(ctx, user)
	if err != nil {
		log.Warn("failed to send confirmation email", zap.String("user_id", user.Id.String()), zap.Error(err))
	}

	return model.Success(user.Response())
}

func (usecase *UserUsecase) sendConfirmEmail(ctx context.Context, user model.User) error {
	token, err := util.GenerateToken(32)
	if err != nil {
		return err
	}

	err = usecase.TokenRepository.SetConfirmEmailToken(ctx, user.Id, util.HashSHA256(token), constant.CONFIRM_EMAIL_TOKEN_TTL)
	if err != nil {
		return err
	}

	query := url.Values{}
	query.Set("userId", user.Id.String())
	query.Set("token", token)
	link := fmt.Sprintf("%s/api/account/confirm-email?%s", strings.TrimSuffix(usecase.Config.String("APP_URL"), "/"), query.Encode())

	tmpl, err := template.ParseFS(util.TemplateFS, "template/confirm_email.html")
	if err != nil {
		return err
	}

	var body bytes.Buffer
	err = tmpl.Execute(&body, model.ConfirmEmailTemplateData{
		Username:  user.Username,
		Link:      link,
		ExpiresIn: int64(constant.CONFIRM_EMAIL_TOKEN_TTL.Hours()),
	})
	if err != nil {
		return err
	}

	return usecase.Mailer.Send(ctx, model.MailMessage{
		Recipients: []model.MailRecipient{{DisplayName: user.Username, Address: user.Email}},
		Subject:    "Confirm your email",
		Body:       body.String(),
	})
}

func (usecase *UserUsecase) ConfirmEmail(ctx context.Context, userId string, token string) (result model.Result[bool]) {
	ctx, finish := observability.StartOperation(ctx, "account.confirm_email")
	defer func() { finish(result.Outcome()) }()

	log := observability.WithContext(ctx, usecase.Log)

	id, err := uuid.Parse(userId)
	if err != nil || token == "" {
		return model.Failure[bool](model.ErrorTypeBadRequest, constant.MSG_INVALID_INPUT)
	}

	user, err := usecase.UserRepository.FindById(ctx, id)
	if err != nil {
		log.Error("failed to find user", zap.String("user_id", userId), zap.Error(err))
		return model.Failure[bool](model.ErrorTypeProblem, constant.MSG_PROBLEM)
	}

	if user == nil {
		return model.Failure[bool](model.ErrorTypeNotFound, constant.MSG_USER_NOT_FOUND)
	}

	if user.EmailConfirmed {
		return model.Success(true)
	}

	storedHash, err := usecase.TokenRepository.GetConfirmEmailToken(ctx, id)
	if err != nil {
		log.Error("failed to get confirmation token", zap.String("user_id", userId), zap.Error(err))
		return model.Failure[bool](model.ErrorTypeProblem, constant.MSG_PROBLEM)
	}

	if storedHash == "" || subtle.ConstantTimeCompare([]byte(storedHash), []byte(util.HashSHA256(token))) != 1 {
		return model.Failure[bool](model.ErrorTypeBadRequest, constant.MSG_INVALID_TOKEN)
	}

	err = usecase.UserRepository.ConfirmEmail(ctx, id, defaultNow())
	if err != nil {
		log.Error("failed to confirm email", zap.String("user_id", userId), zap.Error(err))
		return model.Failure[bool](model.ErrorTypeProblem, constant.MSG_PROBLEM)
	}

	err = usecase.TokenRepository.RemoveConfirmEmailToken(ctx, id)
	if err != nil {
		log.Warn("failed to remove confirmation token", zap.String("user_id", userId), zap.Error(err))
	}

	return model.Success(true)
}

func (usecase *UserUsecase) Login(ctx context.Context, request model.UserLoginRequest) (result model.Result[model.TokenResponse]) {
	ctx, finish := observability.StartOperation(ctx, "account.login")
	defer func() { finish(result.Outcome()) }()

	log := observability.WithContext(ctx, usecase.Log)

	username := strings.ToLower(strings.TrimSpace(request.Username))
	if username == "" || request.Password == "" {
		return model.Failure[model.TokenResponse](model.ErrorTypeBadRequest, constant.MSG_BAD_CREDENTIALS)
	}

	user, err := usecase.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		log.Error("failed to find user", zap.Error(err))
		return model.Failure[model.TokenResponse](model.ErrorTypeProblem, constant.MSG_PROBLEM)
	}

	if user == nil {
		return model.Failure[model.TokenResponse](model.ErrorTypeBadRequest, constant.MSG_BAD_CREDENTIALS)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password))
	if err != nil {
		return model.Failure[model.TokenResponse](model.ErrorTypeBadRequest, constant.MSG_BAD_CREDENTIALS)
	}

	if !user.EmailConfirmed {
		return model.Failure[model.TokenResponse](model.ErrorTypeBadRequest, constant.MSG_EMAIL_NOT_CONFIRMED)
	}

	token, err := util.GenerateTokenPair(user.Id, user.Username, usecase.Config.String("JWT_SECRET_KEY"))
	if err != nil {
		log.Error("failed to generate token pair", zap.Error(err))
		return model.Failure[model.TokenResponse](model.ErrorTypeProblem, constant.MSG_PROBLEM)
	}

	err = usecase.TokenRepository.SetAuthToken(ctx, user.Id, util.HashSHA256(token.AccessToken), util.HashSHA256(token.RefreshToken))
	if err != nil {
		log.Error("failed to store token", zap.Error(err))
		return model.Failure[model.TokenResponse](model.ErrorTypeProblem, constant.MSG_PROBLEM)
	}

	return model.Success(token)
}

func (usecase *UserUsecase) Logout(ctx context.Context, callerId uuid.UUID) error {
	return usecase.TokenRepository.RemoveAuthToken(ctx, callerId)
}

// Authenticate validates the bearer token and checks it is still the one
// issued at the last login.
func (usecase *UserUsecase) Authenticate(ctx context.Context, authHeader string) (uuid.UUID, error) {
	accessToken, userId, err := util.ValidateAccessToken(authHeader, usecase.Config.String("JWT_SECRET_KEY"))
	if err != nil {
		return uuid.Nil, err
	}

	storedHash, err := usecase.TokenRepository.GetAccessTokenHash(ctx, userId)
	if err != nil {
		return uuid.Nil, err
	}

	if storedHash == "" || subtle.ConstantTimeCompare([]byte(storedHash), []byte(util.HashSHA256(accessToken))) != 1 {
		return uuid.Nil, &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "Authentication token is expired",
			Param:   "accessToken",
		}
	}

	return userId, nil
}

func validateRegister(request model.UserRegisterRequest) string {
	if len(request.Username) < constant.MIN_USERNAME_LENGTH {
		return fmt.Sprintf("Username must be at least %d characters.", constant.MIN_USERNAME_LENGTH)
	} else if len(request.Username) > constant.MAX_USERNAME_LENGTH {
		return fmt.Sprintf("Username must be at most %d characters.", constant.MAX_USERNAME_LENGTH)
	}

	if request.Email == "" {
		return "Email is required."
	} else if len(request.Email) > constant.MAX_EMAIL_LENGTH {
		return fmt.Sprintf("Email must be at most %d characters.", constant.MAX_EMAIL_LENGTH)
	}

	address, err := mail.ParseAddress(request.Email)
	if err != nil || address.Address != request.Email {
		return "Email is invalid."
	}

	if len(request.Password) < constant.MIN_PASSWORD_LENGTH {
		return fmt.Sprintf("Password must be at least %d characters.", constant.MIN_PASSWORD_LENGTH)
	} else if len(request.Password) > constant.MAX_PASSWORD_LENGTH {
		return fmt.Sprintf("Password must be at most %d characters.", constant.MAX_PASSWORD_LENGTH)
	}

	return ""
}
