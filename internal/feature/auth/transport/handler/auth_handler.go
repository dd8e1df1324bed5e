// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe_backend/internal/api"
	"recipe_backend/internal/feature/auth/domain/entity"
	"recipe_backend/internal/feature/auth/transport/http/dto"
	"recipe_backend/internal/feature/auth/usecase"
	jwtmw "recipe_backend/internal/platform/jwt"
)

// DefaultMaxPictureBytes は登録時に受け付けるプロフィール画像の上限サイズです。
const DefaultMaxPictureBytes = 5 << 20

var errPictureTooLarge = errors.New("picture is too large")

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	Profile(ctx context.Context, userID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, in usecase.ProfileUpdate) (*entity.User, error)
}

// AuthHandler はユーザー登録・ログイン・プロフィールのHTTPリクエストを処理します。
type AuthHandler struct {
	auth            AuthUsecase
	maxPictureBytes int64
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// maxPictureBytesが0以下の場合はDefaultMaxPictureBytesを使用します。
func NewAuthHandler(auth AuthUsecase, maxPictureBytes int64) *AuthHandler {
	if maxPictureBytes <= 0 {
		maxPictureBytes = DefaultMaxPictureBytes
	}
	return &AuthHandler{auth: auth, maxPictureBytes: maxPictureBytes}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - JSONまたはmultipart/form-dataをRegisterReqにバインド
// - multipartの場合、任意の"picture"ファイルをプロフィール画像として保存
// - バリデーションエラー・重複時は400、成功時は201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewErrorDetail("Invalid request", err))
		return
	}

	picture, err := h.readPicture(c)
	if err != nil {
		slog.Warn("register picture rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewErrorDetail("Invalid picture", err))
		return
	}

	user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Name:           req.Name,
		Surname:        req.Surname,
		Email:          req.Email,
		Username:       req.Username,
		Password:       req.Password,
		ProfilePicture: picture,
	})
	if err != nil {
		h.fail(c, "register", err)
		return
	}

	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.UserEnvelope{
		Message: "User registered successfully",
		User:    dto.NewUserRes(user),
	})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - 未登録のメールアドレスは404、パスワード不一致は401
// - 認証成功時はトークンとユーザー情報を200で返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewErrorDetail("Invalid request", err))
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, "login", err)
		return
	}

	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginRes{Token: token, User: dto.NewUserRes(user)})
}

// Profile は認証済みユーザーのプロフィールを返します。
func (h *AuthHandler) Profile(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.NewError("Unauthorized"))
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		h.fail(c, "profile", err)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileEnvelope{
		Message: "User profile fetched successfully!",
		User:    dto.NewProfileRes(user),
	})
}

// UpdateProfile は認証済みユーザーの名前・メールアドレス・パスワードを更新します。
// 現在のパスワードが一致しない場合は401を返し、何も更新しません。
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.NewError("Unauthorized"))
		return
	}

	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("profile update validation failed", "error", err, "user_id", claims.UserID)
		c.JSON(http.StatusBadRequest, api.NewErrorDetail("Invalid request", err))
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), claims.UserID, usecase.ProfileUpdate{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.fail(c, "update profile", err)
		return
	}

	slog.Info("user profile updated", "user_id", user.ID)
	c.JSON(http.StatusOK, dto.UserEnvelope{
		Message: "Profile updated successfully",
		User:    dto.NewUserRes(user),
	})
}

// readPicture は任意の"picture"ファイルを読み込みます。
// multipart以外のリクエストやファイルがない場合はnilを返します。
func (h *AuthHandler) readPicture(c *gin.Context) ([]byte, error) {
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		return nil, nil
	}
	fh, err := c.FormFile("picture")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	if fh.Size > h.maxPictureBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", errPictureTooLarge, fh.Size, h.maxPictureBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return io.ReadAll(io.LimitReader(f, h.maxPictureBytes))
}

// fail はユースケースのエラーをHTTPステータスに変換して返却します。
func (h *AuthHandler) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		slog.Warn(op+" rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewErrorDetail("Invalid request", err))
	case errors.Is(err, usecase.ErrDuplicateKey):
		slog.Warn(op+" rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewErrorDetail("Email or username already exists", err))
	case errors.Is(err, usecase.ErrUserNotFound):
		slog.Warn(op+" failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusNotFound, api.NewError("User not found"))
	case errors.Is(err, usecase.ErrInvalidCredentials):
		slog.Warn(op+" failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.NewError("Invalid credentials"))
	case errors.Is(err, usecase.ErrIncorrectPassword):
		slog.Warn(op+" failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.NewError("Incorrect current password"))
	default:
		slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Server error", Error: "internal server error"})
	}
}
