package controller

import (
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"churchfinder_backend/internals/configs"
	"churchfinder_backend/internals/constants"
	authModel "churchfinder_backend/internals/features/users/auth/model"
	userDTO "churchfinder_backend/internals/features/users/user/dto"
	userModel "churchfinder_backend/internals/features/users/user/model"
	helper "churchfinder_backend/internals/helpers"
)

const accessTokenTTL = 24 * time.Hour

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validate: validator.New()}
}

type registerRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/register
//
// Creates the identity AND its profile row in one step (the hosted backend
// the client used before did this with a DB trigger).
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := ac.DB.Model(&userModel.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check email")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		Email:    email,
		FullName: req.FullName,
		Password: string(hashed),
		Role:     constants.RoleUser,
		IsActive: true,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		log.Printf("[ERROR] register user email=%s: %v", email, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create account")
	}

	token, err := issueAccessToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	return helper.JsonCreated(c, "Account created", fiber.Map{
		"user":         userDTO.FromUserModel(&user),
		"access_token": token,
	})
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user userModel.UserModel
	if err := ac.DB.First(&user, "email = ?", email).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := issueAccessToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	return helper.JsonOK(c, "Signed in", fiber.Map{
		"user":         userDTO.FromUserModel(&user),
		"access_token": token,
	})
}

// POST /api/auth/logout
//
// Blacklists the presented token so it stops working before its exp.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	header := strings.TrimSpace(c.Get("Authorization"))
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if tokenString == "" {
		tokenString = strings.TrimSpace(c.Cookies("access_token"))
	}
	if tokenString == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "No token to sign out")
	}

	expiredAt := time.Now().Add(accessTokenTTL)
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	}); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			expiredAt = time.Unix(int64(exp), 0)
		}
	}

	entry := authModel.TokenBlacklist{Token: tokenString, ExpiredAt: expiredAt}
	if err := ac.DB.Create(&entry).Error; err != nil {
		// duplicate sign-out of the same token is fine
		if !strings.Contains(err.Error(), "duplicate") && !strings.Contains(err.Error(), "unique") {
			log.Printf("[ERROR] blacklist token: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign out")
		}
	}
	return helper.JsonOK(c, "Signed out", nil)
}

func issueAccessToken(user *userModel.UserModel) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
