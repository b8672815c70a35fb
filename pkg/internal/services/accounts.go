package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/sweepref/guestsource/pkg/internal/database"
	"github.com/sweepref/guestsource/pkg/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const adminTokenLifetime = 7 * 24 * time.Hour

// AuthenticateAdmin checks the manager credentials and issues a bearer token
// for the admin surface.
func AuthenticateAdmin(username, password string) (string, error) {
	var account models.AdminAccount
	if err := database.C.Where("username = ?", username).First(&account).Error; err != nil {
		return "", ErrInvalidCredential
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredential
	}

	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", account.ID),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(adminTokenLifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(viper.GetString("security.jwt_secret")))
}

// ValidateAdminToken returns the account id carried by a bearer token.
func ValidateAdminToken(raw string) (uint, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(viper.GetString("security.jwt_secret")), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, ErrInvalidCredential
	}

	claims := token.Claims.(*jwt.RegisteredClaims)
	var accountId uint
	if _, err := fmt.Sscanf(claims.Subject, "%d", &accountId); err != nil {
		return 0, ErrInvalidCredential
	}
	return accountId, nil
}

// ChangeAdminPassword rotates the manager password after re-verifying the
// old one, mirroring the settings screen flow.
func ChangeAdminPassword(accountId uint, oldPassword, newPassword string) error {
	if len(newPassword) < 4 {
		return fmt.Errorf("%w: password too short", ErrValidation)
	}

	var account models.AdminAccount
	if err := database.C.Where("id = ?", accountId).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(oldPassword)) != nil {
		return ErrInvalidCredential
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	account.PasswordHash = string(hash)

	return database.C.Save(&account).Error
}

// SeedAdminAccount creates the initial manager login on a fresh database.
func SeedAdminAccount() error {
	var count int64
	if err := database.C.Model(&models.AdminAccount{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := viper.GetString("security.initial_admin_password")
	if len(password) == 0 {
		password = "admin"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return database.C.Create(&models.AdminAccount{
		Username:     "admin",
		PasswordHash: string(hash),
	}).Error
}
