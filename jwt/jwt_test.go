package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dhbw-wi22a/B2B-Backend/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func writeTestKeys(t *testing.T) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private_key.pem")
	publicPath := filepath.Join(dir, "public_key.pem")

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	require.NoError(t, os.WriteFile(privatePath, privatePEM, 0600))

	publicBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicBytes,
	})
	require.NoError(t, os.WriteFile(publicPath, publicPEM, 0600))

	SetKeyPaths(privatePath, publicPath)
}

func newTokenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.LoginToken{}))
	return db
}

func TestVerifyTokenRequiresLoginTokenRow(t *testing.T) {
	writeTestKeys(t)
	db := newTokenDB(t)

	expiration := time.Now().Add(time.Hour)
	token, err := GenerateToken(42, models.RoleMember, expiration.Unix())
	require.NoError(t, err)

	// Signed but never persisted: treated as logged out.
	_, _, err = VerifyToken(&token, db)
	require.Error(t, err)

	require.NoError(t, db.Create(&models.LoginToken{
		Token:          token,
		ExpirationTime: expiration,
		UserID:         42,
		Role:           models.RoleMember,
	}).Error)

	userID, role, err := VerifyToken(&token, db)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, models.RoleMember, role)

	// Logout deletes the row; the token dies with it.
	require.NoError(t, db.Unscoped().Where("token = ?", token).Delete(&models.LoginToken{}).Error)
	_, _, err = VerifyToken(&token, db)
	require.Error(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	writeTestKeys(t)
	db := newTokenDB(t)

	token, err := GenerateToken(7, models.RoleMember, time.Now().Add(-time.Minute).Unix())
	require.NoError(t, err)

	_, _, err = VerifyToken(&token, db)
	require.Error(t, err)
}

func TestVerifyTokenRejectsMissingClaims(t *testing.T) {
	writeTestKeys(t)
	db := newTokenDB(t)

	privateKey, err := loadPrivateKey()
	require.NoError(t, err)

	// Correctly signed, but carries neither userID nor role.
	bare := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := bare.SignedString(privateKey)
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.LoginToken{
		Token:          signed,
		ExpirationTime: time.Now().Add(time.Hour),
	}).Error)

	_, _, err = VerifyToken(&signed, db)
	require.ErrorIs(t, err, jwt.ErrTokenInvalidClaims)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	writeTestKeys(t)
	db := newTokenDB(t)

	garbage := "not.a.jwt"
	_, _, err := VerifyToken(&garbage, db)
	require.Error(t, err)
}
