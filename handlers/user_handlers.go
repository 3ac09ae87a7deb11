package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"time"
	"unicode"

	"github.com/dhbw-wi22a/B2B-Backend/jwt"
	"github.com/dhbw-wi22a/B2B-Backend/mailservice"
	"github.com/dhbw-wi22a/B2B-Backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func ValidateEmail(email string) bool {
	pattern := "^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\\.[a-zA-Z0-9-.]+$"
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// ValidatePassword requires 8-50 chars with upper, lower, digit and symbol,
// no whitespace.
func ValidatePassword(password string) bool {
	if len(password) < 8 || len(password) > 50 {
		return false
	}

	var (
		isUpper   = false
		isLower   = false
		isNumber  = false
		isSpecial = false
		isSpace   = false
	)

	for _, s := range password {
		switch {
		case unicode.IsSpace(s):
			isSpace = true
		case unicode.IsUpper(s):
			isUpper = true
		case unicode.IsLower(s):
			isLower = true
		case unicode.IsDigit(s):
			isNumber = true
		case unicode.IsPunct(s) || unicode.IsSymbol(s):
			isSpecial = true
		default:
		}
	}

	return isUpper && isLower && isNumber && isSpecial && !isSpace
}

func IsUserEmailExists(db *gorm.DB, email string) (bool, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

type registrationRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

func validateRegistration(db *gorm.DB, req *registrationRequest) (models.ValidationError, error) {
	errs := models.ValidationError{}

	if !ValidateEmail(req.Email) {
		errs["email"] = "Enter a valid email address."
	} else {
		exists, err := IsUserEmailExists(db, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			errs["email"] = "A user with this email already exists."
		}
	}

	if !ValidatePassword(req.Password) {
		errs["password"] = "Password must be 8-50 characters with upper case, lower case, number and symbol."
	}
	if req.Password != req.PasswordConfirm {
		errs["password_confirm"] = "The passwords do not match."
	}

	if len(errs) > 0 {
		return errs, nil
	}
	return nil, nil
}

// RegisterUser creates the account, its shopping cart and the email
// verification token in one transaction. Cart creation is an explicit step
// here, not a model hook.
func RegisterUser(db *gorm.DB, req *registrationRequest) (*models.User, string, error) {
	validationErrs, err := validateRegistration(db, req)
	if err != nil {
		return nil, "", err
	}
	if validationErrs != nil {
		return nil, "", validationErrs
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Email:    req.Email,
		Password: string(hashed),
		Role:     models.RoleMember,
		Active:   true,
	}
	verificationToken := uuid.NewString()

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.ShoppingCart{UserID: user.ID}).Error; err != nil {
			return err
		}
		return tx.Create(&models.VerificationToken{
			Token:   verificationToken,
			UserID:  user.ID,
			Purpose: models.TokenPurposeVerifyEmail,
		}).Error
	})
	if err != nil {
		return nil, "", err
	}

	return &user, verificationToken, nil
}

// RegisterHandler creates a new account and mails the verification link.
func RegisterHandler(c *gin.Context, db *gorm.DB, mail *mailservice.Client) {
	var req registrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, verificationToken, err := RegisterUser(db, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	// Mail dispatch is best effort and never fails the registration.
	mail.SendRegistrationMail(user, verificationToken)

	c.JSON(http.StatusCreated, gin.H{
		"email": user.Email,
	})
}

// VerifyEmailHandler resolves a mailed verification token and marks the
// account verified. Tokens are single use.
func VerifyEmailHandler(c *gin.Context, db *gorm.DB) {
	token := c.Param("token")

	var verificationToken models.VerificationToken
	err := db.
		Where("token = ? AND purpose = ?", token, models.TokenPurposeVerifyEmail).
		First(&verificationToken).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "This verification link has already been used or is invalid.",
		})
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).
			Where("id = ?", verificationToken.UserID).
			Update("verified", true).Error
		if err != nil {
			return err
		}
		return tx.Unscoped().Delete(&verificationToken).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email verified successfully!",
	})
}

// LoginHandler checks the credentials and issues a JWT backed by a
// LoginToken row.
func LoginHandler(c *gin.Context, db *gorm.DB) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var user models.User
	err := db.First(&user, "email = ?", req.Email).Error
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if !user.Active {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account is deactivated"})
		return
	}

	expirationTime := time.Now().Add(24 * time.Hour)
	token, err := jwt.GenerateToken(user.ID, user.Role, expirationTime.Unix())
	if err != nil {
		respondError(c, err)
		return
	}

	err = db.Create(&models.LoginToken{
		Token:          token,
		ExpirationTime: expirationTime,
		UserID:         user.ID,
		Role:           user.Role,
	}).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Authorization", "Bearer "+token)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}

// LogOutHandler revokes the current token by deleting its LoginToken row.
func LogOutHandler(c *gin.Context, db *gorm.DB) {
	token, ok := c.Get("Token")
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to resolve token"})
		return
	}

	err := db.Unscoped().Where("token = ?", token).Delete(&models.LoginToken{}).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Success"})
}

func userJSON(user *models.User) gin.H {
	return gin.H{
		"email":        user.Email,
		"company_id":   user.CompanyID,
		"company_name": user.CompanyName,
		"phone":        user.Phone,
		"first_name":   user.FirstName,
		"last_name":    user.LastName,
		"full_name":    user.FullName(),
		"verified":     user.Verified,
	}
}

// GetUserProfileHandler returns the authenticated user's profile with
// addresses and cart.
func GetUserProfileHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var user models.User
	err := db.
		Preload("Addresses").
		Preload("ShoppingCart.CartItems").
		First(&user, userID).Error
	if err != nil {
		respondError(c, err)
		return
	}

	profile := userJSON(&user)
	addresses := make([]gin.H, 0, len(user.Addresses))
	for _, address := range user.Addresses {
		addresses = append(addresses, addressJSON(&address))
	}
	profile["addresses"] = addresses
	if user.ShoppingCart != nil {
		profile["cart_id"] = user.ShoppingCart.ID
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateUserProfileHandler patches profile fields. The email is immutable.
func UpdateUserProfileHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		FirstName   *string `json:"first_name"`
		LastName    *string `json:"last_name"`
		CompanyID   *string `json:"company_id"`
		CompanyName *string `json:"company_name"`
		Phone       *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		respondError(c, err)
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.CompanyID != nil {
		user.CompanyID = *req.CompanyID
	}
	if req.CompanyName != nil {
		user.CompanyName = *req.CompanyName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := db.Save(&user).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userJSON(&user))
}

// DeactivateUserHandler sets the account inactive instead of deleting it
// and revokes all of its sessions.
func DeactivateUserHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("active", false).Error
		if err != nil {
			return err
		}
		return tx.Unscoped().Where("user_id = ?", userID).Delete(&models.LoginToken{}).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RequestPasswordResetHandler mails a reset token when the account exists.
// The response never reveals whether it does.
func RequestPasswordResetHandler(c *gin.Context, db *gorm.DB, mail *mailservice.Client) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var user models.User
	err := db.First(&user, "email = ?", req.Email).Error
	if err == nil {
		resetToken := uuid.NewString()
		err = db.Create(&models.VerificationToken{
			Token:   resetToken,
			UserID:  user.ID,
			Purpose: models.TokenPurposePasswordReset,
		}).Error
		if err != nil {
			respondError(c, err)
			return
		}
		mail.SendPasswordResetMail(&user, resetToken)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If the account exists, a password reset email has been sent.",
	})
}

// ConfirmPasswordResetHandler sets a new password against a mailed reset
// token and revokes all sessions of the account.
func ConfirmPasswordResetHandler(c *gin.Context, db *gorm.DB) {
	var req struct {
		Token           string `json:"token" binding:"required"`
		Password        string `json:"password" binding:"required"`
		PasswordConfirm string `json:"password_confirm" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Password != req.PasswordConfirm {
		c.JSON(http.StatusBadRequest, models.NewFieldError("password_confirm", "The passwords do not match."))
		return
	}
	if !ValidatePassword(req.Password) {
		c.JSON(http.StatusBadRequest, models.NewFieldError("password", "Password must be 8-50 characters with upper case, lower case, number and symbol."))
		return
	}

	var resetToken models.VerificationToken
	err := db.
		Where("token = ? AND purpose = ?", req.Token, models.TokenPurposePasswordReset).
		First(&resetToken).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "This reset link has already been used or is invalid.",
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).
			Where("id = ?", resetToken.UserID).
			Update("password", string(hashed)).Error
		if err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", resetToken.UserID).Delete(&models.LoginToken{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&resetToken).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset."})
}
