package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/dhbw-wi22a/B2B-Backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError translates workflow errors into the API error contract:
// validation problems become field-keyed 400 bodies, state conflicts 400,
// unknown records 404, everything else a generic 500.
func respondError(c *gin.Context, err error) {
	var validationErr models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, validationErr)
	case errors.Is(err, models.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// currentUserID reads the identity the auth middleware resolved, nil when
// the request is anonymous. Workflow functions take it as an explicit
// parameter instead of reaching into the request context themselves.
func currentUserID(c *gin.Context) *uint {
	value, ok := c.Get("UserID")
	if !ok {
		return nil
	}
	userID, ok := value.(uint)
	if !ok {
		return nil
	}
	return &userID
}

// mustUserID is for routes behind CheckLoginMiddleware, where a missing
// identity is a programming error, not a client one.
func mustUserID(c *gin.Context) (uint, bool) {
	userID := currentUserID(c)
	if userID == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to resolve user"})
		return 0, false
	}
	return *userID, true
}
