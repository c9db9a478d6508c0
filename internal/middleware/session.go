package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workboard-api/internal/constants"
	"github.com/yukikurage/workboard-api/internal/logging"
	"github.com/yukikurage/workboard-api/internal/models"
)

// UserLookup resolves a user ID to its profile
type UserLookup interface {
	GetUser(userID string) (*models.UserRef, error)
}

// CurrentUser picks the acting user for the request. The user stored in the
// session wins; otherwise, or when that user no longer exists, the default
// user acts. The user is only used to attribute work and is not an
// authentication check.
func CurrentUser(users UserLookup, defaultUserID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := defaultUserID

		session := sessions.Default(c)
		if stored, ok := session.Get(constants.ContextKeyUserID).(string); ok && stored != "" {
			userID = stored
		}

		user, err := users.GetUser(userID)
		if err != nil && userID != defaultUserID {
			logging.Logger.WithField("user_id", userID).Warn("session user not found, using default user")
			user, err = users.GetUser(defaultUserID)
		}
		if err != nil {
			user = &models.UserRef{ID: defaultUserID}
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, *user)
		c.Next()
	}
}

// SetSessionUser stores the acting user in the session cookie
func SetSessionUser(c *gin.Context, userID string) error {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, userID)
	if err := session.Save(); err != nil {
		return err
	}

	c.Set(constants.ContextKeyUserID, userID)
	return nil
}

// GetUserID retrieves the acting user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	return id, ok && id != ""
}

// GetUser retrieves the acting user from context
func GetUser(c *gin.Context) (models.UserRef, bool) {
	user, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.UserRef{}, false
	}

	ref, ok := user.(models.UserRef)
	return ref, ok
}
