package middleware

import (
	"context"
	"log"
	"net/http"

	"stackit/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	CurrentUserKey = "user"
	UnreadCountKey = "unread_count"
	// SessionUserKey is the session field holding the logged-in user's id.
	SessionUserKey = "user_id"
)

// UserLookup resolves the user a session points at.
type UserLookup interface {
	CurrentUser(ctx context.Context, id uint) (*models.User, error)
}

// UnreadCounter counts a user's unread notifications.
type UnreadCounter interface {
	UnreadCount(ctx context.Context, userID uint) (int64, error)
}

// LoadUser retrieves user from session and sets it on the context together
// with the unread notification count. A session pointing at a deleted user
// is cleared.
func LoadUser(users UserLookup, unread UnreadCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		id, ok := sessionUserID(session.Get(SessionUserKey))
		if !ok {
			c.Next()
			return
		}

		user, err := users.CurrentUser(c.Request.Context(), id)
		if err != nil {
			log.Printf("[AUTH] drop session for user %d: %v", id, err)
			session.Delete(SessionUserKey)
			_ = session.Save()
			c.Next()
			return
		}
		c.Set(CurrentUserKey, user)

		count, err := unread.UnreadCount(c.Request.Context(), user.ID)
		if err != nil {
			log.Printf("[AUTH] unread count for user %d: %v", user.ID, err)
		}
		c.Set(UnreadCountKey, count)

		c.Next()
	}
}

func sessionUserID(v interface{}) (uint, bool) {
	switch id := v.(type) {
	case uint:
		return id, id > 0
	case int:
		return uint(id), id > 0
	case int64:
		return uint(id), id > 0
	default:
		return 0, false
	}
}

// CurrentUser returns the logged-in user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	if u, exists := c.Get(CurrentUserKey); exists {
		if user, ok := u.(*models.User); ok {
			return user
		}
	}
	return nil
}

// Decision is the outcome of a role check.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

// Authorize compares the caller against the role a route requires. Anonymous
// callers only pass routes open to guests.
func Authorize(user *models.User, required models.Role) Decision {
	if user == nil {
		if required == models.RoleGuest {
			return Allow
		}
		return DenyUnauthenticated
	}
	if user.Role.Rank() < required.Rank() {
		return DenyForbidden
	}
	return Allow
}

// RequireRole guards JSON routes.
func RequireRole(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch Authorize(CurrentUser(c), required) {
		case DenyUnauthenticated:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		case DenyForbidden:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		default:
			c.Next()
		}
	}
}

// RequirePageRole guards form and page routes: anonymous callers go to
// /login, callers below the required role get the error page.
func RequirePageRole(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch Authorize(CurrentUser(c), required) {
		case DenyUnauthenticated:
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		case DenyForbidden:
			c.HTML(http.StatusForbidden, "error.html", gin.H{
				"Error":       "Insufficient permissions",
				"Status":      http.StatusForbidden,
				"CurrentUser": CurrentUser(c),
				"UnreadCount": c.GetInt64(UnreadCountKey),
				"CurrentPath": c.Request.URL.Path,
			})
			c.Abort()
		default:
			c.Next()
		}
	}
}

// RequireLogin rejects anonymous JSON requests regardless of role.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			return
		}
		c.Next()
	}
}

// AuthRequired ensures a user is logged in, redirecting pages to /login.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
