package handlers

import (
	"net/http"

	"stackit/internal/middleware"
	"stackit/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth AuthService
}

func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", nil)
}

// Register accepts a JSON body or a form post.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		h.registerFailed(c, http.StatusBadRequest, "Invalid request body", req)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		code, msg := classify(err)
		logIfInternal(c, code, err)
		h.registerFailed(c, code, msg, req)
		return
	}

	if err := startSession(c, user); err != nil {
		respondError(c, err)
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusCreated, gin.H{
			"message": "Registration successful",
			"id":      user.ID,
			"role":    user.Role,
		})
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) registerFailed(c *gin.Context, code int, msg string, req registerRequest) {
	if wantsJSON(c) {
		c.JSON(code, gin.H{"error": msg})
		return
	}
	Render(c, code, "auth/register.html", gin.H{"Error": msg, "Name": req.Name, "Email": req.Email})
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.loginFailed(c, http.StatusBadRequest, "Invalid request body", req.Email)
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		code, msg := classify(err)
		logIfInternal(c, code, err)
		h.loginFailed(c, code, msg, req.Email)
		return
	}

	if err := startSession(c, user); err != nil {
		respondError(c, err)
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) loginFailed(c *gin.Context, code int, msg, email string) {
	if wantsJSON(c) {
		c.JSON(code, gin.H{"error": msg})
		return
	}
	Render(c, code, "auth/login.html", gin.H{"Error": msg, "Email": email})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, "/")
}

func startSession(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, user.ID)
	return session.Save()
}
