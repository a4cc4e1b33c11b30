package webserver

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/truthlens/truthlens/src/api/users"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type Auth struct {
	users     *users.Service
	jwtSecret []byte
}

func NewAuth(u *users.Service, secret []byte) Auth {
	return Auth{users: u, jwtSecret: secret}
}

func (a Auth) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No data provided"})
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	password := strings.TrimSpace(req.Password)
	if name == "" || email == "" || password == "" {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "All fields are required"})
		return
	}
	if !isValidEmail(email) {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid email format"})
		return
	}

	if err := a.users.Register(name, email, password); err != nil {
		if errors.Is(err, users.ErrEmailExists) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Email already exists"})
			return
		}
		log.Printf("register %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (a Auth) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No data provided"})
		return
	}

	u, err := a.users.Authenticate(strings.TrimSpace(req.Email), strings.TrimSpace(req.Password))
	switch {
	case errors.Is(err, users.ErrNotFound):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "User not found"})
		return
	case errors.Is(err, users.ErrBadPassword):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid password"})
		return
	case err != nil:
		log.Printf("login %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login error"})
		return
	}

	token, err := issueJWT(u.Email, a.jwtSecret)
	if err != nil {
		log.Printf("issue jwt for %s: %v", u.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"email":        u.Email,
			"subscription": u.Subscription,
			"name":         u.Name,
			"usage_count":  u.UsageCount,
		},
	})
}

// Me returns the profile of the authenticated account.
func (a Auth) Me(c *gin.Context) {
	email := c.GetString("email")
	u, err := a.users.Get(email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

func issueJWT(email string, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	return token.SignedString(secret)
}

func isValidEmail(email string) bool {
	return emailRe.MatchString(email) && len(email) <= 255
}
