package webserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/truthlens/truthlens/src/api/verify"
)

type Verify struct {
	verifier *verify.Service
}

func NewVerify(v *verify.Service) Verify {
	return Verify{verifier: v}
}

func (h Verify) Check(c *gin.Context) {
	var req struct {
		Claim string `json:"claim"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No JSON data provided"})
		return
	}

	result, err := h.verifier.Verify(c.Request.Context(), req.Claim)
	if err != nil {
		if errors.Is(err, verify.ErrEmptyClaim) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No claim provided"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Server is running"})
}
