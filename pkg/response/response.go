// Package response writes the API's wire shapes. Existing clients depend on
// these exact payloads, so everything funnels through here:
//
//	{"token": "..."}                      issued credential
//	{"errors": [{"field": ..., "msg": ...}]}  validation / credential errors
//	{"msg": "..."}                        single-message responses
//	"Server Error"                        plain-text 500, no internal detail
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnector/devconnector-api/internal/domain/apperr"
)

// FieldError is one entry of the "errors" array. Field is omitted for
// non-validation errors such as "Invalid Credentials".
type FieldError struct {
	Field string `json:"field,omitempty"`
	Msg   string `json:"msg"`
}

// Token writes a successful credential issuance.
func Token(c *gin.Context, token string) {
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Msg writes a single-message JSON body with the given status.
func Msg(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"msg": msg})
}

// AbortMsg writes a single-message body and stops the handler chain. Used by
// middleware rejections.
func AbortMsg(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"msg": msg})
}

// ValidationFailed writes a 400 with the structured field errors.
func ValidationFailed(c *gin.Context, errs []FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}

// WriteError translates an error from the service layer into its wire shape.
// Anything outside the closed set becomes a generic 500; the caller is
// expected to have logged the detail already.
func WriteError(c *gin.Context, err error) {
	var nf *apperr.NotFoundError
	switch {
	case errors.Is(err, apperr.ErrDuplicateUser):
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{Msg: "User already exists"}}})
	case errors.Is(err, apperr.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{Msg: "Invalid Credentials"}}})
	case errors.Is(err, apperr.ErrForbidden):
		// The original API used 401 here rather than 403; kept for wire
		// compatibility.
		Msg(c, http.StatusUnauthorized, "User not authorized")
	case errors.As(err, &nf):
		Msg(c, http.StatusNotFound, nf.Resource+" Not Found")
	default:
		c.String(http.StatusInternalServerError, "Server Error")
	}
}
