package middleware

import (
	"strings"

	"wizard-writing-study/auth"
	"wizard-writing-study/internal/errors"

	"github.com/gin-gonic/gin"
)

// tokenFromRequest reads the bearer token from the Authorization header,
// falling back to the token query param for websocket clients.
func tokenFromRequest(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ctx.Query("token")
}

// WriterAuth authenticates writer sessions and sets user_id on the context.
func WriterAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := tokenFromRequest(ctx)
		if token == "" {
			ctx.Error(errors.ErrUnauthorized(nil).WithMessage("Authorization is not found!"))
			ctx.Abort()
			return
		}

		parsedToken, err := auth.VerifyJWT(token)
		if err != nil {
			ctx.Error(errors.ErrUnauthorized(err).WithMessage("Invalid token!"))
			ctx.Abort()
			return
		}

		userID, sessionID, err := auth.WriterFromToken(parsedToken)
		if err != nil {
			ctx.Error(errors.ErrUnauthorized(err).WithMessage("Invalid token!"))
			ctx.Abort()
			return
		}

		ctx.Set("user_id", userID)
		ctx.Set("session_id", sessionID)
		ctx.Set("jwt_token", token)
		ctx.Next()
	}
}

// WizardAuth authenticates operator sessions and sets wizard_session_id on the context.
func WizardAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := tokenFromRequest(ctx)
		if token == "" {
			ctx.Error(errors.ErrUnauthorized(nil).WithMessage("Authorization is not found!"))
			ctx.Abort()
			return
		}

		parsedToken, err := auth.VerifyJWT(token)
		if err != nil {
			ctx.Error(errors.ErrUnauthorized(err).WithMessage("Invalid token!"))
			ctx.Abort()
			return
		}

		wizardSessionID, err := auth.WizardFromToken(parsedToken)
		if err != nil {
			ctx.Error(errors.ErrForbidden(err).WithMessage("Wizard access required!"))
			ctx.Abort()
			return
		}

		ctx.Set("wizard_session_id", wizardSessionID)
		ctx.Next()
	}
}
