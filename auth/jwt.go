package auth

import (
	"errors"
	"time"

	"wizard-writing-study/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

func secret() []byte {
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateWriterToken issues a session token for a writer
func GenerateWriterToken(userID uint64, sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID,
		"session_id": sessionID,
		"exp":        time.Now().Add(time.Hour * 24 * 3).Unix(), // expires in 3 days
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// GenerateWizardToken issues a token for the operator control panel
func GenerateWizardToken(wizardSessionID string) (string, error) {
	claims := jwt.MapClaims{
		"wizard":            true,
		"wizard_session_id": wizardSessionID,
		"exp":               time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

func VerifyJWT(tokenString string) (*jwt.Token, error) {
	// parse token
	jwtToken, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return secret(), nil
	})

	if err != nil {
		return nil, err
	}

	// isValid
	if !jwtToken.Valid {
		return nil, errors.New("token invalid")
	}

	return jwtToken, nil
}

// WriterFromToken extracts the writer identity from a parsed token
func WriterFromToken(token *jwt.Token) (uint64, string, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid claims")
	}

	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", errors.New("user_id not found in token")
	}

	sessionID, _ := claims["session_id"].(string)
	return uint64(rawID), sessionID, nil
}

// WizardFromToken extracts the wizard session from a parsed token
func WizardFromToken(token *jwt.Token) (string, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	if isWizard, _ := claims["wizard"].(bool); !isWizard {
		return "", errors.New("not a wizard token")
	}

	sessionID, ok := claims["wizard_session_id"].(string)
	if !ok {
		return "", errors.New("wizard_session_id not found in token")
	}

	return sessionID, nil
}
