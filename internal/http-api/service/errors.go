package service

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("conflicting resource already exists")
	ErrValidation         = errors.New("invalid input")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrEmailInUse         = errors.New("email already registered")
	ErrUsernameInUse      = errors.New("username already in use")
)
