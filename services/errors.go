package services

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrEmailTaken   = errors.New("user with email already exists")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)
