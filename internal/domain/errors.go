package domain

import "errors"

var (
	ErrHostNotFound    = errors.New("host not found")
	ErrSecretNotFound  = errors.New("secret not found")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrConnection      = errors.New("connection error")
	ErrSessionNotFound = errors.New("session not found")
	ErrListFailed      = errors.New("list failed")
	ErrListError       = errors.New("list error")
	ErrTransferFailed  = errors.New("transfer failed")
	ErrTransferError   = errors.New("transfer error")
	ErrUserCanceled    = errors.New("user canceled")
	ErrAuthFailed      = errors.New("authentication failed")
	ErrKeychain        = errors.New("keychain error")
)
