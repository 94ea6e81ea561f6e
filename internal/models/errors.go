package models

import (
	"errors"
)

var ErrRequestNotFound = errors.New("request not found")
var ErrProjectNotFound = errors.New("project not found")
var ErrInvoiceNotFound = errors.New("invoice not found")
var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrInvalidPassword    = errors.New("models: invalid password")
	ErrRequestAccepted    = errors.New("request already accepted")
	ErrNotOwner           = errors.New("record belongs to another user")
	ErrContactNotFound    = errors.New("contact submission not found")
)
