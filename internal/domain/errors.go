package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName    = errors.New("invalid name")
	ErrInvalidDomain  = errors.New("invalid domain")
	ErrInvalidTTL     = errors.New("invalid TTL")
	ErrInvalidType    = errors.New("invalid type")
	ErrInvalidPrio    = errors.New("invalid priority")
	ErrInvalidPolicy  = errors.New("invalid autorenew policy")
	ErrEmptyValue     = errors.New("empty value")
	ErrRequired       = errors.New("required field missing")
	ErrMissingSecret  = errors.New("missing secret reference")
	ErrMissingRef     = errors.New("missing reference")
	ErrRecordConflict = errors.New("duplicate dns record")

	ErrConfigReadFailed   = errors.New("config read failed")
	ErrConfigParseFailed  = errors.New("config parse failed")
	ErrConfigValidateFail = errors.New("config validation failed")

	ErrStateReadFailed    = errors.New("state read failed")
	ErrStateWriteFailed   = errors.New("state write failed")
	ErrStateSerializeFail = errors.New("state serialization failed")

	ErrAuthFailed      = errors.New("authentication failed")
	ErrSessionExpired  = errors.New("session expired")
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrDomainNotFound  = errors.New("domain not found")
	ErrRecordNotFound  = errors.New("dns record not found")
	ErrZoneNotFound    = errors.New("dns zone not found")
	ErrPollEmpty       = errors.New("poll queue empty")
	ErrTransient       = errors.New("transient registrar error")
	ErrInvalidResponse = errors.New("invalid response from registrar")

	ErrBackupConnectFailed = errors.New("backup host connection failed")
	ErrBackupPushFailed    = errors.New("backup push failed")
)

func RequiredField(field string) error {
	return fmt.Errorf("%w: %s", ErrRequired, field)
}

func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

func WrapEntity(entity, name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s[%s]: %w", entity, name, err)
}
