package service

import (
	"errors"

	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/sentinel"
)

// Error wrapping helpers translate sentinel errors to domain errors.

func wrapRequestErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "registration request not found")
	}
	if errors.Is(err, sentinel.ErrAlreadyUsed) {
		return alreadyProcessed()
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}

func wrapLinkErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "resident not found")
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.New(dErrors.CodeAlreadyLinked, "resident is already linked to an account")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "account is already linked to another resident")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to link resident")
	}
}

func wrapAccountErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "account not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}

func alreadyProcessed() error {
	return dErrors.New(dErrors.CodeAlreadyProcessed, "registration already processed")
}
