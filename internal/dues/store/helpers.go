package store

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	id "gatehouse/pkg/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func nullAccount(v *id.AccountID) any {
	if v == nil {
		return nil
	}
	return uuid.UUID(*v)
}

func nullPayment(v *id.PaymentID) any {
	if v == nil {
		return nil
	}
	return uuid.UUID(*v)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
