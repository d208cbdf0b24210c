package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Complaint    ComplaintRepository
	Notification NotificationRepository
	Report       ReportRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Complaint:    NewComplaintRepository(db),
		Notification: NewNotificationRepository(db),
		Report:       NewReportRepository(db),
	}
}

// withTx runs fn inside a transaction, committing only if fn succeeds.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
