package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"complaint-desk/internal/domain"
)

type ComplaintRepository interface {
	// CreateWithAttachments stores a complaint, its attachment rows and the
	// assignee's notification in one transaction.
	CreateWithAttachments(ctx context.Context, complaint *domain.Complaint, attachments []domain.Attachment, notif *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Complaint, error)
	// List returns complaints newest first, limited to one assignee when
	// assignedTo is set.
	List(ctx context.Context, assignedTo *uuid.UUID) ([]domain.Complaint, error)
	// ApplyTransition persists a status change together with the
	// notifications it triggers.
	ApplyTransition(ctx context.Context, complaint *domain.Complaint, notifs []*domain.Notification) error
	// Delete removes a complaint and its attachment rows, returning the
	// removed attachments so their objects can be cleaned up.
	Delete(ctx context.Context, id uuid.UUID) ([]domain.Attachment, error)
	ListAttachments(ctx context.Context, complaintIDs []uuid.UUID) ([]domain.Attachment, error)
}

type complaintRepository struct {
	db *sqlx.DB
}

func NewComplaintRepository(db *sqlx.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

func (r *complaintRepository) CreateWithAttachments(ctx context.Context, c *domain.Complaint, attachments []domain.Attachment, notif *domain.Notification) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO complaints (
				id, customer_name, customer_phone, channel, inquiry_type, details, status,
				assigned_to, created_by, attempted_resolution, resolution_details, forwarded_from
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING created_at, updated_at`

		err := tx.QueryRowxContext(ctx, query,
			c.ID, c.CustomerName, c.CustomerPhone, c.Channel, c.InquiryType, c.Details, c.Status,
			c.AssignedTo, c.CreatedBy, c.AttemptedResolution, c.ResolutionDetails, c.ForwardedFrom,
		).Scan(&c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return err
		}

		for i := range attachments {
			if err := insertAttachment(ctx, tx, &attachments[i]); err != nil {
				return err
			}
		}

		if notif != nil {
			return insertNotification(ctx, tx, notif)
		}
		return nil
	})
}

func (r *complaintRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Complaint, error) {
	var complaint domain.Complaint
	query := `SELECT * FROM complaints WHERE id = $1`

	err := r.db.GetContext(ctx, &complaint, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) List(ctx context.Context, assignedTo *uuid.UUID) ([]domain.Complaint, error) {
	complaints := []domain.Complaint{}

	if assignedTo != nil {
		query := `SELECT * FROM complaints WHERE assigned_to = $1 ORDER BY created_at DESC`
		err := r.db.SelectContext(ctx, &complaints, query, *assignedTo)
		return complaints, err
	}

	query := `SELECT * FROM complaints ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &complaints, query)
	return complaints, err
}

func (r *complaintRepository) ApplyTransition(ctx context.Context, c *domain.Complaint, notifs []*domain.Notification) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE complaints
			SET status = $2, resolution = $3, assigned_to = $4, forwarded_from = $5, updated_at = NOW()
			WHERE id = $1
			RETURNING updated_at`

		err := tx.QueryRowxContext(ctx, query,
			c.ID, c.Status, c.Resolution, c.AssignedTo, c.ForwardedFrom,
		).Scan(&c.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrComplaintNotFound
		}
		if err != nil {
			return err
		}

		for _, n := range notifs {
			if err := insertNotification(ctx, tx, n); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *complaintRepository) Delete(ctx context.Context, id uuid.UUID) ([]domain.Attachment, error) {
	var removed []domain.Attachment

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `DELETE FROM attachments WHERE complaint_id = $1 RETURNING *`
		if err := sqlx.SelectContext(ctx, tx, &removed, query, id); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM complaints WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return requireAffected(res, domain.ErrComplaintNotFound)
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *complaintRepository) ListAttachments(ctx context.Context, complaintIDs []uuid.UUID) ([]domain.Attachment, error) {
	attachments := []domain.Attachment{}
	if len(complaintIDs) == 0 {
		return attachments, nil
	}

	query := `
		SELECT * FROM attachments
		WHERE complaint_id = ANY($1::uuid[])
		ORDER BY created_at, id`
	err := r.db.SelectContext(ctx, &attachments, query, pq.Array(uuidStrings(complaintIDs)))
	return attachments, err
}

func insertAttachment(ctx context.Context, q sqlx.QueryerContext, a *domain.Attachment) error {
	query := `
		INSERT INTO attachments (id, complaint_id, filename, original_filename, file_type, file_size, file_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return q.QueryRowxContext(ctx, query,
		a.ID, a.ComplaintID, a.Filename, a.OriginalFilename, a.FileType, a.FileSize, a.FileURL,
	).Scan(&a.CreatedAt)
}
