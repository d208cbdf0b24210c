package complaint_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"complaint-desk/internal/domain"
	"complaint-desk/internal/mocks"
	"complaint-desk/internal/outbox"
	"complaint-desk/internal/policy"
	"complaint-desk/internal/service/attachment"
	"complaint-desk/internal/service/complaint"
	"complaint-desk/internal/validation"
)

type fixture struct {
	complaints  *mocks.ComplaintRepository
	users       *mocks.UserRepository
	attachments *mocks.AttachmentService
	publisher   *mocks.Publisher
	svc         complaint.Service
}

func newFixture() *fixture {
	f := &fixture{
		complaints:  new(mocks.ComplaintRepository),
		users:       new(mocks.UserRepository),
		attachments: new(mocks.AttachmentService),
		publisher:   new(mocks.Publisher),
	}
	pol := policy.New([]domain.Role{domain.RoleAdmin, domain.RoleOfficer})
	f.svc = complaint.NewService(f.complaints, f.users, f.attachments, f.publisher, pol, validation.New(), zerolog.Nop())
	return f
}

func strPtr(s string) *string { return &s }

var (
	adminID   = domain.Identity{ID: uuid.New(), Role: domain.RoleAdmin, Department: "Administration"}
	officerID = domain.Identity{ID: uuid.New(), Role: domain.RoleOfficer, Department: "Customer Care"}
	handlerID = domain.Identity{ID: uuid.New(), Role: domain.RoleHandler, Department: "IT Department"}
)

func itHandler() *domain.User {
	return &domain.User{
		ID:         handlerID.ID,
		Name:       "Henry Handler",
		Email:      "henry@rnit.rw",
		Role:       domain.RoleHandler,
		Department: "IT Department",
	}
}

func validCreateInput() domain.CreateComplaintInput {
	return domain.CreateComplaintInput{
		CustomerName:  "  Jane Customer ",
		CustomerPhone: "0788000000",
		InquiryType:   "Technical Issue",
		Details:       "Cannot log in to the portal",
	}
}

func upload(name string) attachment.Upload {
	return attachment.Upload{
		Name:        name,
		Size:        5,
		ContentType: "text/plain",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("hello")), nil
		},
	}
}

func TestComplaintService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Routes by inquiry type", func(t *testing.T) {
		f := newFixture()
		files := []attachment.Upload{upload("a.txt")}
		stored := []domain.Attachment{{ID: uuid.New(), Filename: "complaints/x/a.txt"}}

		f.attachments.On("Check", mock.Anything).Return(files, nil)
		f.users.On("FindHandlerByDepartment", ctx, "IT Department").Return(itHandler(), nil)
		f.attachments.On("Store", ctx, mock.AnythingOfType("uuid.UUID"), mock.Anything).Return(stored, nil)
		f.complaints.On("CreateWithAttachments", ctx,
			mock.MatchedBy(func(c *domain.Complaint) bool {
				return c.CustomerName == "Jane Customer" &&
					c.Status == domain.StatusPending &&
					c.IsAssignedTo(handlerID.ID) &&
					c.CreatedBy == officerID.ID &&
					c.ForwardedFrom == nil
			}),
			stored,
			mock.MatchedBy(func(n *domain.Notification) bool {
				return n.UserID == handlerID.ID &&
					n.Type == domain.NotifAssignment &&
					n.Title == "New Complaint Assigned" &&
					n.Message == "You have been assigned a new complaint from Jane Customer regarding Technical Issue."
			}),
		).Return(nil)
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(m outbox.Message) bool {
			return m.Kind == outbox.KindComplaintAssigned && m.To == "henry@rnit.rw"
		})).Return(nil)

		res, err := f.svc.Create(ctx, officerID, validCreateInput(), files)

		require.NoError(t, err)
		assert.Equal(t, "IT Department", res.Department)
		assert.Equal(t, "Complaint registered successfully and forwarded to IT Department!", res.Message)
		f.complaints.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("Explicit forward records forwarder", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		in.ForwardTo = strPtr("Funds Administration")
		funds := &domain.User{ID: uuid.New(), Role: domain.RoleHandler, Department: "Funds Administration"}

		f.attachments.On("Check", mock.Anything).Return([]attachment.Upload{}, nil)
		f.users.On("FindHandlerByDepartment", ctx, "Funds Administration").Return(funds, nil)
		f.attachments.On("Store", ctx, mock.Anything, mock.Anything).Return([]domain.Attachment{}, nil)
		f.complaints.On("CreateWithAttachments", ctx, mock.MatchedBy(func(c *domain.Complaint) bool {
			return c.IsAssignedTo(funds.ID) && c.ForwardedFrom != nil && *c.ForwardedFrom == officerID.ID
		}), mock.Anything, mock.Anything).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		res, err := f.svc.Create(ctx, officerID, in, nil)

		require.NoError(t, err)
		assert.Equal(t, "Funds Administration", res.Department)
	})

	t.Run("Unknown forward department", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		in.ForwardTo = strPtr("Marketing")

		f.attachments.On("Check", mock.Anything).Return([]attachment.Upload{}, nil)
		f.users.On("FindHandlerByDepartment", ctx, "Marketing").Return(nil, nil)

		_, err := f.svc.Create(ctx, officerID, in, nil)

		assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
		f.attachments.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("No handler for routed department", func(t *testing.T) {
		f := newFixture()
		f.attachments.On("Check", mock.Anything).Return([]attachment.Upload{}, nil)
		f.users.On("FindHandlerByDepartment", ctx, "IT Department").Return(nil, nil)

		_, err := f.svc.Create(ctx, officerID, validCreateInput(), nil)
		assert.ErrorIs(t, err, domain.ErrNoHandlerAvailable)
	})

	t.Run("Field and file errors are aggregated", func(t *testing.T) {
		f := newFixture()
		files := []attachment.Upload{upload("virus.exe")}
		f.attachments.On("Check", mock.Anything).Return(nil, validation.Newf("files", "virus.exe has unsupported type application/x-msdownload"))

		_, err := f.svc.Create(ctx, officerID, domain.CreateComplaintInput{CustomerName: "   "}, files)

		require.True(t, validation.IsValidation(err))
		msg := err.Error()
		assert.Contains(t, msg, "customerName is required")
		assert.Contains(t, msg, "customerPhone is required")
		assert.Contains(t, msg, "inquiryType is required")
		assert.Contains(t, msg, "details is required")
		assert.Contains(t, msg, "virus.exe")
		f.users.AssertNotCalled(t, "FindHandlerByDepartment", mock.Anything, mock.Anything)
	})

	t.Run("Only officers create", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Create(ctx, handlerID, validCreateInput(), nil)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		_, err = f.svc.Create(ctx, adminID, validCreateInput(), nil)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Failed insert removes uploaded objects", func(t *testing.T) {
		f := newFixture()
		stored := []domain.Attachment{{ID: uuid.New(), Filename: "complaints/x/a.txt"}}

		f.attachments.On("Check", mock.Anything).Return([]attachment.Upload{upload("a.txt")}, nil)
		f.users.On("FindHandlerByDepartment", ctx, "IT Department").Return(itHandler(), nil)
		f.attachments.On("Store", ctx, mock.Anything, mock.Anything).Return(stored, nil)
		f.complaints.On("CreateWithAttachments", ctx, mock.Anything, stored, mock.Anything).Return(errors.New("tx failed"))
		f.attachments.On("Remove", ctx, stored).Return(nil)

		_, err := f.svc.Create(ctx, officerID, validCreateInput(), nil)

		assert.Error(t, err)
		f.attachments.AssertCalled(t, "Remove", ctx, stored)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Failed upload writes nothing", func(t *testing.T) {
		f := newFixture()
		f.attachments.On("Check", mock.Anything).Return([]attachment.Upload{upload("a.txt")}, nil)
		f.users.On("FindHandlerByDepartment", ctx, "IT Department").Return(itHandler(), nil)
		f.attachments.On("Store", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("minio down"))

		_, err := f.svc.Create(ctx, officerID, validCreateInput(), nil)

		assert.Error(t, err)
		f.complaints.AssertNotCalled(t, "CreateWithAttachments", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Publish failure does not fail the request", func(t *testing.T) {
		f := newFixture()
		f.attachments.On("Check", mock.Anything).Return([]attachment.Upload{}, nil)
		f.users.On("FindHandlerByDepartment", ctx, "IT Department").Return(itHandler(), nil)
		f.attachments.On("Store", ctx, mock.Anything, mock.Anything).Return([]domain.Attachment{}, nil)
		f.complaints.On("CreateWithAttachments", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(outbox.ErrQueueFull)

		_, err := f.svc.Create(ctx, officerID, validCreateInput(), nil)
		assert.NoError(t, err)
	})
}

func pendingComplaint() *domain.Complaint {
	assignee := handlerID.ID
	return &domain.Complaint{
		ID:           uuid.New(),
		CustomerName: "Jane Customer",
		InquiryType:  "Technical Issue",
		Status:       domain.StatusPending,
		AssignedTo:   &assignee,
		CreatedBy:    officerID.ID,
	}
}

func creatorSummaries() map[uuid.UUID]domain.UserSummary {
	return map[uuid.UUID]domain.UserSummary{
		officerID.ID: {ID: officerID.ID, Name: "Olive Officer", Email: "olive@rnit.rw"},
	}
}

func TestComplaintService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Resolved requires resolution", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Update(ctx, handlerID, uuid.New(), domain.UpdateComplaintInput{Status: domain.StatusResolved, Resolution: strPtr("  ")})

		require.True(t, validation.IsValidation(err))
		f.complaints.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Status required", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Update(ctx, handlerID, uuid.New(), domain.UpdateComplaintInput{})
		assert.True(t, validation.IsValidation(err))
	})

	t.Run("Missing complaint", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.complaints.On("GetByID", ctx, id).Return(nil, nil)

		_, err := f.svc.Update(ctx, adminID, id, domain.UpdateComplaintInput{Status: domain.StatusInProgress})
		assert.ErrorIs(t, err, domain.ErrComplaintNotFound)
	})

	t.Run("Handler not assigned is forbidden", func(t *testing.T) {
		f := newFixture()
		c := pendingComplaint()
		c.AssignedTo = nil
		f.complaints.On("GetByID", ctx, c.ID).Return(c, nil)

		_, err := f.svc.Update(ctx, handlerID, c.ID, domain.UpdateComplaintInput{Status: domain.StatusInProgress})

		assert.ErrorIs(t, err, domain.ErrForbidden)
		f.complaints.AssertNotCalled(t, "ApplyTransition", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Pending to in progress notifies creator", func(t *testing.T) {
		f := newFixture()
		c := pendingComplaint()
		f.complaints.On("GetByID", ctx, c.ID).Return(c, nil)
		f.complaints.On("ApplyTransition", ctx, c, mock.MatchedBy(func(ns []*domain.Notification) bool {
			return len(ns) == 1 &&
				ns[0].UserID == officerID.ID &&
				ns[0].Type == domain.NotifUpdate &&
				ns[0].Title == "Complaint Updated" &&
				strings.HasSuffix(ns[0].Message, "status updated to In Progress.")
		})).Return(nil)
		f.users.On("GetSummaries", ctx, []uuid.UUID{officerID.ID, handlerID.ID}).Return(creatorSummaries(), nil)
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(m outbox.Message) bool {
			return m.Kind == outbox.KindComplaintStatus && m.To == "olive@rnit.rw" && m.Status == domain.StatusInProgress
		})).Return(nil)

		updated, err := f.svc.Update(ctx, handlerID, c.ID, domain.UpdateComplaintInput{Status: domain.StatusInProgress})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, updated.Status)
		assert.True(t, updated.IsAssignedTo(handlerID.ID))
		f.complaints.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("In progress again notifies nobody", func(t *testing.T) {
		f := newFixture()
		c := pendingComplaint()
		c.Status = domain.StatusInProgress
		f.complaints.On("GetByID", ctx, c.ID).Return(c, nil)
		f.complaints.On("ApplyTransition", ctx, c, []*domain.Notification(nil)).Return(nil)

		_, err := f.svc.Update(ctx, handlerID, c.ID, domain.UpdateComplaintInput{Status: domain.StatusInProgress})

		require.NoError(t, err)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Handler resolves and keeps assignment", func(t *testing.T) {
		f := newFixture()
		c := pendingComplaint()
		f.complaints.On("GetByID", ctx, c.ID).Return(c, nil)
		f.complaints.On("ApplyTransition", ctx, c, mock.MatchedBy(func(ns []*domain.Notification) bool {
			return len(ns) == 1 &&
				ns[0].Type == domain.NotifResolution &&
				ns[0].Title == "Complaint Resolved" &&
				strings.HasSuffix(ns[0].Message, "has been resolved by IT Department.")
		})).Return(nil)
		f.users.On("GetSummaries", ctx, []uuid.UUID{officerID.ID, handlerID.ID}).Return(creatorSummaries(), nil)
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(m outbox.Message) bool {
			return m.Resolution == "Reset the password" && m.Department == "IT Department"
		})).Return(nil)

		updated, err := f.svc.Update(ctx, handlerID, c.ID, domain.UpdateComplaintInput{
			Status:     domain.StatusResolved,
			Resolution: strPtr(" Reset the password "),
		})

		require.NoError(t, err)
		assert.True(t, updated.IsAssignedTo(handlerID.ID))
		assert.Equal(t, "Reset the password", *updated.Resolution)
	})

	t.Run("Officer resolving clears assignee", func(t *testing.T) {
		f := newFixture()
		c := pendingComplaint()
		f.complaints.On("GetByID", ctx, c.ID).Return(c, nil)
		f.complaints.On("ApplyTransition", ctx, c, mock.Anything).Return(nil)
		f.users.On("GetSummaries", ctx, []uuid.UUID{officerID.ID}).Return(creatorSummaries(), nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		updated, err := f.svc.Update(ctx, officerID, c.ID, domain.UpdateComplaintInput{
			Status:     domain.StatusResolved,
			Resolution: strPtr("Handled on the phone"),
			ForwardTo:  strPtr(handlerID.ID.String()),
		})

		require.NoError(t, err)
		assert.Nil(t, updated.AssignedTo)
		f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Forward reassigns and notifies new handler", func(t *testing.T) {
		f := newFixture()
		c := pendingComplaint()
		target := &domain.User{ID: uuid.New(), Name: "Fiona Funds", Email: "fiona@rnit.rw", Role: domain.RoleHandler}

		f.complaints.On("GetByID", ctx, c.ID).Return(c, nil)
		f.users.On("GetByID", ctx, target.ID).Return(target, nil)
		f.complaints.On("ApplyTransition", ctx, c, mock.MatchedBy(func(ns []*domain.Notification) bool {
			return len(ns) == 2 && ns[1].UserID == target.ID && ns[1].Type == domain.NotifAssignment
		})).Return(nil)
		f.users.On("GetSummaries", ctx, []uuid.UUID{officerID.ID, handlerID.ID}).Return(creatorSummaries(), nil)
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(m outbox.Message) bool {
			return m.Kind == outbox.KindComplaintStatus
		})).Return(nil).Once()
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(m outbox.Message) bool {
			return m.Kind == outbox.KindComplaintAssigned && m.To == "fiona@rnit.rw"
		})).Return(nil).Once()

		updated, err := f.svc.Update(ctx, handlerID, c.ID, domain.UpdateComplaintInput{
			Status:    domain.StatusInProgress,
			ForwardTo: strPtr(target.ID.String()),
		})

		require.NoError(t, err)
		assert.True(t, updated.IsAssignedTo(target.ID))
		require.NotNil(t, updated.ForwardedFrom)
		assert.Equal(t, handlerID.ID, *updated.ForwardedFrom)
		f.publisher.AssertExpectations(t)
	})

	t.Run("Forward to non handler rejected", func(t *testing.T) {
		f := newFixture()
		c := pendingComplaint()
		target := &domain.User{ID: uuid.New(), Role: domain.RoleOfficer}

		f.complaints.On("GetByID", ctx, c.ID).Return(c, nil)
		f.users.On("GetByID", ctx, target.ID).Return(target, nil)

		_, err := f.svc.Update(ctx, adminID, c.ID, domain.UpdateComplaintInput{Status: domain.StatusPending, ForwardTo: strPtr(target.ID.String())})

		assert.ErrorIs(t, err, domain.ErrForwardTargetInvalid)
		f.complaints.AssertNotCalled(t, "ApplyTransition", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Forward to missing user rejected", func(t *testing.T) {
		f := newFixture()
		c := pendingComplaint()
		missing := uuid.New()

		f.complaints.On("GetByID", ctx, c.ID).Return(c, nil)
		f.users.On("GetByID", ctx, missing).Return(nil, nil)

		_, err := f.svc.Update(ctx, adminID, c.ID, domain.UpdateComplaintInput{Status: domain.StatusPending, ForwardTo: strPtr(missing.String())})
		assert.ErrorIs(t, err, domain.ErrForwardTargetInvalid)
	})

	t.Run("Blank forward target updates in place", func(t *testing.T) {
		f := newFixture()
		c := pendingComplaint()
		c.Status = domain.StatusInProgress
		f.complaints.On("GetByID", ctx, c.ID).Return(c, nil)
		f.complaints.On("ApplyTransition", ctx, c, []*domain.Notification(nil)).Return(nil)

		updated, err := f.svc.Update(ctx, officerID, c.ID, domain.UpdateComplaintInput{
			Status:    domain.StatusInProgress,
			ForwardTo: strPtr("  "),
		})

		require.NoError(t, err)
		assert.True(t, updated.IsAssignedTo(handlerID.ID))
		assert.Nil(t, updated.ForwardedFrom)
		f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Malformed forward target", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Update(ctx, officerID, uuid.New(), domain.UpdateComplaintInput{
			Status:    domain.StatusInProgress,
			ForwardTo: strPtr("not-a-user"),
		})

		require.True(t, validation.IsValidation(err))
		assert.Equal(t, "forwardTo must be a valid user id", err.Error())
		f.complaints.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Resolution names the department on record", func(t *testing.T) {
		f := newFixture()
		c := pendingComplaint()
		summaries := creatorSummaries()
		summaries[handlerID.ID] = domain.UserSummary{ID: handlerID.ID, Name: "Henry Handler", Department: "Funds Administration"}

		f.complaints.On("GetByID", ctx, c.ID).Return(c, nil)
		f.users.On("GetSummaries", ctx, []uuid.UUID{officerID.ID, handlerID.ID}).Return(summaries, nil)
		f.complaints.On("ApplyTransition", ctx, c, mock.MatchedBy(func(ns []*domain.Notification) bool {
			return len(ns) == 1 && strings.HasSuffix(ns[0].Message, "has been resolved by Funds Administration.")
		})).Return(nil)
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(m outbox.Message) bool {
			return m.Department == "Funds Administration" && m.To == "olive@rnit.rw"
		})).Return(nil)

		_, err := f.svc.Update(ctx, handlerID, c.ID, domain.UpdateComplaintInput{
			Status:     domain.StatusResolved,
			Resolution: strPtr("Refund issued"),
		})

		require.NoError(t, err)
		f.complaints.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("Participant lookup failure still applies the update", func(t *testing.T) {
		f := newFixture()
		c := pendingComplaint()

		f.complaints.On("GetByID", ctx, c.ID).Return(c, nil)
		f.users.On("GetSummaries", ctx, mock.Anything).Return(nil, errors.New("connection reset"))
		f.complaints.On("ApplyTransition", ctx, c, mock.MatchedBy(func(ns []*domain.Notification) bool {
			return len(ns) == 1 && strings.HasSuffix(ns[0].Message, "has been resolved by IT Department.")
		})).Return(nil)

		_, err := f.svc.Update(ctx, handlerID, c.ID, domain.UpdateComplaintInput{
			Status:     domain.StatusResolved,
			Resolution: strPtr("Rebooted"),
		})

		require.NoError(t, err)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestComplaintService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes rows then objects", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		removed := []domain.Attachment{{ID: uuid.New(), Filename: "complaints/a"}}
		f.complaints.On("Delete", ctx, id).Return(removed, nil)
		f.attachments.On("Remove", ctx, removed).Return(errors.New("object gone"))

		err := f.svc.Delete(ctx, adminID, id)

		assert.NoError(t, err)
		f.attachments.AssertExpectations(t)
	})

	t.Run("Missing complaint", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.complaints.On("Delete", ctx, id).Return(nil, domain.ErrComplaintNotFound)

		err := f.svc.Delete(ctx, officerID, id)
		assert.ErrorIs(t, err, domain.ErrComplaintNotFound)
	})

	t.Run("Handler forbidden", func(t *testing.T) {
		f := newFixture()

		err := f.svc.Delete(ctx, handlerID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestComplaintService_Read(t *testing.T) {
	ctx := context.Background()

	t.Run("Handler list is filtered to own assignments", func(t *testing.T) {
		f := newFixture()
		c := pendingComplaint()
		f.complaints.On("List", ctx, &handlerID.ID).Return([]domain.Complaint{*c}, nil)
		f.complaints.On("ListAttachments", ctx, []uuid.UUID{c.ID}).Return([]domain.Attachment{
			{ID: uuid.New(), ComplaintID: c.ID, OriginalFilename: "a.txt"},
		}, nil)
		f.users.On("GetSummaries", ctx, mock.Anything).Return(map[uuid.UUID]domain.UserSummary{
			handlerID.ID: {ID: handlerID.ID, Name: "Henry Handler", Department: "IT Department"},
			officerID.ID: {ID: officerID.ID, Name: "Olive Officer", Department: "Customer Care"},
		}, nil)

		views, err := f.svc.List(ctx, handlerID)

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Len(t, views[0].Attachments, 1)
		require.NotNil(t, views[0].AssignedToUser)
		assert.Equal(t, "IT Department", views[0].AssignedToUser.Department)
		require.NotNil(t, views[0].CreatedByUser)
		assert.Equal(t, "Olive Officer", views[0].CreatedByUser.Name)
		assert.Empty(t, views[0].CreatedByUser.Department)
	})

	t.Run("Admin sees all and dangling users are null", func(t *testing.T) {
		f := newFixture()
		c := pendingComplaint()
		f.complaints.On("List", ctx, (*uuid.UUID)(nil)).Return([]domain.Complaint{*c}, nil)
		f.complaints.On("ListAttachments", ctx, mock.Anything).Return([]domain.Attachment{}, nil)
		f.users.On("GetSummaries", ctx, mock.Anything).Return(map[uuid.UUID]domain.UserSummary{}, nil)

		views, err := f.svc.List(ctx, adminID)

		require.NoError(t, err)
		assert.NotNil(t, views[0].Attachments)
		assert.Nil(t, views[0].AssignedToUser)
		assert.Nil(t, views[0].CreatedByUser)
	})

	t.Run("Empty list skips enrichment", func(t *testing.T) {
		f := newFixture()
		f.complaints.On("List", ctx, (*uuid.UUID)(nil)).Return([]domain.Complaint{}, nil)

		views, err := f.svc.List(ctx, officerID)

		require.NoError(t, err)
		assert.Empty(t, views)
		f.complaints.AssertNotCalled(t, "ListAttachments", mock.Anything, mock.Anything)
	})

	t.Run("Creator handler may read", func(t *testing.T) {
		f := newFixture()
		c := pendingComplaint()
		c.AssignedTo = nil
		c.CreatedBy = handlerID.ID
		f.complaints.On("GetByID", ctx, c.ID).Return(c, nil)
		f.complaints.On("ListAttachments", ctx, mock.Anything).Return([]domain.Attachment{}, nil)
		f.users.On("GetSummaries", ctx, mock.Anything).Return(map[uuid.UUID]domain.UserSummary{}, nil)

		view, err := f.svc.Get(ctx, handlerID, c.ID)

		require.NoError(t, err)
		assert.Equal(t, c.ID, view.ID)
	})

	t.Run("Unrelated handler forbidden", func(t *testing.T) {
		f := newFixture()
		c := pendingComplaint()
		other := domain.Identity{ID: uuid.New(), Role: domain.RoleHandler}
		f.complaints.On("GetByID", ctx, c.ID).Return(c, nil)

		_, err := f.svc.Get(ctx, other, c.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Missing complaint", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.complaints.On("GetByID", ctx, id).Return(nil, nil)

		_, err := f.svc.Get(ctx, adminID, id)
		assert.ErrorIs(t, err, domain.ErrComplaintNotFound)
	})
}
