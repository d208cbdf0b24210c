// Package policy decides who may perform which action. Every access decision
// in the API goes through Policy.Authorize so the rules live in one table.
package policy

import (
	"github.com/google/uuid"

	"complaint-desk/internal/domain"
)

type Action string

const (
	ComplaintCreate Action = "complaint:create"
	ComplaintList   Action = "complaint:list"
	ComplaintRead   Action = "complaint:read"
	ComplaintUpdate Action = "complaint:update"
	ComplaintDelete Action = "complaint:delete"

	UserList       Action = "user:list"
	UserCreate     Action = "user:create"
	UserRead       Action = "user:read"
	UserUpdate     Action = "user:update"
	UserChangeRole Action = "user:change_role"
	UserDelete     Action = "user:delete"

	ReportRead Action = "report:read"
)

// Facts describe the resource an action targets. Zero values mean the fact
// does not apply.
type Facts struct {
	// SubjectUserID is the user record being read or modified.
	SubjectUserID uuid.UUID
	// Complaint is the complaint being read or modified.
	Complaint *domain.Complaint
}

type rule func(id domain.Identity, f Facts) bool

type Policy struct {
	rules map[Action]rule
}

// New builds the policy table. deleteRoles lists the roles allowed to delete
// complaints.
func New(deleteRoles []domain.Role) *Policy {
	return &Policy{
		rules: map[Action]rule{
			ComplaintCreate: roles(domain.RoleOfficer),
			ComplaintList:   roles(domain.RoleAdmin, domain.RoleOfficer, domain.RoleHandler),
			ComplaintRead: anyOf(
				roles(domain.RoleAdmin, domain.RoleOfficer),
				allOf(roles(domain.RoleHandler), anyOf(isAssignee, isCreator)),
			),
			ComplaintUpdate: anyOf(
				roles(domain.RoleAdmin, domain.RoleOfficer),
				allOf(roles(domain.RoleHandler), isAssignee),
			),
			ComplaintDelete: roles(deleteRoles...),

			UserList:       roles(domain.RoleAdmin),
			UserCreate:     roles(domain.RoleAdmin),
			UserRead:       anyOf(roles(domain.RoleAdmin), isSelf),
			UserUpdate:     anyOf(roles(domain.RoleAdmin), isSelf),
			UserChangeRole: roles(domain.RoleAdmin),
			UserDelete:     roles(domain.RoleAdmin),

			ReportRead: roles(domain.RoleAdmin),
		},
	}
}

// Allowed reports whether id may perform action. Unknown actions are denied.
func (p *Policy) Allowed(id domain.Identity, action Action, f Facts) bool {
	r, ok := p.rules[action]
	if !ok {
		return false
	}
	return r(id, f)
}

// Authorize is Allowed returning domain.ErrForbidden on denial.
func (p *Policy) Authorize(id domain.Identity, action Action, f Facts) error {
	if !p.Allowed(id, action, f) {
		return domain.ErrForbidden
	}
	return nil
}

func roles(allowed ...domain.Role) rule {
	set := make(map[domain.Role]bool, len(allowed))
	for _, r := range allowed {
		set[r] = true
	}
	return func(id domain.Identity, _ Facts) bool {
		return set[id.Role]
	}
}

func anyOf(rules ...rule) rule {
	return func(id domain.Identity, f Facts) bool {
		for _, r := range rules {
			if r(id, f) {
				return true
			}
		}
		return false
	}
}

func allOf(a, b rule) rule {
	return func(id domain.Identity, f Facts) bool {
		return a(id, f) && b(id, f)
	}
}

func isAssignee(id domain.Identity, f Facts) bool {
	return f.Complaint != nil && f.Complaint.IsAssignedTo(id.ID)
}

func isCreator(id domain.Identity, f Facts) bool {
	return f.Complaint != nil && f.Complaint.CreatedBy == id.ID
}

func isSelf(id domain.Identity, f Facts) bool {
	return f.SubjectUserID != uuid.Nil && f.SubjectUserID == id.ID
}
