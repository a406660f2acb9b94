package domain

import "slices"

// Permission codes form a closed catalog. Only these values may ever be
// persisted on an account or invite.
const (
	PermSuperAdmin   = 0
	PermAdmin        = 1
	PermInvite       = 2
	PermModifyInvite = 3
	PermDeleteInvite = 4
	PermModifyUsers  = 5
	PermDeleteUsers  = 6
	PermAddNode      = 7
	PermModifyNode   = 8
	PermDeleteNode   = 9
)

// Permission describes a catalog entry. Name and Description exist for
// client UIs only; enforcement uses the code alone.
type Permission struct {
	Code        int    `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AssignablePermissions lists every permission that may be granted
// through invites or account updates. Super-admin is excluded: it is
// only ever self-assigned by the first signup into an empty store.
var AssignablePermissions = []Permission{
	{PermAdmin, "Admin", "This account is an admin."},
	{PermInvite, "Invite", "This account can invite other accounts."},
	{PermModifyInvite, "Modify Invite", "This account can modify invites of other accounts."},
	{PermDeleteInvite, "Delete Invite", "This account can delete invites of other accounts."},
	{PermModifyUsers, "Modify User", "This account can modify other accounts."},
	{PermDeleteUsers, "Delete Users", "This account can delete other accounts."},
	{PermAddNode, "Add Node", "This account can add new nodes."},
	{PermModifyNode, "Modify Node", "This account can modify nodes."},
	{PermDeleteNode, "Delete Node", "This account can delete nodes."},
}

// AdminPermissions is the convenience group for "any kind of admin".
var AdminPermissions = []int{PermSuperAdmin, PermAdmin}

var assignableCodes = func() []int {
	codes := make([]int, len(AssignablePermissions))
	for i, p := range AssignablePermissions {
		codes[i] = p.Code
	}
	return codes
}()

// FilterValid drops any code not in the assignable catalog. Every
// permission list arriving from a request body passes through here
// before storage, so arbitrary integers can never become privileges.
// A nil input stays nil, preserving the "leave untouched" meaning of
// nil in partial updates. The filter is idempotent.
func FilterValid(requested []int) []int {
	if requested == nil {
		return nil
	}
	valid := make([]int, 0, len(requested))
	for _, code := range requested {
		if slices.Contains(assignableCodes, code) {
			valid = append(valid, code)
		}
	}
	return valid
}
