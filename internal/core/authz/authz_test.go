package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidshare/platform/internal/core/domain"
)

var (
	alice = &domain.Identity{UserID: "1", Username: "alice", Role: domain.RoleUser}
	bob   = &domain.Identity{UserID: "2", Username: "bob", Role: domain.RoleUser}
	carol = &domain.Identity{UserID: "3", Username: "carol", Role: domain.RoleAdmin}
)

func TestIsAdmin(t *testing.T) {
	assert.False(t, IsAdmin(nil))
	assert.False(t, IsAdmin(alice))
	assert.True(t, IsAdmin(carol))
}

func TestIsSelfOrAdmin(t *testing.T) {
	assert.True(t, IsSelfOrAdmin(alice, "1"))
	assert.False(t, IsSelfOrAdmin(bob, "1"))
	assert.True(t, IsSelfOrAdmin(carol, "1"))
	assert.False(t, IsSelfOrAdmin(nil, "1"))
	assert.False(t, IsSelfOrAdmin(&domain.Identity{Role: domain.RoleUser}, ""), "empty ids never match")
}

func TestIsAuthorOrAdmin(t *testing.T) {
	assert.True(t, IsAuthorOrAdmin(alice, "alice"))
	assert.False(t, IsAuthorOrAdmin(bob, "alice"))
	assert.True(t, IsAuthorOrAdmin(carol, "alice"))
	assert.False(t, IsAuthorOrAdmin(nil, domain.AnonymousAuthor))
}

func TestAuthorize(t *testing.T) {
	ownedByAlice := Resource{OwnerID: "1"}
	writtenByAlice := Resource{Author: "alice"}

	tests := []struct {
		name   string
		actor  *domain.Identity
		action Action
		res    Resource
		want   error
	}{
		{name: "anonymous views profile", actor: nil, action: ViewUser, res: ownedByAlice},
		{name: "anonymous posts comment", actor: nil, action: PostComment},
		{name: "anonymous cannot upload", actor: nil, action: UploadVideo, want: domain.ErrUnauthenticated},
		{name: "anonymous cannot list users", actor: nil, action: ListUsers, want: domain.ErrUnauthenticated},
		{name: "anonymous cannot delete comment", actor: nil, action: DeleteComment, res: writtenByAlice, want: domain.ErrUnauthenticated},

		{name: "user lists users", actor: alice, action: ListUsers, want: domain.ErrForbidden},
		{name: "admin lists users", actor: carol, action: ListUsers},
		{name: "user opens admin panel", actor: alice, action: AdminPanel, want: domain.ErrForbidden},
		{name: "admin opens admin panel", actor: carol, action: AdminPanel},
		{name: "user sets role", actor: alice, action: SetRole, res: ownedByAlice, want: domain.ErrForbidden},
		{name: "admin sets role", actor: carol, action: SetRole, res: ownedByAlice},

		{name: "self updates user", actor: alice, action: UpdateUser, res: ownedByAlice},
		{name: "other updates user", actor: bob, action: UpdateUser, res: ownedByAlice, want: domain.ErrForbidden},
		{name: "admin deletes user", actor: carol, action: DeleteUser, res: ownedByAlice},
		{name: "self deletes user", actor: alice, action: DeleteUser, res: ownedByAlice},
		{name: "other deletes user", actor: bob, action: DeleteUser, res: ownedByAlice, want: domain.ErrForbidden},

		{name: "user uploads", actor: bob, action: UploadVideo},
		{name: "owner updates video", actor: alice, action: UpdateVideo, res: ownedByAlice},
		{name: "non-owner deletes video", actor: bob, action: DeleteVideo, res: ownedByAlice, want: domain.ErrForbidden},
		{name: "admin deletes video", actor: carol, action: DeleteVideo, res: ownedByAlice},
		{name: "non-owner attaches code", actor: bob, action: AttachCode, res: ownedByAlice, want: domain.ErrForbidden},
		{name: "owner attaches code", actor: alice, action: AttachCode, res: ownedByAlice},

		{name: "author updates comment", actor: alice, action: UpdateComment, res: writtenByAlice},
		{name: "non-author deletes comment", actor: bob, action: DeleteComment, res: writtenByAlice, want: domain.ErrForbidden},
		{name: "admin deletes comment", actor: carol, action: DeleteComment, res: writtenByAlice},
		{
			name:   "anonymous comment is only editable by admin",
			actor:  bob,
			action: UpdateComment,
			res:    Resource{Author: domain.AnonymousAuthor},
			want:   domain.ErrForbidden,
		},

		{name: "unknown action", actor: carol, action: Action("video:transcode"), want: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, tt.action, tt.res)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRequireIdentity(t *testing.T) {
	require.ErrorIs(t, RequireIdentity(nil), domain.ErrUnauthenticated)
	require.NoError(t, RequireIdentity(bob))
}
