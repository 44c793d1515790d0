package domain_test

import (
	"testing"

	"chatserver/internal/domain"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestResolveChatType(t *testing.T) {
	tests := []struct {
		name    string
		members []int64
		chatNam *string
		public  bool
		actor   int64
		want    domain.ChatType
		wantErr error
	}{
		{"two members no name is single", []int64{2, 3}, nil, false, 2, domain.ChatTypeSingle, nil},
		{"three members no name is group", []int64{2, 3, 4}, nil, false, 2, domain.ChatTypeGroup, nil},
		{"named public chat is public channel", []int64{2, 3, 4}, strptr("general"), true, 2, domain.ChatTypePublicChannel, nil},
		{"named private chat is private channel", []int64{2, 3, 4}, strptr("general"), false, 2, domain.ChatTypePrivateChannel, nil},
		{"one member rejected", []int64{1}, nil, false, 1, "", domain.ErrTooFewMembers},
		{"actor outside members rejected", []int64{2, 3}, nil, false, 9, "", domain.ErrActorNotMember},
		{"short name rejected", []int64{2, 3}, strptr("ab"), false, 2, "", domain.ErrNameTooShort},
		{"large unnamed group rejected", []int64{1, 2, 3, 4, 5, 6, 7, 8, 9}, nil, false, 1, "", domain.ErrGroupNeedsName},
		{"large named group ok", []int64{1, 2, 3, 4, 5, 6, 7, 8, 9}, strptr("crowd"), false, 1, domain.ChatTypePrivateChannel, nil},
		{"duplicate members rejected", []int64{2, 2, 3}, nil, false, 2, "", domain.ErrDuplicateMembers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ResolveChatType(tt.members, tt.chatNam, tt.public, tt.actor)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveChatTypeDeterministic(t *testing.T) {
	members := []int64{2, 3, 4}
	first, err := domain.ResolveChatType(members, strptr("general"), true, 2)
	assert.NoError(t, err)

	for i := 0; i < 10; i++ {
		got, err := domain.ResolveChatType(members, strptr("general"), true, 2)
		assert.NoError(t, err)
		assert.Equal(t, first, got)
	}
}
