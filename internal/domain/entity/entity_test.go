package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want ComplaintStatus
		ok   bool
	}{
		{"Pending", StatusPending, true},
		{"Resolved", StatusResolved, true},
		{"pending", "", false},
		{"Closed", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseStatus(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRoleFor(t *testing.T) {
	admin := &User{Email: "admin@x.com"}
	alice := &User{Email: "alice@x.com"}

	assert.Equal(t, RoleAdmin, RoleFor(admin, "admin@x.com"))
	assert.Equal(t, RoleUser, RoleFor(alice, "admin@x.com"))
	// case-sensitive by design of the stored email
	assert.Equal(t, RoleUser, RoleFor(&User{Email: "Admin@x.com"}, "admin@x.com"))
	assert.Equal(t, RoleUser, RoleFor(&User{Email: ""}, ""))
	assert.False(t, IsAdmin(nil, "admin@x.com"))
}
