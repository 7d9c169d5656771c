package realtime_test

import (
	"testing"

	"github.com/aibekov/task-tracker/internal/domain"
	"github.com/aibekov/task-tracker/internal/realtime"
)

func TestParseChannel(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"user.abc-123", "abc-123"},
		{"user.", ""},
		{"user", ""},
		{"presence-user.abc", ""},
		{"team.abc", ""},
		{"user.a.b", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := realtime.ParseChannel(tt.name); got != tt.want {
			t.Errorf("ParseChannel(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestChannelName_RoundTripsThroughParse(t *testing.T) {
	name := realtime.ChannelName("user-1")
	if got := realtime.ParseChannel(name); got != "user-1" {
		t.Errorf("ParseChannel(ChannelName()) = %q, want %q", got, "user-1")
	}
}

func TestAuthorize(t *testing.T) {
	owner := &domain.User{ID: "user-1"}

	if !realtime.Authorize(owner, "user.user-1") {
		t.Error("owner denied their own channel")
	}
	if realtime.Authorize(owner, "user.user-2") {
		t.Error("granted a foreign channel")
	}
	if realtime.Authorize(owner, "tasks.user-1") {
		t.Error("granted a malformed channel")
	}
	if realtime.Authorize(owner, "user.") {
		t.Error("granted an empty-id channel")
	}
}
