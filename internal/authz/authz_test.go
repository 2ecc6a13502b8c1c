package authz

import "testing"

func TestAllowList(t *testing.T) {
	list := New([]string{"admin-1", "admin-2", ""})

	tests := []struct {
		actorID string
		want    bool
	}{
		{"admin-1", true},
		{"admin-2", true},
		{"someone-else", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := list.IsAuthorized(tt.actorID); got != tt.want {
			t.Errorf("IsAuthorized(%q) = %v, want %v", tt.actorID, got, tt.want)
		}
	}
}

func TestEmptyAllowList(t *testing.T) {
	list := New(nil)
	if list.IsAuthorized("anyone") {
		t.Error("empty allow list authorized an actor")
	}
}
