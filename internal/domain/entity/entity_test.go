package entity

import "testing"

func TestParseRole(t *testing.T) {
	for _, s := range []string{"Donor", "Volunteer", "Admin"} {
		if _, err := ParseRole(s); err != nil {
			t.Errorf("ParseRole(%q) unexpected error: %v", s, err)
		}
	}
	for _, s := range []string{"", "donor", "ADMIN", "superuser"} {
		if _, err := ParseRole(s); err == nil {
			t.Errorf("ParseRole(%q) expected error, got nil", s)
		}
	}
}

func TestParseAccountStatus(t *testing.T) {
	for _, s := range []string{"active", "blocked"} {
		if _, err := ParseAccountStatus(s); err != nil {
			t.Errorf("ParseAccountStatus(%q) unexpected error: %v", s, err)
		}
	}
	for _, s := range []string{"", "Active", "suspended"} {
		if _, err := ParseAccountStatus(s); err == nil {
			t.Errorf("ParseAccountStatus(%q) expected error, got nil", s)
		}
	}
}

func TestAccountStatusCanTransition(t *testing.T) {
	cases := []struct {
		from, to AccountStatus
		want     bool
	}{
		{AccountActive, AccountBlocked, true},
		{AccountBlocked, AccountActive, true},
		{AccountActive, AccountActive, false},
		{AccountBlocked, AccountBlocked, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.want {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestParseRequestStatus(t *testing.T) {
	for _, s := range []string{"pending", "inprogress", "done"} {
		if _, err := ParseRequestStatus(s); err != nil {
			t.Errorf("ParseRequestStatus(%q) unexpected error: %v", s, err)
		}
	}
	for _, s := range []string{"", "Pending", "in-progress", "cancelled"} {
		if _, err := ParseRequestStatus(s); err == nil {
			t.Errorf("ParseRequestStatus(%q) expected error, got nil", s)
		}
	}
}

func TestRequestStatusCanTransition(t *testing.T) {
	cases := []struct {
		from, to RequestStatus
		want     bool
	}{
		{RequestPending, RequestInProgress, true},
		{RequestInProgress, RequestDone, true},
		{RequestPending, RequestDone, false},
		{RequestPending, RequestPending, false},
		{RequestInProgress, RequestPending, false},
		{RequestInProgress, RequestInProgress, false},
		{RequestDone, RequestPending, false},
		{RequestDone, RequestInProgress, false},
		{RequestDone, RequestDone, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.want {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
