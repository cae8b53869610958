package models

import (
	"testing"
	"time"
)

func TestAppointmentDerive(t *testing.T) {
	date := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	canceled := date.Add(-24 * time.Hour)

	tests := []struct {
		name           string
		now            time.Time
		canceledAt     *time.Time
		past, cancelOK bool
	}{
		{"well ahead", date.Add(-3 * time.Hour), nil, false, true},
		{"exactly two hours before", date.Add(-2 * time.Hour), nil, false, true},
		{"inside the window", date.Add(-119 * time.Minute), nil, false, false},
		{"after the date", date.Add(time.Minute), nil, true, false},
		{"canceled", date.Add(-3 * time.Hour), &canceled, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := Appointment{Date: date, CanceledAt: tc.canceledAt}
			a.Derive(tc.now)
			if a.Past != tc.past || a.Cancelable != tc.cancelOK {
				t.Fatalf("past=%v cancelable=%v, want %v %v", a.Past, a.Cancelable, tc.past, tc.cancelOK)
			}
		})
	}
}

func TestRefreshTokenUsable(t *testing.T) {
	now := time.Now()
	if !(&RefreshToken{ExpiresAt: now.Add(time.Minute)}).Usable(now) {
		t.Fatal("fresh token not usable")
	}
	if (&RefreshToken{ExpiresAt: now.Add(time.Minute), IsRevoked: true}).Usable(now) {
		t.Fatal("revoked token usable")
	}
	if (&RefreshToken{ExpiresAt: now}).Usable(now) {
		t.Fatal("expired token usable")
	}
}

func TestFileURL(t *testing.T) {
	defer SetFilesBaseURL(filesBaseURL)
	SetFilesBaseURL("https://api.example.com/files/")

	f := File{Path: "abc.png"}
	f.SetURL()
	if f.URL != "https://api.example.com/files/abc.png" {
		t.Fatalf("url = %q", f.URL)
	}
}

func TestUserPassword(t *testing.T) {
	var u User
	if err := u.SetPassword("secret123"); err != nil {
		t.Fatal(err)
	}
	if u.Password == "secret123" {
		t.Fatal("password stored in clear")
	}
	if !u.CheckPassword("secret123") || u.CheckPassword("other") {
		t.Fatal("password check mismatch")
	}
}
