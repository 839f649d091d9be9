package validator

import (
	"testing"

	"staydesk/errors"
	"staydesk/models"
)

func TestValidateStay(t *testing.T) {
	cases := []struct {
		in, out string
		ok      bool
	}{
		{"2026-07-01", "2026-07-03", true},
		{"2026-07-03", "2026-07-03", false},
		{"2026-07-04", "2026-07-03", false},
		{"2026-7-1", "2026-07-03", false},
		{"2026-02-30", "2026-03-02", false},
	}
	for _, tc := range cases {
		err := ValidateStay(tc.in, tc.out)
		if (err == nil) != tc.ok {
			t.Fatalf("ValidateStay(%s, %s) got err=%v, want ok=%v", tc.in, tc.out, err, tc.ok)
		}
		if err != nil && !errors.HasCode(err, errors.ErrCodeInvalidRequest) {
			t.Fatalf("got %v, want INVALID_REQUEST", err)
		}
	}
}

type stayInput struct {
	CheckIn string         `validate:"required,ymd"`
	Channel models.Channel `validate:"omitempty,channel"`
}

func TestStructRules(t *testing.T) {
	if err := Struct(stayInput{CheckIn: "2026-07-01", Channel: models.ChannelAirbnb}); err != nil {
		t.Fatalf("valid input got %v", err)
	}
	err := Struct(stayInput{CheckIn: "tomorrow"})
	if !errors.HasCode(err, errors.ErrCodeInvalidRequest) {
		t.Fatalf("got %v, want INVALID_REQUEST", err)
	}
	if got := errors.GetAppError(err).Message; got != "checkIn must be a date in YYYY-MM-DD format." {
		t.Fatalf("message got %q", got)
	}
	if err := Struct(stayInput{CheckIn: "2026-07-01", Channel: "fax"}); err == nil {
		t.Fatalf("unknown channel accepted")
	}
}

func TestValidateGuestsAndOccupancy(t *testing.T) {
	if err := ValidateGuests(0, 0); err == nil {
		t.Fatalf("zero adults accepted")
	}
	if err := ValidateGuests(2, 11); err == nil {
		t.Fatalf("11 children accepted")
	}
	rt := &models.RoomType{Name: "Double", MaxOccupancy: 2}
	if err := ValidateOccupancy(rt, 2, 1); err == nil {
		t.Fatalf("3 guests fit a double")
	}
	if err := ValidateOccupancy(rt, 1, 1); err != nil {
		t.Fatalf("2 guests got %v", err)
	}
}
