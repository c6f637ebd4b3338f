package validation

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZipCode(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"95032", true},
		{" 95032 ", true},
		{"95032-1234", true},
		{"9503", false},
		{"950321", false},
		{"95032-12", false},
		{"abcde", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ZipCode(tt.in))
		})
	}
}

func TestHobbies(t *testing.T) {
	tests := []struct {
		name   string
		in     []string
		want   []string
		wantOK bool
	}{
		{name: "trims and keeps order", in: []string{" Hiking ", "Cooking"}, want: []string{"Hiking", "Cooking"}, wantOK: true},
		{name: "case-insensitive dedupe", in: []string{"Yoga", "yoga", "YOGA"}, want: []string{"Yoga"}, wantOK: true},
		{name: "blanks dropped", in: []string{"", "  ", "Music"}, want: []string{"Music"}, wantOK: true},
		{name: "empty list", in: nil, wantOK: false},
		{name: "only blanks", in: []string{" "}, wantOK: false},
		{name: "too long", in: []string{strings.Repeat("a", MaxHobbyChars+1)}, wantOK: false},
		{name: "too many", in: manyHobbies(MaxHobbies + 1), wantOK: false},
		{name: "at limit", in: manyHobbies(MaxHobbies), want: manyHobbies(MaxHobbies), wantOK: true},
		{name: "over limit before dedupe", in: append(manyHobbies(MaxHobbies), manyHobbies(5)...), want: manyHobbies(MaxHobbies), wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Hobbies(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func manyHobbies(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "hobby-" + strings.Repeat("x", i+1)
	}
	return out
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	type req struct {
		ZipCode string   `json:"zip_code" validate:"required,zipcode"`
		Hobbies []string `json:"hobbies" validate:"required,min=1"`
	}

	assert.NoError(t, v.Struct(req{ZipCode: "10001", Hobbies: []string{"Arts"}}))

	err := v.Struct(req{ZipCode: "1000", Hobbies: []string{"Arts"}})
	require.Error(t, err)
	assert.Equal(t, "zip_code must be a 5-digit ZIP code", Message(err))

	err = v.Struct(req{ZipCode: "10001"})
	require.Error(t, err)
	assert.Equal(t, "hobbies is required", Message(err))
}

func TestRegisterGin(t *testing.T) {
	assert.NoError(t, RegisterGin())
}
