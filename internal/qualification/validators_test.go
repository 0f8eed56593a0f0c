package qualification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckEmail(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		wantValid  bool
		wantReason string
	}{
		{name: "navy retiree", email: "john.smith@norfolknavy.org", wantValid: true},
		{name: "isp address", email: "robert.johnson@comcast.net", wantValid: true},
		{name: "short webmail", email: "mparker@yahoo.com", wantValid: true},
		{name: "harmless plus tag", email: "Mary.Parker+claims@Gmail.com", wantValid: true},
		{name: "surrounding whitespace", email: "  mparker@yahoo.com ", wantValid: true},

		{name: "empty", email: "", wantReason: "malformed address"},
		{name: "no at sign", email: "not-an-email", wantReason: "malformed address"},
		{name: "one letter tld", email: "mary@parker.c", wantReason: "malformed address"},
		{name: "placeholder mailbox", email: "test@test.com", wantReason: "placeholder mailbox"},
		{name: "placeholder domain", email: "someone@mytest.com", wantReason: "placeholder domain"},
		{name: "example domain", email: "someone@example.org", wantReason: "placeholder domain"},
		{name: "numeric mailbox", email: "12345@gmail.com", wantReason: "numeric mailbox"},
		{name: "numeric domain", email: "pat@123.com", wantReason: "numeric domain"},
		{name: "two letter mailbox", email: "jo@gmail.com", wantReason: "mailbox too short"},
		{name: "role account", email: "noreply@company.com", wantReason: "role account"},
		{name: "tagged role account", email: "info+leads@lawfirm.com", wantReason: "role account"},
		{name: "stock identity", email: "jane.doe@gmail.com", wantReason: "throwaway identity"},
		{name: "stock identity upper case", email: "Joe.Bloggs@Hotmail.com", wantReason: "throwaway identity"},
		{name: "keyboard row", email: "qwerty12@gmail.com", wantReason: "keyboard gibberish"},
		{name: "repeated characters", email: "aaaaa1@gmail.com", wantReason: "repeated characters"},
		{name: "plus tag test", email: "mary.parker+test@gmail.com", wantReason: "plus tag test or spam"},
		{name: "plus tag spam", email: "mary.parker+nospam@gmail.com", wantReason: "plus tag test or spam"},
		{name: "long lower case run", email: "abcdefghijk@gmail.com", wantReason: "single-case letter run"},
		{name: "long upper case run", email: "ABCDEFGHIJK@gmail.com", wantReason: "single-case letter run"},
		{name: "disposable domain", email: "someone@mailinator.com", wantReason: "disposable domain"},
		{name: "disposable domain mixed case", email: "Someone@MAILINATOR.COM", wantReason: "disposable domain"},
		{name: "disposable ten minute", email: "pat.jones@10minutemail.com", wantReason: "disposable domain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckEmail(tt.email)
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantReason, got.Reason)
			assert.Equal(t, tt.wantValid, ValidateEmail(tt.email))
		})
	}
}

func TestCheckPhone(t *testing.T) {
	tests := []struct {
		name       string
		phone      string
		wantValid  bool
		wantReason string
	}{
		{name: "plain ten digits", phone: "7571234567", wantValid: true},
		{name: "formatted", phone: "(704) 987-6543", wantValid: true},
		{name: "country code", phone: "+1 (704) 987-6543", wantValid: true},
		{name: "dotted", phone: "704.987.6543", wantValid: true},

		{name: "empty", phone: "", wantReason: "too few digits"},
		{name: "letters only", phone: "call me", wantReason: "too few digits"},
		{name: "nine digits", phone: "704987654", wantReason: "too few digits"},
		{name: "twelve digits", phone: "704987654321", wantReason: "too many digits"},
		{name: "area code starts with zero", phone: "0571234567", wantReason: "invalid area code"},
		{name: "area code starts with one", phone: "1234567890", wantReason: "invalid area code"},
		{name: "bad country code", phone: "27049876543", wantReason: "invalid country code"},
		{name: "bad area code after country code", phone: "11049876543", wantReason: "invalid area code"},
		{name: "all zeros", phone: "0000000000", wantReason: "invalid area code"},
		{name: "repeated digit", phone: "2222222222", wantReason: "repeated digit"},
		{name: "sequential", phone: "1-234-567-8901", wantReason: "sequential digits"},
		{name: "over-repeated fives", phone: "5555555555", wantReason: "repeated digit"},
		{name: "fives after country code", phone: "15555555559", wantReason: "repeated fives"},
		{name: "fictional exchange", phone: "(757) 555-0147", wantReason: "fictional 555 number"},
		{name: "fictional area code", phone: "5551234567", wantReason: "fictional 555 number"},
		{name: "fictional with country code", phone: "1-555-123-4567", wantReason: "fictional 555 number"},
		{name: "555 in line number", phone: "7045551234", wantReason: "fictional 555 number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckPhone(tt.phone)
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantReason, got.Reason)
			assert.Equal(t, tt.wantValid, ValidatePhone(tt.phone))
		})
	}
}

func TestCheckName(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantValid  bool
		wantReason string
	}{
		{name: "first and last", input: "John Smith", wantValid: true},
		{name: "three words", input: "Mary Ellen Parker", wantValid: true},
		{name: "accented", input: "José Álvarez", wantValid: true},
		{name: "padded", input: "  Robert   Johnson ", wantValid: true},

		{name: "empty", input: "", wantReason: "too short"},
		{name: "single letter", input: " J ", wantReason: "too short"},
		{name: "single word", input: "Madonna", wantReason: "first and last name required"},
		{name: "test prefix", input: "Test User", wantReason: "placeholder name"},
		{name: "fake prefix", input: "Fake Person", wantReason: "placeholder name"},
		{name: "stock name", input: "  john   doe ", wantReason: "placeholder name"},
		{name: "first last", input: "First Last", wantReason: "placeholder name"},
		{name: "keyboard", input: "asdf jkl", wantReason: "keyboard gibberish"},
		{name: "qwerty", input: "Qwerty Uiop", wantReason: "keyboard gibberish"},
		{name: "leading digit", input: "2pac Shakur", wantReason: "starts with a digit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckName(tt.input)
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantReason, got.Reason)
			assert.Equal(t, tt.wantValid, ValidateName(tt.input))
		})
	}
}
