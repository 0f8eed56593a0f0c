package qualification

import (
	"regexp"
	"strings"
)

var emailSyntax = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// roleAccounts are generic mailbox names that never belong to an individual.
var roleAccounts = setOf(
	"admin", "administrator", "abuse", "billing", "contact", "hello", "help",
	"hostmaster", "info", "mail", "mailer-daemon", "marketing", "no-reply",
	"noreply", "null", "office", "postmaster", "root", "sales", "spam",
	"support", "sysadmin", "team", "user", "webmaster", "www",
)

// throwawayIdentities are stock full names spammers use as local parts.
var throwawayIdentities = setOf(
	"john.doe", "jane.doe", "johndoe", "janedoe", "john_doe", "jane_doe",
	"baby.doe", "richard.roe", "jane.roe", "joe.bloggs", "joebloggs",
	"fred.bloggs", "joe.schmoe", "joe.blow", "john.q.public", "mary.major",
	"first.last", "firstname.lastname", "firstlast", "your.name", "yourname",
	"test.user", "fake.user", "some.one", "no.body",
)

// disposableDomains are temporary-inbox providers.
var disposableDomains = setOf(
	"mailinator.com", "10minutemail.com", "guerrillamail.com",
	"guerrillamail.net", "sharklasers.com", "tempmail.com", "temp-mail.org",
	"throwawaymail.com", "yopmail.com", "trashmail.com", "getnada.com",
	"dispostable.com", "maildrop.cc", "mailnesia.com", "fakeinbox.com",
	"spamgourmet.com", "mintemail.com", "mytemp.email", "tempinbox.com",
	"emailondeck.com", "mohmal.com", "burnermail.io", "discard.email",
	"spambox.us", "mailcatch.com",
)

// emailRules run against the trimmed, lowercased address after the syntax
// check has passed.
var emailRules = []rule{
	{"placeholder mailbox", pattern(`^(test|fake|example)@`)},
	{"placeholder domain", pattern(`@.*(test|fake|example)\.`)},
	{"numeric mailbox", pattern(`^[0-9]+@`)},
	{"numeric domain", pattern(`@[0-9]+\.`)},
	{"mailbox too short", pattern(`^[^@]{1,2}@`)},
	{"role account", func(s string) bool { return inSet(roleAccounts)(baseMailbox(s)) }},
	{"throwaway identity", func(s string) bool { return inSet(throwawayIdentities)(baseMailbox(s)) }},
	{"keyboard gibberish", pattern(`^[^@]*(qwert|asdfg|zxcvb|qazws|poiuy|lkjhg)`)},
	{"repeated characters", func(s string) bool { return longestRun(mailbox(s)) >= 5 }},
	{"plus tag test or spam", pattern(`\+[^@]*(test|spam)[^@]*@`)},
}

// caseRunRules inspect the mailbox as typed, since case is lost once the
// address is lowercased.
var caseRunRules = []rule{
	{"single-case letter run", pattern(`^([a-z]{10,}|[A-Z]{10,})@`)},
}

// CheckEmail validates an address and names the first rule it breaks.
func CheckEmail(email string) Verdict {
	raw := strings.TrimSpace(email)
	if !emailSyntax.MatchString(raw) {
		return fail("malformed address")
	}
	if reason, hit := firstMatch(caseRunRules, raw); hit {
		return fail(reason)
	}
	lower := strings.ToLower(raw)
	if reason, hit := firstMatch(emailRules, lower); hit {
		return fail(reason)
	}
	if _, ok := disposableDomains[domain(lower)]; ok {
		return fail("disposable domain")
	}
	return pass()
}

// ValidateEmail reports whether email is syntactically valid, free of known
// spam signatures and not hosted on a disposable domain.
func ValidateEmail(email string) bool {
	return CheckEmail(email).Valid
}

func mailbox(address string) string {
	if i := strings.LastIndexByte(address, '@'); i >= 0 {
		return address[:i]
	}
	return address
}

// baseMailbox strips a plus tag so "info+ads@" is still a role account.
func baseMailbox(address string) string {
	local := mailbox(address)
	if i := strings.IndexByte(local, '+'); i >= 0 {
		return local[:i]
	}
	return local
}

func domain(address string) string {
	if i := strings.LastIndexByte(address, '@'); i >= 0 {
		return address[i+1:]
	}
	return ""
}
