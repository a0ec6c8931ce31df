package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContact() ContactInput {
	return ContactInput{
		Name:    "Jean Dupont",
		Email:   "jean.dupont@example.com",
		Message: "Bonjour, je souhaite créer un site web.",
		Subject: "Demande de devis",
	}
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var verr *Error
	require.True(t, errors.As(err, &verr), "expected *Error, got %v", err)
	return verr.Field
}

func TestContact_Valid(t *testing.T) {
	assert.NoError(t, Contact(validContact()))
}

func TestContact_RequiredFields(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*ContactInput)
		field string
		label string
	}{
		{"missing name", func(in *ContactInput) { in.Name = "" }, "name", "nom"},
		{"missing email", func(in *ContactInput) { in.Email = "" }, "email", "email"},
		{"missing message", func(in *ContactInput) { in.Message = "" }, "message", "message"},
		{"blank name", func(in *ContactInput) { in.Name = "   " }, "name", "nom"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validContact()
			tc.edit(&in)
			in.Normalize()
			err := Contact(in)
			assert.Equal(t, tc.field, fieldOf(t, err))
			assert.Contains(t, strings.ToLower(err.(*Error).Reason), tc.label)
		})
	}
}

func TestContact_AllEmptyReportsNameFirst(t *testing.T) {
	err := Contact(ContactInput{})
	assert.Equal(t, "name", fieldOf(t, err))
}

func TestContact_PresenceCheckedBeforeLength(t *testing.T) {
	in := validContact()
	in.Name = strings.Repeat("x", 101)
	in.Message = ""
	assert.Equal(t, "message", fieldOf(t, Contact(in)))
}

func TestContact_LengthCheckedBeforeFormat(t *testing.T) {
	in := validContact()
	in.Email = "not-an-email"
	in.Message = strings.Repeat("m", 2001)
	assert.Equal(t, "message", fieldOf(t, Contact(in)))
}

func TestContact_NameBoundary(t *testing.T) {
	in := validContact()
	in.Name = strings.Repeat("x", 100)
	assert.NoError(t, Contact(in))

	in.Name = strings.Repeat("x", 101)
	assert.Equal(t, "name", fieldOf(t, Contact(in)))
}

func TestContact_MessageBoundary(t *testing.T) {
	in := validContact()
	in.Message = strings.Repeat("m", 2000)
	assert.NoError(t, Contact(in))

	in.Message = strings.Repeat("m", 2001)
	assert.Equal(t, "message", fieldOf(t, Contact(in)))
}

func TestContact_LengthCountsCharacters(t *testing.T) {
	in := validContact()
	in.Name = strings.Repeat("é", 100)
	assert.NoError(t, Contact(in))
}

func TestContact_SubjectOptionalButCapped(t *testing.T) {
	in := validContact()
	in.Subject = ""
	assert.NoError(t, Contact(in))

	in.Subject = strings.Repeat("s", 201)
	assert.Equal(t, "subject", fieldOf(t, Contact(in)))
}

func TestContact_LengthUsesRawText(t *testing.T) {
	in := validContact()
	in.Message = "<script>alert('x')</script>"
	assert.NoError(t, Contact(in))

	// 2000 '<' characters escape to 8000 bytes but stay under the cap.
	in.Message = strings.Repeat("<", 2000)
	assert.NoError(t, Contact(in))
}

func TestEmail(t *testing.T) {
	invalid := []string{
		"invalid-email",
		"@example.com",
		"test@",
		"test..test@example.com",
		"test@example",
		"test@.com",
		"test space@example.com",
		"test@example..com",
		"invalid.email.format",
		"not-an-email",
		".test@example.com",
		"test.@example.com",
		"test@@example.com",
		"test@-example.com",
		"test@example.com ",
		"",
	}
	for _, addr := range invalid {
		assert.False(t, Email(addr), "expected %q to be rejected", addr)
	}

	valid := []string{
		"test@example.com",
		"jean.dupont@example.com",
		"first+tag@sub.example.co.uk",
		"a@b.io",
		"o'reilly@example.org",
	}
	for _, addr := range valid {
		assert.True(t, Email(addr), "expected %q to be accepted", addr)
	}
}

func TestContact_InvalidEmailField(t *testing.T) {
	in := validContact()
	in.Email = "test@example"
	assert.Equal(t, "email", fieldOf(t, Contact(in)))
}

func TestEmail_TooLong(t *testing.T) {
	addr := strings.Repeat("a", 250) + "@example.com"
	assert.False(t, Email(addr))

	in := validContact()
	in.Email = addr
	assert.Equal(t, "email", fieldOf(t, Contact(in)))
}

func TestContactInput_Normalize(t *testing.T) {
	in := ContactInput{Name: "  Ana ", Email: " Ana@Example.COM ", Message: " hi ", Subject: " s "}
	in.Normalize()
	assert.Equal(t, ContactInput{Name: "Ana", Email: "ana@example.com", Message: "hi", Subject: "s"}, in)
}

func TestNewPublication(t *testing.T) {
	in := PublicationInput{Title: "Titre", Content: "Contenu", Author: "Admin"}
	in.Normalize()
	require.NoError(t, NewPublication(in))
	assert.Equal(t, StatusDraft, in.Status)

	cases := []struct {
		name  string
		in    PublicationInput
		field string
	}{
		{"missing title", PublicationInput{Content: "c", Author: "a"}, "title"},
		{"missing content", PublicationInput{Title: "t", Author: "a"}, "content"},
		{"missing author", PublicationInput{Title: "t", Content: "c"}, "author"},
		{"long title", PublicationInput{Title: strings.Repeat("t", 201), Content: "c", Author: "a"}, "title"},
		{"long content", PublicationInput{Title: "t", Content: strings.Repeat("c", 5001), Author: "a"}, "content"},
		{"long author", PublicationInput{Title: "t", Content: "c", Author: strings.Repeat("a", 101)}, "author"},
		{"bad status", PublicationInput{Title: "t", Content: "c", Author: "a", Status: "archived"}, "status"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := tc.in
			in.Normalize()
			assert.Equal(t, tc.field, fieldOf(t, NewPublication(in)))
		})
	}
}

func TestNewPublication_Boundaries(t *testing.T) {
	in := PublicationInput{
		Title:   strings.Repeat("t", 200),
		Content: strings.Repeat("c", 5000),
		Author:  strings.Repeat("a", 100),
		Status:  "PUBLISHED",
	}
	in.Normalize()
	assert.NoError(t, NewPublication(in))
	assert.Equal(t, StatusPublished, in.Status)
}

func TestPatch(t *testing.T) {
	str := func(s string) *string { return &s }

	assert.NoError(t, Patch(PublicationPatch{}))
	assert.NoError(t, Patch(PublicationPatch{Status: str("published")}))
	assert.Equal(t, "title", fieldOf(t, Patch(PublicationPatch{Title: str("")})))
	assert.Equal(t, "content", fieldOf(t, Patch(PublicationPatch{Content: str(strings.Repeat("c", 5001))})))
	assert.Equal(t, "status", fieldOf(t, Patch(PublicationPatch{Status: str("gone")})))

	p := PublicationPatch{Title: str("  t  "), Status: str(" Draft ")}
	p.Normalize()
	assert.Equal(t, "t", *p.Title)
	assert.Equal(t, "draft", *p.Status)
}

func TestContentUpdate(t *testing.T) {
	sections := []string{"hero", "services", "portfolio", "contact"}

	assert.NoError(t, ContentUpdate("hero", []byte(`{"title":"x"}`), sections))
	assert.Equal(t, "type", fieldOf(t, ContentUpdate("", []byte(`{}`), sections)))
	assert.Equal(t, "data", fieldOf(t, ContentUpdate("hero", nil, sections)))
	assert.Equal(t, "data", fieldOf(t, ContentUpdate("hero", []byte("null"), sections)))
	assert.Equal(t, "type", fieldOf(t, ContentUpdate("footer", []byte(`{}`), sections)))
}

func TestMessageID(t *testing.T) {
	assert.NoError(t, MessageID("abc"))
	assert.Equal(t, "messageId", fieldOf(t, MessageID(" ")))
}

func TestReasons(t *testing.T) {
	in := validContact()
	in.Name = strings.Repeat("é", 101)
	assert.Equal(t, &Error{Field: "name", Reason: "Le nom ne doit pas dépasser 100 caractères"}, Contact(in))

	in = validContact()
	in.Email = "jean@localhost"
	assert.Equal(t, &Error{Field: "email", Reason: "L'adresse email est invalide"}, Contact(in))

	pub := PublicationInput{Title: "t", Content: "c", Author: "a", Status: "archived"}
	assert.Equal(t, &Error{Field: "status", Reason: "Le statut doit être draft ou published"}, NewPublication(pub))

	assert.Equal(t, &Error{Field: "title", Reason: "Le titre est requis"}, NewPublication(PublicationInput{Content: "c", Author: "a", Status: StatusDraft}))
}

func TestPatch_LengthBeforeStatus(t *testing.T) {
	str := func(s string) *string { return &s }
	p := PublicationPatch{Author: str(strings.Repeat("a", 101)), Status: str("gone")}
	assert.Equal(t, "author", fieldOf(t, Patch(p)))
}

func TestFieldError_NonValidationError(t *testing.T) {
	err := fieldError("subject", errors.New("boom"))
	assert.Equal(t, &Error{Field: "subject", Reason: "Le sujet est invalide"}, err)
}
