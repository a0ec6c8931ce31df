// Package validate holds the field rules applied to public and admin
// submissions before they reach a store. Every check is fail-fast: callers get
// the first violated field only, in a fixed order (presence, then length,
// then format, then enum membership).
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Field limits, in characters.
const (
	MaxNameLen    = 100
	MaxEmailLen   = 254
	MaxMessageLen = 2000
	MaxSubjectLen = 200

	MaxTitleLen   = 200
	MaxContentLen = 5000
	MaxAuthorLen  = 100
)

// Publication statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Error reports the first rule a submission broke. Reason is client-facing.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// labels are the French names used in client-facing reasons.
var labels = map[string]string{
	"name":      "Le nom",
	"email":     "L'email",
	"message":   "Le message",
	"subject":   "Le sujet",
	"title":     "Le titre",
	"content":   "Le contenu",
	"author":    "L'auteur",
	"status":    "Le statut",
	"type":      "Le type",
	"data":      "Le champ data",
	"messageId": "L'identifiant du message",
}

func label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

func required(field string) *Error {
	return &Error{Field: field, Reason: label(field) + " est requis"}
}

func tooLong(field string, max int) *Error {
	return &Error{Field: field, Reason: fmt.Sprintf("%s ne doit pas dépasser %d caractères", label(field), max)}
}

// emailPattern is deliberately conservative: a dot-atom local part, a single
// @ and at least two dot-separated domain labels. The library's own "email"
// tag accepts single-label domains such as test@example.
var emailPattern = regexp.MustCompile(
	"^[A-Za-z0-9!#$%&'*+/=?^_`{|}~-]+(\\.[A-Za-z0-9!#$%&'*+/=?^_`{|}~-]+)*" +
		"@[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?(\\.[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?)+$")

// Email reports whether s matches the accepted address grammar.
func Email(s string) bool {
	if s == "" || utf8.RuneCountInString(s) > MaxEmailLen {
		return false
	}
	return emailPattern.MatchString(s)
}

// Custom tags registered on the shared validator.
const (
	tagEmail  = "contactemail"
	tagStatus = "oneof=" + StatusDraft + " " + StatusPublished
)

var rules = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation(tagEmail, func(fl validator.FieldLevel) bool {
		return Email(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// rule is one field checked against one tag. Rules run in slice order and
// stop at the first failure.
type rule struct {
	field string
	value string
	tag   string
}

func maxLen(field, value string, max int) rule {
	return rule{field, value, "max=" + strconv.Itoa(max)}
}

// check runs each stage in turn. Every rule of a stage is checked before
// the next stage starts, which keeps the presence, length, format, enum
// order across fields.
func check(stages ...[]rule) error {
	for _, stage := range stages {
		for _, r := range stage {
			if err := rules.Var(r.value, r.tag); err != nil {
				return fieldError(r.field, err)
			}
		}
	}
	return nil
}

// fieldError maps the library error onto the client-facing Error.
func fieldError(field string, err error) *Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &Error{Field: field, Reason: label(field) + " est invalide"}
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return required(field)
	case "max":
		n, _ := strconv.Atoi(fe.Param())
		return tooLong(field, n)
	case tagEmail:
		return &Error{Field: field, Reason: "L'adresse email est invalide"}
	case "oneof":
		return &Error{Field: field, Reason: "Le statut doit être draft ou published"}
	default:
		return &Error{Field: field, Reason: label(field) + " est invalide"}
	}
}

// ContactInput is a contact-form submission after binding.
type ContactInput struct {
	Name    string
	Email   string
	Message string
	Subject string
}

// Normalize trims every field and lower-cases the email.
func (in *ContactInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Message = strings.TrimSpace(in.Message)
	in.Subject = strings.TrimSpace(in.Subject)
}

// Contact validates a normalized contact submission.
func Contact(in ContactInput) error {
	return check(
		[]rule{
			{"name", in.Name, "required"},
			{"email", in.Email, "required"},
			{"message", in.Message, "required"},
		},
		[]rule{
			maxLen("name", in.Name, MaxNameLen),
			maxLen("email", in.Email, MaxEmailLen),
			maxLen("message", in.Message, MaxMessageLen),
			maxLen("subject", in.Subject, MaxSubjectLen),
		},
		[]rule{{"email", in.Email, tagEmail}},
	)
}

// PublicationInput carries the fields of a new publication.
type PublicationInput struct {
	Title   string
	Content string
	Author  string
	Status  string
}

// Normalize trims the fields and applies the default status.
func (in *PublicationInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.Author = strings.TrimSpace(in.Author)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	if in.Status == "" {
		in.Status = StatusDraft
	}
}

// NewPublication validates a normalized publication.
func NewPublication(in PublicationInput) error {
	return check(
		[]rule{
			{"title", in.Title, "required"},
			{"content", in.Content, "required"},
			{"author", in.Author, "required"},
		},
		[]rule{
			maxLen("title", in.Title, MaxTitleLen),
			maxLen("content", in.Content, MaxContentLen),
			maxLen("author", in.Author, MaxAuthorLen),
		},
		[]rule{{"status", in.Status, tagStatus}},
	)
}

// PublicationPatch is a partial update; nil fields are left untouched.
type PublicationPatch struct {
	Title   *string
	Content *string
	Author  *string
	Status  *string
}

// Normalize trims every present field.
func (p *PublicationPatch) Normalize() {
	for _, f := range []*string{p.Title, p.Content, p.Author} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
	if p.Status != nil {
		*p.Status = strings.ToLower(strings.TrimSpace(*p.Status))
	}
}

// Patch validates the fields a partial update carries. A present field may
// not be blank.
func Patch(p PublicationPatch) error {
	var present, lengths, status []rule
	for _, f := range []struct {
		name  string
		value *string
		max   int
	}{
		{"title", p.Title, MaxTitleLen},
		{"content", p.Content, MaxContentLen},
		{"author", p.Author, MaxAuthorLen},
	} {
		if f.value == nil {
			continue
		}
		present = append(present, rule{f.name, *f.value, "required"})
		lengths = append(lengths, maxLen(f.name, *f.value, f.max))
	}
	if p.Status != nil {
		status = append(status, rule{"status", *p.Status, tagStatus})
	}
	return check(present, lengths, status)
}

// ContentUpdate checks an admin content edit: the section must be known and
// data present.
func ContentUpdate(section string, data []byte, sections []string) error {
	if strings.TrimSpace(section) == "" {
		return required("type")
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return required("data")
	}
	for _, s := range sections {
		if s == section {
			return nil
		}
	}
	return &Error{Field: "type", Reason: fmt.Sprintf("Section inconnue: %s", section)}
}

// MessageID checks the identifier sent to mark a message as read.
func MessageID(id string) error {
	if strings.TrimSpace(id) == "" {
		return required("messageId")
	}
	return nil
}
