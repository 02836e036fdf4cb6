// Package validation holds the field checks applied to registration and
// content submissions. Every check returns the cleaned value or an *Error
// whose message is safe to show to the client.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Error is a client-caused failure reported as HTTP 400.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func fail(msg string) *Error {
	return &Error{Message: msg}
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	validate     = validator.New()
)

func Email(email string) (string, error) {
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) {
		return "", fail("Invalid email format")
	}
	return email, nil
}

func Password(password string) (string, error) {
	if utf8.RuneCountInString(password) < 6 {
		return "", fail("Password must be at least 6 characters long")
	}
	return password, nil
}

func Name(name string) (string, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 2 {
		return "", fail("Name must be at least 2 characters long")
	}
	return name, nil
}

// Credentials checks that a login request carries both fields.
func Credentials(email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", fail("Email and password are required")
	}
	return email, nil
}

// QuestionInput is a question submission after validation.
type QuestionInput struct {
	Title       string
	Description string
	Tags        []string
}

// Question validates a question submission. A nil tags slice means the
// client sent something other than a list.
func Question(title, description string, tags []string) (QuestionInput, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if utf8.RuneCountInString(title) < 10 {
		return QuestionInput{}, fail("Title must be at least 10 characters long")
	}
	if utf8.RuneCountInString(description) < 20 {
		return QuestionInput{}, fail("Description must be at least 20 characters long")
	}
	if tags == nil {
		return QuestionInput{}, fail("Tags must be a list")
	}

	return QuestionInput{
		Title:       title,
		Description: description,
		Tags:        cleanTags(tags),
	}, nil
}

// cleanTags trims names and drops blanks and repeats, keeping first-seen order.
func cleanTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func Answer(description string) (string, error) {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) < 10 {
		return "", fail("Answer must be at least 10 characters long")
	}
	return description, nil
}

func VoteType(voteType string) (string, error) {
	if err := validate.Var(voteType, "required,oneof=upvote downvote"); err != nil {
		return "", fail("Invalid vote type")
	}
	return voteType, nil
}

func Role(role string) (string, error) {
	if err := validate.Var(role, "required,oneof=guest user admin"); err != nil {
		return "", fail("Invalid role")
	}
	return role, nil
}
