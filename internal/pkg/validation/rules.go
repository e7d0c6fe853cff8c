package validation

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Validation rule patterns
var (
	// Course title and description: letters (accented included), digits, space and . # -
	CourseTextPattern = `^[A-Za-záéíóúÁÉÍÓÚñÑ0-9 .#-]*$`

	// Person names: letters and spaces only
	PersonNamePattern = `^[A-Za-záéíóúÁÉÍÓÚñÑ ]+$`

	// Password charset, length is checked by min/max
	PasswordPattern = `^[a-zA-Z0-9!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]+$`

	// Image URLs. Course hosts allow underscores, user hosts allow dots.
	CourseImagePattern = `^https?://[a-zA-Z0-9\-_]+\.[a-z]{2,}([/\w .-]*)*/?$`
	UserImagePattern   = `^https?://[a-zA-Z0-9\-.]+\.[a-z]{2,}([/\w .-]*)*/?$`

	// AllowedEmailTLDs restricts the last label of an email domain
	AllowedEmailTLDs = []string{"com", "net", "edu", "co"}

	// EmailMinDomainSegments is the minimum number of labels in an email domain
	EmailMinDomainSegments = 2
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	CourseText  *regexp.Regexp
	PersonName  *regexp.Regexp
	Password    *regexp.Regexp
	CourseImage *regexp.Regexp
	UserImage   *regexp.Regexp
}{
	CourseText:  regexp.MustCompile(CourseTextPattern),
	PersonName:  regexp.MustCompile(PersonNamePattern),
	Password:    regexp.MustCompile(PasswordPattern),
	CourseImage: regexp.MustCompile(CourseImagePattern),
	UserImage:   regexp.MustCompile(UserImagePattern),
}

// customRules maps validate tags to their implementation
var customRules = map[string]validator.Func{
	"course_text":    patternRule(CompiledPatterns.CourseText, true),
	"person_name":    patternRule(CompiledPatterns.PersonName, false),
	"password_chars": patternRule(CompiledPatterns.Password, false),
	"course_image":   patternRule(CompiledPatterns.CourseImage, true),
	"user_image":     patternRule(CompiledPatterns.UserImage, true),
	"uri_or_empty":   isURIOrEmpty,
	"email_tld":      hasAllowedEmailDomain,
	"object_id":      isObjectID,
}

func patternRule(re *regexp.Regexp, allowEmpty bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return allowEmpty
		}
		return re.MatchString(value)
	}
}

func isURIOrEmpty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	u, err := url.ParseRequestURI(value)
	return err == nil && u.Scheme != ""
}

func hasAllowedEmailDomain(fl validator.FieldLevel) bool {
	email := fl.Field().String()
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}

	labels := strings.Split(strings.ToLower(email[at+1:]), ".")
	if len(labels) < EmailMinDomainSegments {
		return false
	}

	tld := labels[len(labels)-1]
	for _, allowed := range AllowedEmailTLDs {
		if tld == allowed {
			return true
		}
	}
	return false
}

func isObjectID(fl validator.FieldLevel) bool {
	return primitive.IsValidObjectID(fl.Field().String())
}
