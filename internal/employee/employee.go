// internal/employee/employee.go
//
// Employee is the one record type the directory knows about. The client
// never assigns identity: records are created by POST and learned back by
// re-listing.

package employee

import (
	"net/url"
	"strings"
)

// PhotoPlaceholderBase is the avatar service used when a record has no photo.
const PhotoPlaceholderBase = "https://i.pravatar.cc/40"

// MaxHobbies bounds how many hobby tags a new record may carry.
const MaxHobbies = 5

// Gender options offered by the creation form.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Genders lists the creation-form gender options in display order.
var Genders = []string{GenderMale, GenderFemale}

// Departments lists the fixed department options in display order.
var Departments = []string{
	"IT Development",
	"Human Resources",
	"Marketing",
	"Finance",
	"Sales",
	"Customer Support",
	"Design",
	"Operations",
}

// Employee mirrors one directory record on the wire.
type Employee struct {
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	Age        int    `json:"age"`
	Hobby      string `json:"hobby"`
	Department string `json:"department"`
	Photo      string `json:"photo,omitempty"`
}

// Hobbies decodes the comma-joined hobby field.
func (e Employee) Hobbies() []string {
	return SplitHobbies(e.Hobby)
}

// PhotoURL returns the record's photo, or a placeholder keyed by name.
func (e Employee) PhotoURL() string {
	if photo := strings.TrimSpace(e.Photo); photo != "" {
		return photo
	}
	return PhotoPlaceholderBase + "?u=" + url.QueryEscape(e.Name)
}

// SplitHobbies splits on commas, trims each part and drops empty parts.
func SplitHobbies(encoded string) []string {
	var tags []string
	for _, part := range strings.Split(encoded, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinHobbies encodes tags for transport.
func JoinHobbies(tags []string) string {
	return strings.Join(tags, ",")
}

// IsGender reports whether value is one of the creation-form genders.
func IsGender(value string) bool {
	return contains(Genders, value)
}

// IsDepartment reports whether value is one of the fixed departments.
func IsDepartment(value string) bool {
	return contains(Departments, value)
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
