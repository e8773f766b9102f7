package models

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles
type Role int

const (
	RoleAdmin Role = iota + 1
	RoleStudent
)

// ParseRole maps the stored/wire name to a Role
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "student":
		return RoleStudent, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleStudent:
		return "student"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Valid reports whether r is one of the declared roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent:
		return true
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Gender is a student's declared gender
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Valid reports whether g is one of the declared genders
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// UnmarshalText rejects values outside the enumeration
func (g *Gender) UnmarshalText(text []byte) error {
	candidate := Gender(text)
	if !candidate.Valid() {
		return fmt.Errorf("gender must be one of Male, Female, Other; got %q", string(text))
	}
	*g = candidate
	return nil
}

// Year is a course's year level, first through fourth
type Year int

const (
	YearFirst Year = iota + 1
	YearSecond
	YearThird
	YearFourth
)

// Valid reports whether y is between first and fourth
func (y Year) Valid() bool {
	return y >= YearFirst && y <= YearFourth
}

func (y Year) String() string {
	switch y {
	case YearFirst:
		return "FIRST"
	case YearSecond:
		return "SECOND"
	case YearThird:
		return "THIRD"
	case YearFourth:
		return "FOURTH"
	default:
		return fmt.Sprintf("Year(%d)", int(y))
	}
}
