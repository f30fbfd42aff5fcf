package models

import "strconv"

// Profile is the basic user identity attached to a submission. The remote
// service treats both fields as free text; Age is bounded at the input layer
// only.
type Profile struct {
	Name string
	Age  int
}

// AgeField returns the age as it is sent on the wire. An unset (zero) age is
// sent as an empty field, matching a blank form input.
func (p Profile) AgeField() string {
	if p.Age <= 0 {
		return ""
	}
	return strconv.Itoa(p.Age)
}
