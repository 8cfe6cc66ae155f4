package domain

import "strings"

// Identity is the fully qualified name of a test case: a dotted module
// path plus the case class and the test method.
type Identity struct {
	Module string
	Class  string
	Method string
}

// String returns the dotted name, e.g. "accounts.LoginCase.test_login".
func (i Identity) String() string {
	return i.Module + "." + i.Class + "." + i.Method
}

// Components splits the dotted name into its parts. The module itself
// may span several components.
func (i Identity) Components() []string {
	return strings.Split(i.String(), ".")
}
