// Package validation runs the build-time checks on a populated request:
// presence of every required field and each schema-declared cross-field
// constraint. Kind-level checks already happened when values were set.
package validation
