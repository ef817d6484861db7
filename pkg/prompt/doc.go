// Package prompt fills request fields interactively. Fill walks the unset
// fields of a financial.Request in schema order and asks a Driver for each;
// SurveyDriver backs the Driver with github.com/AlecAivazis/survey/v2.
package prompt
