package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

// PromptCredentials asks for the iLO username (visible) and password
// (hidden). A field is skipped when its ask flag is false; username is used
// as the pre-filled value.
func PromptCredentials(username, password *string, askUser, askPass bool) error {
	var fields []huh.Field
	if askUser {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Description("iLO account used for every node").
			Value(username).
			Validate(required("username")))
	}
	if askPass {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password).
			Validate(required("password")))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

// Confirm asks a yes/no question.
func Confirm(title string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
