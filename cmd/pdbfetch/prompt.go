package main

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"pdb-explorer/internal/domain/entity"
)

// promptIdentifier asks for an entry identifier on the terminal, rejecting
// malformed input before any request is made.
func promptIdentifier() (string, error) {
	var id string
	prompt := &survey.Input{
		Message: "PDB ID:",
		Help:    "A 4-character PDB identifier such as 4HHB or 1CRN.",
		Default: "4HHB",
	}
	err := survey.AskOne(prompt, &id, survey.WithValidator(validateIdentifier))
	if errors.Is(err, terminal.InterruptErr) {
		return "", errors.New("cancelled")
	}
	return id, err
}

// validateIdentifier is a survey.Validator accepting anything ParseIdentifier accepts.
func validateIdentifier(ans interface{}) error {
	s, ok := ans.(string)
	if !ok {
		return errors.New("identifier must be text")
	}
	_, err := entity.ParseIdentifier(s)
	return err
}
