package app

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// KeyPrompter asks the operator for an authorization key.
type KeyPrompter interface {
	PromptKey(op, serial string) (string, error)
}

// SurveyPrompter reads the key with masked terminal input.
type SurveyPrompter struct {
	Opts []survey.AskOpt
}

func (s SurveyPrompter) PromptKey(op, serial string) (string, error) {
	var key string
	prompt := &survey.Password{
		Message: fmt.Sprintf("Authorization key for %s on %s:", op, serial),
	}
	if err := survey.AskOne(prompt, &key, s.Opts...); err != nil {
		return "", err
	}
	return key, nil
}
