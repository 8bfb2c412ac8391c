package ui

import (
	"github.com/charmbracelet/huh"
)

func SelectConflictedFiles(paths []string) ([]string, error) {
	var selected []string
	var options []huh.Option[string]

	for _, path := range paths {
		options = append(options, huh.NewOption(path, path))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select conflicted files to explain:").
				Options(options...).
				Value(&selected),
		),
	)

	err := form.Run()
	if err != nil {
		return nil, err
	}

	return selected, nil
}
