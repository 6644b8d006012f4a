// SPDX-License-Identifier: MPL-2.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/woolkingx/schemaregistry/pkg/registry"
)

var (
	// validateVersion selects the schema version ("" means the default).
	validateVersion string

	validateCmd = &cobra.Command{
		Use:   "validate <schema> <payload-file>",
		Short: "Validate a JSON payload against a named schema",
		Long: `Validate a JSON payload file against a named schema and report every
violation with its location in the payload. Exits 1 when the payload is
invalid, 2 when the schema or version does not exist.`,
		Args: cobra.ExactArgs(2),
		RunE: runValidate,
	}

	checkCmd = &cobra.Command{
		Use:   "check <schema> <payload-file>",
		Short: "Fast pass/fail check of a JSON payload",
		Long: `Check a JSON payload file against a named schema, reporting only the
outcome. An unknown schema and an invalid payload are both failures; use
"validate" to tell them apart.`,
		Args: cobra.ExactArgs(2),
		RunE: runCheck,
	}
)

func init() {
	validateCmd.Flags().StringVarP(&validateVersion, "version", "V", "", "schema version label (default: last configured)")
	checkCmd.Flags().StringVarP(&validateVersion, "version", "V", "", "schema version label (default: last configured)")
}

// loadPayload decodes the JSON payload file into a generic value.
func loadPayload(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("parse payload %s: %w", path, err)
	}
	return value, nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	name, payloadPath := args[0], args[1]

	value, err := loadPayload(payloadPath)
	if err != nil {
		return err
	}

	t, err := buildTarget(cmd.Context())
	if err != nil {
		return err
	}
	reg, err := t.registryFor(validateVersion)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	err = reg.Validate(name, value)
	switch {
	case err == nil:
		fmt.Println(SuccessStyle.Render("valid: ") + fmt.Sprintf("%s conforms to schema %q", payloadPath, name))
		return nil
	case errors.Is(err, registry.ErrSchemaNotFound):
		return &ExitError{Code: 2, Err: err}
	case errors.Is(err, registry.ErrInvalid):
		var valErr *registry.ValidationError
		if errors.As(err, &valErr) {
			fmt.Println(ErrorStyle.Render("invalid: ") + fmt.Sprintf("%s violates schema %q", payloadPath, name))
			for _, v := range valErr.Violations {
				fmt.Println("  " + ErrorStyle.Render("✗ ") + v.String())
			}
		}
		return &ExitError{Code: 1, Err: err}
	default:
		return err
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	name, payloadPath := args[0], args[1]

	value, err := loadPayload(payloadPath)
	if err != nil {
		return err
	}

	t, err := buildTarget(cmd.Context())
	if err != nil {
		return err
	}

	var ok bool
	if t.vs != nil {
		ok = t.vs.IsValid(validateVersion, name, value)
	} else {
		reg, regErr := t.registryFor(validateVersion)
		if regErr != nil {
			return &ExitError{Code: 2, Err: regErr}
		}
		ok = reg.IsValid(name, value)
	}

	if !ok {
		fmt.Println(ErrorStyle.Render("fail"))
		return &ExitError{Code: 1}
	}
	fmt.Println(SuccessStyle.Render("pass"))
	return nil
}
