// Package main provides a minimal demo CLI for the jsonish parser and
// coercer: feed it raw text and a registry fixture, get back the
// coerced value or a structured failure. It is not the CLI surface the
// core API is scoped around (spec.md §6.4) — just enough to exercise
// ParseAndCoerce by hand while iterating on a registry fixture.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ormasoftchile/gert/pkg/jsonish"
	"github.com/ormasoftchile/gert/pkg/jsonish/ftype"
	"github.com/ormasoftchile/gert/pkg/jsonish/registry"
	"github.com/ormasoftchile/gert/pkg/jsonish/registryjson"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gert-jsonish",
	Short: "Permissive JSON parsing and type-directed coercion demo",
}

var (
	registryPath string
	typeRef      string
	allowPartial bool
)

var coerceCmd = &cobra.Command{
	Use:   "coerce",
	Short: "Coerce stdin text against a registry type",
	Args:  cobra.NoArgs,
	RunE:  runCoerce,
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Print the classes/enums a registry type references",
	Args:  cobra.NoArgs,
	RunE:  runProject,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Dump a registry type as a JSON Schema document",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

func init() {
	for _, cmd := range []*cobra.Command{coerceCmd, projectCmd, schemaCmd} {
		cmd.Flags().StringVar(&registryPath, "registry", "", "path to a registry YAML fixture (required)")
		cmd.Flags().StringVar(&typeRef, "type", "", "type reference to coerce/project against, e.g. list<Point> (required)")
		cmd.MarkFlagRequired("registry")
		cmd.MarkFlagRequired("type")
	}
	coerceCmd.Flags().BoolVar(&allowPartial, "allow-partial", false, "tolerate missing required fields")
	rootCmd.AddCommand(coerceCmd, projectCmd, schemaCmd)
}

func runCoerce(cmd *cobra.Command, args []string) error {
	reg, target, err := loadFixture()
	if err != nil {
		return err
	}

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	value, flags, warnings, err := jsonish.ParseAndCoerce(string(raw), target, reg, jsonish.Options{AllowPartial: allowPartial})
	if err != nil {
		fmt.Fprintf(os.Stderr, "coercion failed: %v\n", err)
		return err
	}

	out := map[string]any{
		"value":    value,
		"flags":    flags,
		"warnings": warnings,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runProject(cmd *cobra.Command, args []string) error {
	reg, target, err := loadFixture()
	if err != nil {
		return err
	}

	proj, err := jsonish.ProjectOutputFormat(target, reg)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(proj)
}

func runSchema(cmd *cobra.Command, args []string) error {
	reg, target, err := loadFixture()
	if err != nil {
		return err
	}

	doc, err := registryjson.Generate(target, reg)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func loadFixture() (*registry.Registry, *ftype.FieldType, error) {
	reg, err := registry.LoadRegistryYAML(registryPath)
	if err != nil {
		return nil, nil, err
	}
	target, err := registry.ParseTypeRef(typeRef, enumNameSet(reg))
	if err != nil {
		return nil, nil, fmt.Errorf("parse --type %q: %w", typeRef, err)
	}
	return reg, target, nil
}

func enumNameSet(reg *registry.Registry) map[string]bool {
	_, enums := reg.Walk()
	names := make(map[string]bool, len(enums))
	for _, e := range enums {
		names[e.Name] = true
	}
	return names
}
