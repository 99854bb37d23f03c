package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/atomic-ehr/ucum/pkg/common"
	"github.com/atomic-ehr/ucum/pkg/ucum"
)

var version = "dev"

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func execute() error {
	rootCmd := newRootCmd()
	return rootCmd.Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ucum",
		Short: "UCUM - Unified Code for Units of Measure toolkit for Go",
		Long: `ucum is a lexer, parser, and conversion engine for UCUM unit expressions.

It provides:
  - Parsing of UCUM unit expressions into an annotated syntax tree
  - Canonicalization to a base-dimension vector and scalar magnitude
  - Conversion between commensurable units, including special (non-linear)
    units like Celsius, pH, and logarithmic levels
  - Dimension-safe quantity arithmetic

Reference: https://ucum.org/ucum.html`,
	}

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newQuantityCmd())
	rootCmd.AddCommand(newRegistryCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("ucum version %s\n", version)
		},
	}
}

type parseResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse [unit]",
		Short: "Parse a UCUM unit expression and report diagnostics",
		Long: `Parse a UCUM unit expression, reporting any syntax errors and warnings
found along the way. The expression is reported valid only when it parses
without errors and every unit atom in it resolves against the registry.

Examples:
  ucum parse "kg.m/s2"
  ucum parse "m^2" --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, diags, err := ucum.ToCanonical(args[0])
			result := parseResult{Valid: err == nil}
			for _, e := range diags.Errors {
				result.Errors = append(result.Errors, e.Message)
			}
			for _, w := range diags.Warnings {
				result.Warnings = append(result.Warnings, w.Message)
			}

			switch outputFormat {
			case "json":
				return outputJSON(result)
			default:
				return outputParseText(result)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format (text, json)")
	return cmd
}

func outputParseText(r parseResult) error {
	if r.Valid {
		fmt.Println("valid")
	} else {
		fmt.Println("invalid")
	}
	for _, e := range r.Errors {
		fmt.Printf("  error: %s\n", e)
	}
	for _, w := range r.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
	return nil
}

func newConvertCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "convert [value] [from-unit] [to-unit]",
		Short: "Convert a value from one UCUM unit to another",
		Long: `Convert a numeric value between two commensurable UCUM units, bridging
special (non-linear) units like Celsius and pH when needed.

Examples:
  ucum convert 1 kg g
  ucum convert 0 Cel K
  ucum convert 7 "[pH]" "mol/L"`,
		Args: cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[0], err)
			}

			result, err := ucum.Convert(value, args[1], args[2])
			if err != nil {
				return err
			}

			switch outputFormat {
			case "json":
				return outputJSON(map[string]any{"value": result, "unit": args[2]})
			default:
				fmt.Printf("%g %s\n", result, args[2])
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format (text, json)")
	return cmd
}

func newQuantityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quantity",
		Short: "Operate on UCUM quantities (value + unit pairs)",
	}

	cmd.AddCommand(newQuantityAddCmd())
	cmd.AddCommand(newQuantityCompareCmd())
	return cmd
}

func newQuantityAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [value1] [unit1] [value2] [unit2]",
		Short: "Add two quantities, expressed in the first quantity's unit",
		Args:  cobra.ExactArgs(4),
		RunE: func(_ *cobra.Command, args []string) error {
			a, err := parseQuantityArgs(args[0], args[1])
			if err != nil {
				return err
			}
			b, err := parseQuantityArgs(args[2], args[3])
			if err != nil {
				return err
			}

			sum, err := a.Add(b)
			if err != nil {
				return err
			}
			fmt.Printf("%g %s\n", sum.Value(), sum.Unit())
			return nil
		},
	}
}

func newQuantityCompareCmd() *cobra.Command {
	var tolerance float64

	cmd := &cobra.Command{
		Use:   "compare [value1] [unit1] [value2] [unit2]",
		Short: "Compare two quantities for equality within a tolerance",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseQuantityArgs(args[0], args[1])
			if err != nil {
				return err
			}
			b, err := parseQuantityArgs(args[2], args[3])
			if err != nil {
				return err
			}

			// An unset flag leaves tolerancePtr nil; Float64Val maps nil to
			// 0, so an unset flag and an explicit --tolerance 0 both compare
			// for exact equality.
			var tolerancePtr *float64
			if cmd.Flags().Changed("tolerance") {
				tolerancePtr = common.Float64(tolerance)
			}

			eq, err := a.Equals(b, common.Float64Val(tolerancePtr))
			if err != nil {
				return err
			}
			fmt.Println(eq)
			return nil
		},
	}

	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "Absolute tolerance for equality")
	return cmd
}

func parseQuantityArgs(valueArg, unitArg string) (*ucum.Quantity, error) {
	value, err := strconv.ParseFloat(valueArg, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", valueArg, err)
	}
	return ucum.NewQuantity(value, unitArg)
}

func newRegistryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "registry [unit]",
		Short: "Report whether a unit code is known to the registry",
		Long: `Report whether a unit code is known to the registry.

This command ships a representative UCUM unit table — the base units, the
SI-derived and special units, and the clinical/arbitrary units needed to
exercise a conversion engine — rather than the full upstream UCUM essence
table. A production deployment generates the full table from the upstream
UCUM essence XML (https://ucum.org/ucum-essence.xml) instead of hand-listing
every entry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if ucum.IsKnownUnit(args[0]) {
				fmt.Printf("%s: known\n", args[0])
			} else {
				fmt.Printf("%s: unknown\n", args[0])
			}
			return nil
		},
	}
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
