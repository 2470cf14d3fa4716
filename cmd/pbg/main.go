// Command pbg evaluates a single PBG boolean expression against
// variable bindings given on the command line.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pbglang/pbg"
	"github.com/spf13/cobra"
)

// Exit code constants, per the grammar's host-language contract:
// TRUE evaluates to 0, FALSE to 1, any error (parse or evaluation) to
// 2.
const (
	exitTrue  = 0
	exitFalse = 1
	exitError = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	var exprFlag string
	var bindings []string
	var typeOverrides []string
	var result bool

	root := &cobra.Command{
		Use:           "pbg [expression]",
		Short:         "Evaluate a PBG boolean expression",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := expressionSource(exprFlag, args)
			if err != nil {
				return err
			}

			dict, err := parseBindings(bindings, typeOverrides)
			if err != nil {
				return err
			}

			expr, err := pbg.Parse([]byte(source))
			if err != nil {
				return err
			}

			result, err = pbg.Evaluate(expr, dict)
			if err != nil {
				return err
			}

			if result {
				cmd.Println("TRUE")
			} else {
				cmd.Println("FALSE")
			}
			return nil
		},
	}

	root.Flags().StringVarP(&exprFlag, "expr", "e", "", "expression to evaluate (overrides the positional argument)")
	root.Flags().StringArrayVar(&bindings, "set", nil, "variable binding name=value, may be repeated")
	root.Flags().StringArrayVar(&typeOverrides, "type", nil, "force a binding's type tag, name=DATE|BOOL|NUMBER|STRING, may be repeated")

	if err := root.Execute(); err != nil {
		log.SetFlags(0)
		log.SetPrefix("pbg: ")
		log.Print(err)
		return exitError
	}
	if result {
		return exitTrue
	}
	return exitFalse
}

func expressionSource(flagVal string, args []string) (string, error) {
	if flagVal != "" {
		return flagVal, nil
	}
	if len(args) == 1 {
		return args[0], nil
	}
	return "", fmt.Errorf("pbg: an expression is required, either as an argument or via --expr")
}

func parseBindings(raw, overrides []string) (pbg.Dict, error) {
	forced := make(map[string]string, len(overrides))
	for _, o := range overrides {
		name, tag, ok := strings.Cut(o, "=")
		if !ok {
			return nil, fmt.Errorf("pbg: --type %q is not in name=TAG form", o)
		}
		forced[name] = tag
	}

	values := make(map[string]pbg.Field, len(raw))
	for _, b := range raw {
		name, val, ok := strings.Cut(b, "=")
		if !ok {
			return nil, fmt.Errorf("pbg: --set %q is not in name=value form", b)
		}
		f, err := fieldFromValue(val, forced[name])
		if err != nil {
			return nil, fmt.Errorf("pbg: binding %q: %w", b, err)
		}
		values[name] = f
	}
	return func(name string) pbg.Field {
		if f, ok := values[name]; ok {
			return f
		}
		return pbg.MakeNull()
	}, nil
}

// fieldFromValue builds the Field a --set binding resolves to. With no
// forced tag it classifies raw the same way the grammar classifies a
// literal field, so `--set active=TRUE` and `--set count=3` bind the
// types an expression's comparisons expect by default; `--type
// name=STRING` overrides that inference, e.g. to bind a
// numeric-looking value as a STRING on purpose.
func fieldFromValue(raw, forcedTag string) (pbg.Field, error) {
	switch forcedTag {
	case "DATE":
		var y, m, d int
		fmt.Sscanf(raw, "%d-%d-%d", &y, &m, &d)
		return pbg.MakeDate(y, m, d), nil
	case "BOOL":
		return pbg.MakeBool(raw == "TRUE"), nil
	case "NUMBER":
		var v float64
		fmt.Sscanf(raw, "%g", &v)
		return pbg.MakeNumber(v), nil
	case "STRING":
		return pbg.MakeString(strings.Trim(raw, "'")), nil
	case "":
		// fall through to inference below
	default:
		return pbg.Field{}, fmt.Errorf("unrecognized type tag %q", forcedTag)
	}

	switch pbg.Classify([]byte(raw)) {
	case pbg.FTTrue:
		return pbg.MakeBool(true), nil
	case pbg.FTFalse:
		return pbg.MakeBool(false), nil
	case pbg.FTNumber:
		var v float64
		fmt.Sscanf(raw, "%g", &v)
		return pbg.MakeNumber(v), nil
	case pbg.FTDate:
		var y, m, d int
		fmt.Sscanf(raw, "%d-%d-%d", &y, &m, &d)
		return pbg.MakeDate(y, m, d), nil
	default:
		return pbg.MakeString(strings.Trim(raw, "'")), nil
	}
}
