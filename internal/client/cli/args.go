package cli

import (
	"context"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var negativeID = regexp.MustCompile(`^-[0-9]+$`)

// Execute runs root with args. Records created offline have negative ids,
// which pflag would otherwise read as shorthand flags ("-1"), so bare
// negative numbers are passed as positional arguments.
func Execute(ctx context.Context, root *cobra.Command, args []string) error {
	root.SetArgs(normalizeArgs(root, args))
	return root.ExecuteContext(ctx)
}

// normalizeArgs moves bare negative numbers behind a "--" terminator, keeping
// their order. A negative number that is the value of a flag stays in place.
func normalizeArgs(root *cobra.Command, args []string) []string {
	takesValue := valueFlags(root)

	head := make([]string, 0, len(args)+1)
	var ids []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			if len(ids) == 0 {
				return args
			}
			head = append(head, arg)
			head = append(head, ids...)
			return append(head, args[i+1:]...)
		case negativeID.MatchString(arg):
			ids = append(ids, arg)
		case takesValue(arg) && i+1 < len(args):
			head = append(head, arg, args[i+1])
			i++
		default:
			head = append(head, arg)
		}
	}

	if len(ids) == 0 {
		return args
	}
	head = append(head, "--")
	return append(head, ids...)
}

// valueFlags returns a matcher for "--name" and "-n" tokens of flags that
// read their value from the next argument
func valueFlags(root *cobra.Command) func(arg string) bool {
	long := make(map[string]bool)
	short := make(map[string]bool)

	var walk func(cmd *cobra.Command)
	walk = func(cmd *cobra.Command) {
		visit := func(f *pflag.Flag) {
			if f.NoOptDefVal != "" {
				return
			}
			long[f.Name] = true
			if f.Shorthand != "" {
				short[f.Shorthand] = true
			}
		}
		cmd.Flags().VisitAll(visit)
		cmd.PersistentFlags().VisitAll(visit)
		for _, sub := range cmd.Commands() {
			walk(sub)
		}
	}
	walk(root)

	return func(arg string) bool {
		if strings.Contains(arg, "=") {
			return false
		}
		if name, ok := strings.CutPrefix(arg, "--"); ok {
			return long[name]
		}
		if name, ok := strings.CutPrefix(arg, "-"); ok && len(name) == 1 {
			return short[name]
		}
		return false
	}
}
