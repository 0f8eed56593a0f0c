// Command qualify scores contact-form submissions offline, for tuning the
// rules against exported leads without going through the API.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wolfman30/asbestos-leads/internal/qualification"
)

func main() {
	if err := rootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "qualify [submission.json]",
		Short: "Score a lead submission",
		Long: `Reads one JSON submission from a file, or from stdin when no file or "-"
is given, and prints the qualification result.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sub qualification.Submission
			if err := readJSON(args, stdin, &sub); err != nil {
				return err
			}
			return writeJSON(stdout, qualification.QualifyLead(sub), compact)
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "Print the result on one line")

	cmd.AddCommand(checkCmd(stdout))
	return cmd
}

// checkCmd runs a single contact validator, which is handy when a lead was
// rejected and the trace only says which field failed.
func checkCmd(stdout io.Writer) *cobra.Command {
	checks := map[string]func(string) qualification.Verdict{
		"email": qualification.CheckEmail,
		"phone": qualification.CheckPhone,
		"name":  qualification.CheckName,
	}
	return &cobra.Command{
		Use:       "check {email|phone|name} VALUE",
		Short:     "Explain a single contact field verdict",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"email", "phone", "name"},
		RunE: func(cmd *cobra.Command, args []string) error {
			check, ok := checks[args[0]]
			if !ok {
				return fmt.Errorf("unknown field %q", args[0])
			}
			verdict := check(args[1])
			if verdict.Valid {
				_, err := fmt.Fprintf(stdout, "%s: valid\n", args[0])
				return err
			}
			_, err := fmt.Fprintf(stdout, "%s: invalid (%s)\n", args[0], verdict.Reason)
			return err
		},
	}
}

func readJSON(args []string, stdin io.Reader, v any) error {
	in := stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open submission: %w", err)
		}
		defer f.Close()
		in = f
	}
	if err := json.NewDecoder(in).Decode(v); err != nil {
		return fmt.Errorf("decode submission: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v any, compact bool) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
