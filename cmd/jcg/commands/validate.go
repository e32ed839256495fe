package commands

import (
	"encoding/json"
	"fmt"

	"github.com/refactorhq/java-context-graph/pkg/javasrc"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a Java file for syntax errors",
	Long: `Parses a Java source file and reports syntax problems with line numbers.
Pass "-" to read from stdin. Exits non-zero when problems are found, so the
command works as a gate for generated or edited code.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]

		content, err := readSource(filePath)
		if err != nil {
			return err
		}

		problems := javasrc.Validate(content)

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			data, err := json.MarshalIndent(problems, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Println(string(data))
		} else if len(problems) == 0 {
			fmt.Println("OK")
		} else {
			for _, p := range problems {
				fmt.Println(p)
			}
		}

		if len(problems) > 0 {
			cmd.SilenceUsage = true
			return fmt.Errorf("%d syntax problem(s) found", len(problems))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolP("json", "j", false, "Output as JSON")
}
