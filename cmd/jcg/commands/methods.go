package commands

import (
	"encoding/json"
	"fmt"

	"github.com/refactorhq/java-context-graph/pkg/javasrc"
	"github.com/spf13/cobra"
)

// methodsCmd represents the methods command
var methodsCmd = &cobra.Command{
	Use:   "methods <file>",
	Short: "List the methods declared in a Java file",
	Long: `Parses a Java source file and lists every method and constructor
declaration with its line span. Useful for picking a --method argument
for the analyze command.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]

		content, err := readSource(filePath)
		if err != nil {
			return err
		}

		methods, err := javasrc.ListMethods(content)
		if err != nil {
			return fmt.Errorf("listing methods in %s: %w", filePath, err)
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			type methodInfo struct {
				Name      string `json:"name"`
				StartLine int    `json:"start_line"`
				EndLine   int    `json:"end_line"`
			}
			infos := make([]methodInfo, len(methods))
			for i, m := range methods {
				infos[i] = methodInfo{Name: m.Name, StartLine: m.Span.StartLine, EndLine: m.Span.EndLine}
			}
			data, err := json.MarshalIndent(infos, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		for _, m := range methods {
			fmt.Printf("%s (lines %d-%d)\n", m.Name, m.Span.StartLine, m.Span.EndLine)
		}
		return nil
	},
}

func init() {
	methodsCmd.Flags().BoolP("json", "j", false, "Output as JSON")
}
