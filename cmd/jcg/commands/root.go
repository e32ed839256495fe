package commands

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "jcg",
	Short: "java-context-graph - Per-method control and data flow graphs for Java",
	Long: `java-context-graph builds statement-level context graphs for Java methods.
Each graph pairs a flattened statement list with control flow successor
edges and reaching-definition data flow edges.

Commands:
  analyze     Build context graphs for the methods in a file
  methods     List the methods declared in a file
  validate    Check a file for syntax errors
  init        Create a configuration file interactively

Use "jcg [command] --help" for more information about a command.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	// Add subcommands
	RootCmd.AddCommand(analyzeCmd)
	RootCmd.AddCommand(methodsCmd)
	RootCmd.AddCommand(validateCmd)
	RootCmd.AddCommand(initCmd)
}
