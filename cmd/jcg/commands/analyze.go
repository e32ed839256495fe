// Package commands provides the CLI commands for the java-context-graph tool.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/refactorhq/java-context-graph/internal/config"
	"github.com/refactorhq/java-context-graph/internal/log"
	"github.com/refactorhq/java-context-graph/pkg/cache"
	"github.com/refactorhq/java-context-graph/pkg/cfg"
	"github.com/refactorhq/java-context-graph/pkg/graph"
	"github.com/refactorhq/java-context-graph/pkg/javasrc"
	"github.com/spf13/cobra"
)

// methodDocument is one element of the analyze command's JSON output.
type methodDocument struct {
	Method      string              `json:"method"`
	StartLine   int                 `json:"start_line"`
	EndLine     int                 `json:"end_line"`
	Graph       *graph.ContextGraph `json:"graph"`
	Diagnostics []cfg.Diagnostic    `json:"diagnostics,omitempty"`
}

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file> [method]",
	Short: "Build context graphs for the methods in a Java file",
	Long: `Parses a Java source file and builds one context graph per method.
Outputs a JSON array with one document per method: the flattened statement
list, control flow successors, and data flow (reaching definition) successors.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]

		methodName, _ := cmd.Flags().GetString("method")
		if len(args) == 2 {
			methodName = args[1]
		}
		pretty, _ := cmd.Flags().GetBool("pretty")
		noCache, _ := cmd.Flags().GetBool("no-cache")

		cfgFile, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logger := newLogger(cfgFile)

		content, err := readSource(filePath)
		if err != nil {
			return err
		}

		// Serve from the cache when the same file/method pair was
		// analyzed before. Formatting is cheap, so only the raw
		// document is cached.
		var store *cache.Store
		key := cache.Key(content, methodName)
		if cfgFile.CacheEnabled && !noCache {
			store, err = cache.Open(cache.Options{Dir: cfgFile.CacheDir})
			if err != nil {
				logger.Warn("opening cache", "dir", cfgFile.CacheDir, "error", err)
			} else if doc, err := store.Get(key); err == nil {
				logger.Debug("cache hit", "file", filePath, "key", key)
				return printDocument(doc, pretty)
			}
		}

		results, err := javasrc.AnalyzeFile(context.Background(), content, javasrc.Options{
			Workers:       cfgFile.Workers,
			MaxIterations: cfgFile.MaxIterations,
			Method:        methodName,
		})
		if err != nil {
			return fmt.Errorf("analyzing %s: %w", filePath, err)
		}

		docs := make([]methodDocument, len(results))
		for i, r := range results {
			for _, d := range r.Diagnostics {
				logger.Warn("unsupported construct", "method", r.Method.Name, "statement", d.StatementID, "detail", d.Message)
			}
			docs[i] = methodDocument{
				Method:      r.Method.Name,
				StartLine:   r.Method.Span.StartLine,
				EndLine:     r.Method.Span.EndLine,
				Graph:       r.Graph,
				Diagnostics: r.Diagnostics,
			}
		}

		doc, err := json.Marshal(docs)
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}

		if store != nil {
			store.Put(key, doc)
			if err := store.Save(); err != nil {
				logger.Warn("saving cache", "dir", cfgFile.CacheDir, "error", err)
			}
		}

		return printDocument(doc, pretty)
	},
}

// newLogger builds the command logger from loaded configuration.
func newLogger(cfgFile *config.Config) log.Logger {
	level := log.InfoLevel
	if cfgFile.Verbose {
		level = log.DebugLevel
	}
	return log.New(log.LoggerConfig{
		Level:      level,
		JSONOutput: cfgFile.JSONLogs,
		Stderr:     os.Stderr,
	})
}

// readSource reads a Java source file, or stdin when the path is "-".
func readSource(filePath string) ([]byte, error) {
	if filePath == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return content, nil
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, expected a file: %s", filePath)
	}
	if !isJavaFile(filePath) {
		return nil, fmt.Errorf("unsupported file type: %s (only .java files supported)", filePath)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return content, nil
}

// isJavaFile checks if the file has a .java extension.
func isJavaFile(filePath string) bool {
	return strings.HasSuffix(filePath, ".java")
}

// printDocument writes a JSON document to stdout, re-indenting if requested.
func printDocument(doc []byte, pretty bool) error {
	if pretty {
		var raw json.RawMessage = doc
		out, err := json.MarshalIndent(raw, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		doc = out
	}
	fmt.Println(string(doc))
	return nil
}

func init() {
	analyzeCmd.Flags().StringP("method", "m", "", "Analyze only methods with this name")
	analyzeCmd.Flags().Bool("pretty", false, "Indent the JSON output")
	analyzeCmd.Flags().Bool("no-cache", false, "Bypass the document cache")
}
