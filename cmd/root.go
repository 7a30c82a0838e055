package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "docschat",
	Short: "Retrieval-augmented Q&A over a documentation corpus",
	Long: `Docschat ingests a documentation tree into a semantic vector index
and answers questions about it: a query is embedded, the nearest
documents are retrieved, and a completion model generates a reply
grounded in that context. It serves a chat API for documentation
sites and integrates with AI agents via MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".docschat.yml", "config file path")
}
