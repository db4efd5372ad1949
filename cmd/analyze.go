package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/arvoai/arvo/internal/analyzer"
	"github.com/arvoai/arvo/internal/fetch"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path-or-locator]",
	Short: "Classify a repository without deploying it",
	Long: `Analyze a local directory, a zip file, or a GitHub URL and print the
detected application profile (language, framework, start commands, port).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		target := args[0]
		if info, err := os.Stat(target); err != nil || !info.IsDir() {
			dir, err := fetch.New(githubToken(cmd)).Fetch(ctx, target)
			if err != nil {
				return err
			}
			defer os.RemoveAll(dir)
			target = dir
		}

		profile, err := analyzer.Analyze(target)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("output")
		switch format {
		case "yaml":
			data, err := yaml.Marshal(profile)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
		case "json":
			data, err := json.MarshalIndent(profile, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
		default:
			return fmt.Errorf("unknown output format %q (json or yaml)", format)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("output", "o", "json", "output format: json or yaml")
	analyzeCmd.Flags().String("github-token", "", "GitHub token for private repositories")
}
