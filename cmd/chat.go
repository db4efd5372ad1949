package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/arvoai/arvo/internal/intent"
	"github.com/spf13/cobra"
)

var exitWords = map[string]bool{"exit": true, "bye": true, "quit": true, "goodbye": true, "stop": true}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive deployment session",
	Long: `Describe a deployment in plain language with a repository URL and arvo
analyzes and deploys it. Example:

  Deploy this flask app on AWS: https://github.com/user/repo`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printWelcome()
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("You: ")
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if exitWords[strings.ToLower(line)] {
				fmt.Println("\narvo: Thanks for using arvo!")
				return nil
			}
			handleChatLine(cmd, line)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().String("workdir", "terraform", "directory for rendered Terraform")
	chatCmd.Flags().String("github-token", "", "GitHub token for private repositories")
}

func handleChatLine(cmd *cobra.Command, line string) {
	locator := intent.ExtractLocator(line)
	if locator == "" {
		fmt.Println("\narvo: Please provide a GitHub repository URL or zip file path. For example:")
		fmt.Println("  'Deploy this flask app on AWS: https://github.com/user/repo'")
		fmt.Println()
		return
	}

	req := intent.Parse(line)
	fmt.Printf("\narvo: deploying %s to %s ...\n\n", locator, req.Provider)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	d, cleanup := newDeployer(ctx, cmd, req)
	defer cleanup()

	res, err := d.Deploy(ctx, locator, req)
	if err != nil {
		fmt.Printf("arvo: deployment failed: %v\n\n", err)
		return
	}
	printResult(res)
	fmt.Println()
}

func printWelcome() {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Welcome to arvo")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Describe your deployment and provide a repository, e.g.:")
	fmt.Println("  Deploy this flask app on AWS: https://github.com/user/repo")
	fmt.Println("Type 'exit' or 'bye' to quit.")
	fmt.Println(strings.Repeat("=", 60))
}
