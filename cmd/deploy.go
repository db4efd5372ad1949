package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/arvoai/arvo/internal/deployer"
	"github.com/arvoai/arvo/internal/fetch"
	"github.com/arvoai/arvo/internal/history"
	"github.com/arvoai/arvo/internal/provision"
	"github.com/arvoai/arvo/internal/strategy"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var deployCmd = &cobra.Command{
	Use:   "deploy [locator]",
	Short: "Analyze a repository and deploy it to the cloud",
	Long: `Fetch a repository (GitHub URL or local zip), analyze its stack, pick a
deployment strategy, render Terraform, provision it, and rewrite localhost
references to the deployed address.

Examples:
  arvo deploy https://github.com/user/repo
  arvo deploy https://github.com/user/repo --provider gcp --region us-central1
  arvo deploy ./app.zip --demo`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		req := requestFromFlags(cmd)
		d, cleanup := newDeployer(ctx, cmd, req)
		defer cleanup()

		res, err := d.Deploy(ctx, args[0], req)
		if err != nil {
			return fmt.Errorf("deployment failed: %w", err)
		}
		printResult(res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deployCmd)

	deployCmd.Flags().String("provider", "aws", "cloud provider: aws or gcp")
	deployCmd.Flags().String("region", "", "provider region")
	deployCmd.Flags().String("framework", "", "framework hint (informational; detection wins)")
	deployCmd.Flags().String("workdir", "terraform", "directory for rendered Terraform")
	deployCmd.Flags().String("github-token", "", "GitHub token for private repositories (or ARVO_GITHUB_TOKEN)")

	viper.BindPFlag("provider", deployCmd.Flags().Lookup("provider"))
	viper.BindPFlag("region", deployCmd.Flags().Lookup("region"))
	viper.BindPFlag("fetch.github_token", deployCmd.Flags().Lookup("github-token"))
}

// flagOrConfig resolves a string setting: a flag passed on the command line
// wins, then config/env through viper, then the flag default.
func flagOrConfig(cmd *cobra.Command, flag, key string) string {
	f := cmd.Flags().Lookup(flag)
	if f != nil && f.Changed {
		return f.Value.String()
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	if f != nil {
		return f.DefValue
	}
	return ""
}

// githubToken prefers the command's own flag over config/env.
func githubToken(cmd *cobra.Command) string {
	return flagOrConfig(cmd, "github-token", "fetch.github_token")
}

func requestFromFlags(cmd *cobra.Command) strategy.Request {
	hint, _ := cmd.Flags().GetString("framework")
	return strategy.Request{
		Provider:      flagOrConfig(cmd, "provider", "provider"),
		Region:        flagOrConfig(cmd, "region", "region"),
		FrameworkHint: hint,
	}
}

// newDeployer assembles the pipeline from flags and config. The returned
// cleanup closes the history store.
func newDeployer(ctx context.Context, cmd *cobra.Command, req strategy.Request) (*deployer.Deployer, func()) {
	workdir := flagOrConfig(cmd, "workdir", "workdir")
	if workdir == "" {
		workdir = "terraform"
	}

	demo := viper.GetBool("demo")
	if !demo && req.Provider == strategy.ProviderAWS && !provision.DetectAWSCredentials(ctx) {
		logrus.Info("AWS credentials not found - using demo mode")
		demo = true
	}

	var executor provision.Executor
	var waiter deployer.Waiter
	if demo {
		executor = provision.Demo{}
	} else {
		executor = &provision.Terraform{}
		if req.Provider == strategy.ProviderAWS {
			if account, err := provision.CallerIdentity(ctx); err == nil {
				logrus.WithField("account", account).Debug("deploying with AWS credentials")
			}
			waiter = &provision.InstanceWaiter{Region: req.Region}
		}
	}

	d := &deployer.Deployer{
		Fetcher:  fetch.New(githubToken(cmd)),
		Executor: executor,
		Waiter:   waiter,
		WorkDir:  workdir,
	}

	cleanup := func() {}
	historyPath := viper.GetString("history.path")
	if historyPath == "" {
		historyPath = defaultHistoryPath()
	}
	if store, err := history.Open(historyPath); err != nil {
		logrus.WithError(err).Warn("deployment history disabled")
	} else {
		d.History = store
		cleanup = func() { store.Close() }
	}
	return d, cleanup
}

func printResult(res *deployer.Result) {
	fmt.Fprintln(os.Stdout, "Deployment successful!")
	fmt.Fprintf(os.Stdout, "  Application:    %s/%s\n", res.Profile.Language, orDash(res.Profile.Framework))
	fmt.Fprintf(os.Stdout, "  Strategy:       %s (%s)\n", res.Strategy.Kind, res.Strategy.Description)
	fmt.Fprintf(os.Stdout, "  Public address: %s\n", res.PublicAddress)
	fmt.Fprintf(os.Stdout, "  Application URL: %s\n", res.AppURL)
	fmt.Fprintf(os.Stdout, "  Instance ID:    %s\n", res.InstanceID)
	fmt.Fprintf(os.Stdout, "  Terraform:      %s\n", res.TemplateDir)
	fmt.Fprintf(os.Stdout, "  Files rewritten: %d\n", len(res.ModifiedFiles))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
