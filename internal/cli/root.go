// Package cli is the command surface for refactorctl, a thin demo
// binary that exercises the refactor core against template fixtures on
// disk. It is a consumer of internal/app/refactor, not part of the
// core library (SPEC_FULL.md §2, §8).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "refactorctl",
	Short: "Exercise the stack refactoring core against template fixtures",
	Long: `refactorctl is a demo CLI around the stackmove refactor core.

It loads deployed and local CloudFormation template fixtures from disk,
runs digest computation, move planning, or stack-definition synthesis,
and prints the result as JSON. It is not the refactor API itself: no
credentials, no network calls, no orchestration commands.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It is called by main.main() once.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() {
		_ = initConfig()
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.refactorctl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "quiet output (errors only)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))

	rootCmd.AddCommand(digestCmd, planCmd, synthesizeCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".refactorctl")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "using config file: %s\n", viper.ConfigFileUsed())
	}

	return nil
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool { return viper.GetBool("verbose") }

// IsQuiet returns whether quiet mode is enabled.
func IsQuiet() bool { return viper.GetBool("quiet") }
