package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	ConfigDir   string
	ShowVersion bool
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "subregops",
	Short: "Subreg registrar and DNS operations tool",
	Long:  "Subregops manages domains and DNS zones hosted at the Subreg registrar, with declarative zone files, mirror providers and offsite zone backups.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if ShowVersion {
			fmt.Println(Version)
			os.Exit(0)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&ConfigDir, "config", "c", ".", "Configuration directory")
	rootCmd.PersistentFlags().BoolVarP(&ShowVersion, "version", "v", false, "Show version information")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
