package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opslake/subregops/internal/domain/entity"
)

var domainCmd = &cobra.Command{
	Use:   "domain",
	Short: "Registrar domain commands",
	Long:  "Query and manage registered domains on the registrar account.",
}

var domainCheckCmd = &cobra.Command{
	Use:   "check <domain>",
	Short: "Check domain availability",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDomainCheck(args[0])
	},
}

var domainInfoCmd = &cobra.Command{
	Use:   "info <domain>",
	Short: "Show registrar information for a domain",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDomainInfo(args[0])
	},
}

var domainListCmd = &cobra.Command{
	Use:   "list",
	Short: "List domains on the account",
	Run: func(cmd *cobra.Command, args []string) {
		runDomainList()
	},
}

var domainAutorenewCmd = &cobra.Command{
	Use:   "autorenew <domain> <policy>",
	Short: "Set the autorenew policy (EXPIRE, AUTORENEW, RENEWONCE)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runDomainAutorenew(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(domainCmd)
	domainCmd.AddCommand(domainCheckCmd)
	domainCmd.AddCommand(domainInfoCmd)
	domainCmd.AddCommand(domainListCmd)
	domainCmd.AddCommand(domainAutorenewCmd)
}

func runDomainCheck(name string) {
	app := mustLoadApp()
	avail, err := app.Registrar.CheckDomain(context.Background(), name)
	if err != nil {
		fatalf("Error checking domain: %v", err)
	}
	if avail {
		fmt.Printf("%s is available\n", name)
	} else {
		fmt.Printf("%s is taken\n", name)
	}
}

func runDomainInfo(name string) {
	app := mustLoadApp()
	info, err := app.Registrar.InfoDomain(context.Background(), name)
	if err != nil {
		fatalf("Error fetching domain info: %v", err)
	}
	printEntity("domain", name, info)
}

func runDomainList() {
	app := mustLoadApp()
	entries, err := app.Registrar.ListDomains(context.Background())
	if err != nil {
		fatalf("Error listing domains: %v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No domains on this account.")
		return
	}
	fmt.Println("DOMAINS:")
	for _, e := range entries {
		renew := ""
		if e.Autorenew == 1 {
			renew = "  [autorenew]"
		}
		fmt.Printf("  %-30s expires %s%s\n", e.Name, e.ExpireDate, renew)
	}
}

func runDomainAutorenew(name, policyArg string) {
	policy, err := entity.ParseAutorenewPolicy(policyArg)
	if err != nil {
		fatalf("Error: %v", err)
	}
	app := mustLoadApp()
	if err := app.Registrar.SetAutorenew(context.Background(), name, policy); err != nil {
		fatalf("Error setting autorenew: %v", err)
	}
	fmt.Printf("Autorenew for %s set to %s\n", name, policy)
}
