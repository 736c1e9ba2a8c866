package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var pollAckFlag bool

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Registrar account commands",
}

var accountCreditCmd = &cobra.Command{
	Use:   "credit",
	Short: "Show the account credit balance",
	Run: func(cmd *cobra.Command, args []string) {
		runAccountCredit()
	},
}

var accountPollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Fetch the oldest pending registrar notification",
	Run: func(cmd *cobra.Command, args []string) {
		runAccountPoll(pollAckFlag)
	},
}

var accountUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List sub-accounts visible to this login",
	Run: func(cmd *cobra.Command, args []string) {
		runAccountUsers()
	},
}

var accountContactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List registrar contacts",
	Run: func(cmd *cobra.Command, args []string) {
		runAccountContacts()
	},
}

var accountPricelistsCmd = &cobra.Command{
	Use:   "pricelists",
	Short: "List price tables on the account",
	Run: func(cmd *cobra.Command, args []string) {
		runAccountPricelists()
	},
}

var accountDocumentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List documents uploaded or generated on the account",
	Run: func(cmd *cobra.Command, args []string) {
		runAccountDocuments()
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountCreditCmd)
	accountCmd.AddCommand(accountPollCmd)
	accountPollCmd.Flags().BoolVar(&pollAckFlag, "ack", false, "Acknowledge the event after printing it")
	accountCmd.AddCommand(accountUsersCmd)
	accountCmd.AddCommand(accountContactsCmd)
	accountCmd.AddCommand(accountPricelistsCmd)
	accountCmd.AddCommand(accountDocumentsCmd)
}

func runAccountCredit() {
	app := mustLoadApp()
	credit, err := app.Registrar.GetCredit(context.Background())
	if err != nil {
		fatalf("Error fetching credit: %v", err)
	}
	fmt.Printf("Credit: %.2f %s\n", credit.Amount, credit.Currency)
}

func runAccountPoll(ack bool) {
	app := mustLoadApp()
	ctx := context.Background()

	event, err := app.Registrar.PollGet(ctx)
	if err != nil {
		fatalf("Error polling: %v", err)
	}
	if event == nil {
		fmt.Println("No pending events.")
		return
	}
	printEntity("event", "", event)

	if ack {
		if err := app.Registrar.PollAck(ctx, event.ID); err != nil {
			fatalf("Error acknowledging event %d: %v", event.ID, err)
		}
		fmt.Printf("Event %d acknowledged.\n", event.ID)
	}
}

func runAccountUsers() {
	app := mustLoadApp()
	users, err := app.Registrar.ListUsers(context.Background())
	if err != nil {
		fatalf("Error listing users: %v", err)
	}
	if len(users) == 0 {
		fmt.Println("No sub-accounts.")
		return
	}
	fmt.Println("USERS:")
	for _, u := range users {
		fmt.Printf("  %-20s credit %.2f %s\n", u.Login, u.Credit, u.Currency)
	}
}

func runAccountPricelists() {
	app := mustLoadApp()
	pricelists, err := app.Registrar.ListPricelists(context.Background())
	if err != nil {
		fatalf("Error listing pricelists: %v", err)
	}
	if len(pricelists) == 0 {
		fmt.Println("No pricelists.")
		return
	}
	fmt.Println("PRICELISTS:")
	for _, p := range pricelists {
		marker := ""
		if p.Default {
			marker = "  [default]"
		}
		fmt.Printf("  %-8s %-20s %s%s\n", p.ID, p.Name, p.Currency, marker)
	}
}

func runAccountDocuments() {
	app := mustLoadApp()
	documents, err := app.Registrar.ListDocuments(context.Background())
	if err != nil {
		fatalf("Error listing documents: %v", err)
	}
	if len(documents) == 0 {
		fmt.Println("No documents.")
		return
	}
	fmt.Println("DOCUMENTS:")
	for _, d := range documents {
		fmt.Printf("  %-8s %-30s %s %s\n", d.ID, d.Name, d.Type, d.Filetype)
	}
}

func runAccountContacts() {
	app := mustLoadApp()
	contacts, err := app.Registrar.ListContacts(context.Background())
	if err != nil {
		fatalf("Error listing contacts: %v", err)
	}
	if len(contacts) == 0 {
		fmt.Println("No contacts.")
		return
	}
	fmt.Println("CONTACTS:")
	for _, c := range contacts {
		name := c.Name
		if c.Surname != "" {
			name += " " + c.Surname
		}
		if c.Org != "" {
			name += " (" + c.Org + ")"
		}
		fmt.Printf("  %-8s %-30s %s\n", c.ID, name, c.Email)
	}
}
