package main

import (
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/thara/minibank/internal/adapter/http/dto"
	"github.com/thara/minibank/internal/adapter/http/handler"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "minibank-cli",
		Short: "Minibank CLI tool",
		Long:  `A command line interface for interacting with the minibank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the minibank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCmd())
	rootCmd.AddCommand(depositCmd())
	rootCmd.AddCommand(withdrawCmd())
	rootCmd.AddCommand(transferCmd())
	rootCmd.AddCommand(interestCmd())
	rootCmd.AddCommand(adminCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func api() *client {
	return newClient(baseURL, timeout)
}

func passwordHeader(password string) map[string]string {
	return map[string]string{handler.AccountPasswordHeader: password}
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var name, password, initialBalance string
	create := &cobra.Command{
		Use:   "create",
		Short: "Open a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.CreateAccountResponse
			err := api().do(http.MethodPost, "/api/v1/accounts", nil, map[string]string{
				"name":            name,
				"password":        password,
				"initial_balance": initialBalance,
			}, &resp)
			if err != nil {
				return err
			}
			fmt.Printf("Account created. Your account number is %s.\n", resp.AccountNumber)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "Account holder's name")
	create.Flags().StringVar(&password, "password", "", "Account password")
	create.Flags().StringVar(&initialBalance, "initial-balance", "0", "Initial deposit amount")
	create.MarkFlagRequired("name")
	create.MarkFlagRequired("password")

	var balancePassword string
	balance := &cobra.Command{
		Use:   "balance <account-number>",
		Short: "Check the current balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.BalanceResponse
			err := api().get("/api/v1/accounts/"+args[0]+"/balance", passwordHeader(balancePassword), &resp)
			if err != nil {
				return err
			}
			fmt.Printf("Current balance for account %s is %s\n", resp.AccountNumber, resp.Balance.StringFixed(2))
			return nil
		},
	}
	balance.Flags().StringVar(&balancePassword, "password", "", "Account password")
	balance.MarkFlagRequired("password")

	var historyPassword string
	history := &cobra.Command{
		Use:   "history <account-number>",
		Short: "Show the transaction history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.HistoryResponse
			err := api().get("/api/v1/accounts/"+args[0]+"/transactions", passwordHeader(historyPassword), &resp)
			if err != nil {
				return err
			}
			printHistory(&resp)
			return nil
		},
	}
	history.Flags().StringVar(&historyPassword, "password", "", "Account password")
	history.MarkFlagRequired("password")

	cmd.AddCommand(create, balance, history)
	return cmd
}

func amountCmd(use, short, path, verb string) *cobra.Command {
	var password, amount, description string
	cmd := &cobra.Command{
		Use:   use + " <account-number>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.BalanceResponse
			err := api().do(http.MethodPost, "/api/v1/accounts/"+args[0]+path, nil, map[string]string{
				"password":    password,
				"amount":      amount,
				"description": description,
			}, &resp)
			if err != nil {
				return err
			}
			fmt.Printf("%s successful. New balance: %s\n", verb, resp.Balance.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount")
	cmd.Flags().StringVar(&description, "description", "", "Description for this transaction")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func depositCmd() *cobra.Command {
	return amountCmd("deposit", "Deposit money into an account", "/deposits", "Deposit")
}

func withdrawCmd() *cobra.Command {
	return amountCmd("withdraw", "Withdraw money from an account", "/withdrawals", "Withdrawal")
}

func transferCmd() *cobra.Command {
	var from, to, password, amount, description string
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer money between accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.TransferResponse
			err := api().do(http.MethodPost, "/api/v1/transfers", nil, map[string]string{
				"from_account": from,
				"password":     password,
				"to_account":   to,
				"amount":       amount,
				"description":  description,
			}, &resp)
			if err != nil {
				return err
			}
			fmt.Printf("Transfer successful. New balance: %s\n", resp.Balance.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Source account number")
	cmd.Flags().StringVar(&to, "to", "", "Recipient account number")
	cmd.Flags().StringVar(&password, "password", "", "Source account password")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	cmd.Flags().StringVar(&description, "description", "", "Description for this transfer")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func interestCmd() *cobra.Command {
	var password, rate, years string
	cmd := &cobra.Command{
		Use:   "interest <account-number>",
		Short: "Accrue simple interest on an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.InterestResponse
			err := api().do(http.MethodPost, "/api/v1/accounts/"+args[0]+"/interest", nil, map[string]string{
				"password":            password,
				"annual_rate_percent": rate,
				"years":               years,
			}, &resp)
			if err != nil {
				return err
			}
			fmt.Printf("Interest of %s added. New balance: %s\n", resp.Interest.StringFixed(2), resp.Balance.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&rate, "rate", "", "Annual interest rate (in %)")
	cmd.Flags().StringVar(&years, "years", "", "Number of years")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("rate")
	cmd.MarkFlagRequired("years")
	return cmd
}

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative operations",
	}

	var username, password string
	login := &cobra.Command{
		Use:   "login",
		Short: "Log in as admin and print a session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.LoginResponse
			err := api().do(http.MethodPost, "/api/v1/admin/login", nil, map[string]string{
				"username": username,
				"password": password,
			}, &resp)
			if err != nil {
				return err
			}
			fmt.Println(resp.Token)
			return nil
		},
	}
	login.Flags().StringVar(&username, "username", "admin", "Admin username")
	login.Flags().StringVar(&password, "password", "", "Admin password")
	login.MarkFlagRequired("password")

	var accountsToken string
	accounts := &cobra.Command{
		Use:   "accounts",
		Short: "List all accounts with balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ListAccountsResponse
			err := api().get("/api/v1/admin/accounts", bearer(accountsToken), &resp)
			if err != nil {
				return err
			}
			printAccounts(&resp)
			return nil
		},
	}
	accounts.Flags().StringVar(&accountsToken, "token", "", "Admin session token")
	accounts.MarkFlagRequired("token")

	var historyToken string
	history := &cobra.Command{
		Use:   "history <account-number>",
		Short: "Show any account's transaction history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.HistoryResponse
			err := api().get("/api/v1/admin/accounts/"+args[0]+"/transactions", bearer(historyToken), &resp)
			if err != nil {
				return err
			}
			printHistory(&resp)
			return nil
		},
	}
	history.Flags().StringVar(&historyToken, "token", "", "Admin session token")
	history.MarkFlagRequired("token")

	var changeToken, oldPassword, newPassword string
	changePassword := &cobra.Command{
		Use:   "change-password",
		Short: "Change the admin password",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := api().do(http.MethodPut, "/api/v1/admin/password", bearer(changeToken), map[string]string{
				"old_password": oldPassword,
				"new_password": newPassword,
			}, nil)
			if err != nil {
				return err
			}
			fmt.Println("Admin password changed.")
			return nil
		},
	}
	changePassword.Flags().StringVar(&changeToken, "token", "", "Admin session token")
	changePassword.Flags().StringVar(&oldPassword, "old-password", "", "Current admin password")
	changePassword.Flags().StringVar(&newPassword, "new-password", "", "New admin password")
	changePassword.MarkFlagRequired("token")
	changePassword.MarkFlagRequired("old-password")
	changePassword.MarkFlagRequired("new-password")

	cmd.AddCommand(login, accounts, history, changePassword)
	return cmd
}

func printHistory(resp *dto.HistoryResponse) {
	fmt.Printf("Current balance: %s\n", resp.Balance.StringFixed(2))
	if len(resp.Transactions) == 0 {
		fmt.Println("No transactions yet.")
		return
	}

	fmt.Printf("\nTransaction history for account %s:\n", resp.AccountNumber)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tAMOUNT\tTIMESTAMP\tDESCRIPTION")
	for _, txn := range resp.Transactions {
		ts := ""
		if txn.Timestamp != nil {
			ts = txn.Timestamp.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", txn.Kind, txn.Amount.StringFixed(2), ts, txn.Description)
	}
	w.Flush()
}

func printAccounts(resp *dto.ListAccountsResponse) {
	if resp.Total == 0 {
		fmt.Println("No accounts found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACCOUNT\tNAME\tBALANCE")
	for _, a := range resp.Accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", a.AccountNumber, a.Name, a.Balance.StringFixed(2))
	}
	w.Flush()
}
