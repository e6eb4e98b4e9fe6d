package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dealerledger-cli",
		Short: "DealerLedger CLI tool",
		Long:  `A command line interface for interacting with the DealerLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the DealerLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCmd())
	rootCmd.AddCommand(movementCmd())
	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(allocateCmd())
	rootCmd.AddCommand(reconcileCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var openingBalance string
	createCmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/accounts/", map[string]any{
				"name":            args[0],
				"opening_balance": openingBalance,
			})
		},
	}
	createCmd.Flags().StringVar(&openingBalance, "opening-balance", "0", "Opening balance")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/accounts/")
		},
	}

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Get an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/accounts/" + args[0])
		},
	}

	cmd.AddCommand(createCmd, listCmd, getCmd)
	return cmd
}

func movementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movement",
		Short: "Movement operations",
	}

	var (
		kind         string
		origin       string
		destination  string
		stakeholder  string
		saleRef      string
		category     string
		description  string
		count        int
		firstDueDays int
		intervalDays int
	)
	confirmCmd := &cobra.Command{
		Use:   "confirm [amount]",
		Short: "Confirm a movement",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{
				"kind":        kind,
				"amount":      args[0],
				"category":    category,
				"description": description,
				"schedule": map[string]any{
					"count":                 count,
					"first_due_offset_days": firstDueDays,
					"interval_days":         intervalDays,
				},
			}
			if origin != "" {
				payload["origin_account_id"] = origin
			}
			if destination != "" {
				payload["destination_account_id"] = destination
			}
			if stakeholder != "" {
				payload["stakeholder_id"] = stakeholder
			}
			if saleRef != "" {
				payload["sale_ref"] = saleRef
			}
			doPost("/api/v1/movements/", payload)
		},
	}
	confirmCmd.Flags().StringVar(&kind, "kind", "transfer", "Movement kind (transfer, withdrawal, expense, receivable)")
	confirmCmd.Flags().StringVar(&origin, "origin", "", "Origin account ID")
	confirmCmd.Flags().StringVar(&destination, "destination", "", "Destination account ID")
	confirmCmd.Flags().StringVar(&stakeholder, "stakeholder", "", "Stakeholder ID")
	confirmCmd.Flags().StringVar(&saleRef, "sale-ref", "", "Sale reference")
	confirmCmd.Flags().StringVar(&category, "category", "", "Category")
	confirmCmd.Flags().StringVar(&description, "description", "", "Description")
	confirmCmd.Flags().IntVar(&count, "count", 1, "Number of installments")
	confirmCmd.Flags().IntVar(&firstDueDays, "first-due-days", 0, "Days until the first installment is due")
	confirmCmd.Flags().IntVar(&intervalDays, "interval-days", 30, "Days between installments")

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Get a movement",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/movements/" + args[0])
		},
	}

	installmentsCmd := &cobra.Command{
		Use:   "installments [id]",
		Short: "List a movement's installments",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/movements/" + args[0] + "/installments")
		},
	}

	reverseCmd := &cobra.Command{
		Use:   "reverse [id]",
		Short: "Reverse a movement",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/movements/"+args[0]+"/reverse", nil)
		},
	}

	var settleAccount string
	settleCmd := &cobra.Command{
		Use:   "settle [id] [sequence]",
		Short: "Settle one installment of a movement",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			var body map[string]any
			if settleAccount != "" {
				body = map[string]any{"account_id": settleAccount}
			}
			doPost("/api/v1/movements/"+args[0]+"/installments/"+args[1]+"/settle", body)
		},
	}
	settleCmd.Flags().StringVar(&settleAccount, "account", "", "Settlement account ID")

	cmd.AddCommand(confirmCmd, getCmd, installmentsCmd, reverseCmd, settleCmd)
	return cmd
}

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Schedule operations",
	}

	var (
		count        int
		firstDueDays int
		intervalDays int
	)
	previewCmd := &cobra.Command{
		Use:   "preview [total]",
		Short: "Preview an installment schedule without persisting anything",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doPost("/api/v1/schedule/preview", map[string]any{
				"total": args[0],
				"schedule": map[string]any{
					"count":                 count,
					"first_due_offset_days": firstDueDays,
					"interval_days":         intervalDays,
				},
			})
		},
	}
	previewCmd.Flags().IntVar(&count, "count", 1, "Number of installments")
	previewCmd.Flags().IntVar(&firstDueDays, "first-due-days", 0, "Days until the first installment is due")
	previewCmd.Flags().IntVar(&intervalDays, "interval-days", 30, "Days between installments")

	cmd.AddCommand(previewCmd)
	return cmd
}

func allocateCmd() *cobra.Command {
	var shares []string
	cmd := &cobra.Command{
		Use:   "allocate [revenue] [cost]",
		Short: "Preview a profit allocation across stakeholders",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			parsed := make([]map[string]any, 0, len(shares))
			for _, s := range shares {
				id, pct, ok := strings.Cut(s, ":")
				if !ok {
					fmt.Printf("Invalid share %q, expected stakeholder:percentage\n", s)
					os.Exit(1)
				}
				parsed = append(parsed, map[string]any{
					"stakeholder_id": id,
					"percentage":     pct,
				})
			}
			doPost("/api/v1/allocations/preview", map[string]any{
				"total_revenue": args[0],
				"total_cost":    args[1],
				"shares":        parsed,
			})
		},
	}
	cmd.Flags().StringSliceVar(&shares, "share", nil, "Stakeholder share as id:percentage (repeatable)")

	return cmd
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Run a reconciliation report across all accounts",
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/reconciliation")
		},
	}
}

func doGet(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func doPost(path string, payload map[string]any) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", body)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, truncate(string(body), 500))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("%s\n", string(body))
		return
	}

	printJSON(result)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
