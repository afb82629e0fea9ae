package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gotransfers-cli",
		Short: "GoTransfers CLI tool",
		Long:  `A command line interface for interacting with the GoTransfers API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoTransfers API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer operations",
	}

	accountCmd := &cobra.Command{
		Use:   "account [client-id] [from-account] [to-account] [amount] [currency]",
		Short: "Transfer between accounts",
		Args:  cobra.ExactArgs(5),
		Run: func(cmd *cobra.Command, args []string) {
			makeTransfer(map[string]any{
				"requestType":       "ACCOUNT",
				"clientId":          args[0],
				"accountNumberFrom": args[1],
				"accountNumberTo":   args[2],
				"amount":            args[3],
				"cur":               args[4],
			})
		},
	}

	phoneCmd := &cobra.Command{
		Use:   "phone [client-id] [from-phone] [to-phone] [amount] [currency]",
		Short: "Transfer between main accounts by phone number",
		Args:  cobra.ExactArgs(5),
		Run: func(cmd *cobra.Command, args []string) {
			makeTransfer(map[string]any{
				"requestType":     "PHONE",
				"clientId":        args[0],
				"phoneNumberFrom": args[1],
				"phoneNumberTo":   args[2],
				"amount":          args[3],
				"cur":             args[4],
			})
		},
	}

	getCmd := &cobra.Command{
		Use:   "get [transfer-id]",
		Short: "Look up a recorded transfer",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getTransfer(args[0])
		},
	}

	transferCmd.AddCommand(accountCmd)
	transferCmd.AddCommand(phoneCmd)
	transferCmd.AddCommand(getCmd)
	rootCmd.AddCommand(transferCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func makeTransfer(payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/transfers", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Transfer FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(respBody))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(respBody, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", result["message"])
	fmt.Printf("Balance: %s\n", result["balance"])
}

func getTransfer(id string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/transfers/" + id)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Lookup FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Transfer %s\n", result["id"])
	fmt.Printf("From:   %s\n", result["accountNumberFrom"])
	fmt.Printf("To:     %s\n", result["accountNumberTo"])
	fmt.Printf("Amount: %s %s\n", result["amount"], result["cur"])
	fmt.Printf("Date:   %s\n", result["transactionDateTime"])
}
