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

	tenantID     string
	branchID     string
	costCenterID string
	warehouseID  string
	actingUserID string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fintxn-cli",
		Short: "fintxn CLI tool",
		Long:  `A command line interface for interacting with the fintxn API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the fintxn API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&tenantID, "tenant", "", "Tenant ID")
	rootCmd.PersistentFlags().StringVar(&branchID, "branch", "", "Branch ID")
	rootCmd.PersistentFlags().StringVar(&costCenterID, "cost-center", "", "Cost center ID")
	rootCmd.PersistentFlags().StringVar(&warehouseID, "warehouse", "", "Warehouse ID")
	rootCmd.PersistentFlags().StringVar(&actingUserID, "user", "", "Acting user ID")

	distCmd := &cobra.Command{
		Use:   "distribution",
		Short: "Distribution operations",
	}

	var distBody string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a distribution from a JSON request body",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/distributions", distBody)
		},
	}
	createCmd.Flags().StringVar(&distBody, "body", "", "Request body (JSON)")
	createCmd.MarkFlagRequired("body")

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show a distribution with its lines",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/distributions/"+args[0], "")
		},
	}

	distCmd.AddCommand(createCmd)
	distCmd.AddCommand(getCmd)
	rootCmd.AddCommand(distCmd)

	var payBody string
	payCmd := &cobra.Command{
		Use:   "pay [line-id]",
		Short: "Record a payment against a distribution line",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/distributions/lines/"+args[0]+"/payments", payBody)
		},
	}
	payCmd.Flags().StringVar(&payBody, "body", "", "Request body (JSON)")
	payCmd.MarkFlagRequired("body")
	rootCmd.AddCommand(payCmd)

	entryCmd := &cobra.Command{
		Use:   "entry [id]",
		Short: "Show a journal entry with its lines",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/journal-entries/"+args[0], "")
		},
	}
	rootCmd.AddCommand(entryCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func doRequest(method, path, body string) {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", tenantID)
	req.Header.Set("X-Branch-ID", branchID)
	req.Header.Set("X-Cost-Center-ID", costCenterID)
	req.Header.Set("X-Warehouse-ID", warehouseID)
	req.Header.Set("X-Acting-User-ID", actingUserID)

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		fmt.Printf("Status: %d\n%s\n", resp.StatusCode, string(raw))
	} else {
		fmt.Printf("Status: %d\n%s\n", resp.StatusCode, pretty.String())
	}

	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}
