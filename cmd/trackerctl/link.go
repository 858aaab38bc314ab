package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	linkCmd := &cobra.Command{Use: "link", Short: "Account-linking operations"}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Check whether the authenticated user is linked",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tokenFlag == "" {
				return fmt.Errorf("--token required")
			}
			data, err := doGet(apiFlag+"/api/alexa/check-link-status", tokenFlag)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	linkCmd.AddCommand(statusCmd)

	var code, redirectURI string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Link the authenticated user with an authorization code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tokenFlag == "" {
				return fmt.Errorf("--token required")
			}
			payload := map[string]interface{}{
				"code":         code,
				"redirect_uri": redirectURI,
			}
			data, err := doPostJSON(apiFlag+"/api/alexa/link-account", tokenFlag, payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&code, "code", "c", "", "Authorization code (required)")
	createCmd.Flags().StringVarP(&redirectURI, "redirect-uri", "r", "", "Redirect URI used in the grant (required)")
	_ = createCmd.MarkFlagRequired("code")
	_ = createCmd.MarkFlagRequired("redirect-uri")
	linkCmd.AddCommand(createCmd)

	unlinkCmd := &cobra.Command{
		Use:   "unlink",
		Short: "Unlink the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tokenFlag == "" {
				return fmt.Errorf("--token required")
			}
			data, err := doPostJSON(apiFlag+"/api/alexa/unlink-account", tokenFlag, struct{}{})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	linkCmd.AddCommand(unlinkCmd)

	rootCmd.AddCommand(linkCmd)
}
