package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"image-search-api/internal/config"
	"image-search-api/pkg/lambda"
	"image-search-api/pkg/server"
)

func newSearchCmd(cfg *config.Config, opts []server.Option) *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search labeled images and print the response envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd.Context(), cfg, opts, func(container *server.Container) error {
				req := &lambda.Request{
					Method:      http.MethodGet,
					Path:        "/search",
					QueryParams: map[string]string{"keyword": args[0]},
				}

				resp, err := container.SearchHandler.HandleSearch(cmd.Context(), req)
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), string(resp.Body))
				if resp.StatusCode != http.StatusOK {
					return fmt.Errorf("search failed with status %d", resp.StatusCode)
				}
				return nil
			})
		},
	}
}
