package main

import (
	"context"
	"fmt"
	"time"

	"github.com/internforge/backend/internal/database"
	"github.com/spf13/cobra"
)

func indexesCMD() *cobra.Command {
	var uri, dbName string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "indexes",
		Short: "Create the MongoDB indexes the API relies on",
		RunE: func(cmd *cobra.Command, args []string) error {
			if uri == "" {
				return fmt.Errorf("mongo uri not configured (--uri or MONGODB_URI)")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			client, err := database.ConnectMongo(ctx, uri, timeout)
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			names, err := database.EnsureIndexes(ctx, client.Database(dbName))
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&uri, "uri", getenv("MONGODB_URI", ""), "mongo connection string")
	cmd.Flags().StringVar(&dbName, "db", getenv("DB_NAME", getenv("MONGODB_DATABASE", "internforge")), "database name")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "connect and index timeout")
	return cmd
}
