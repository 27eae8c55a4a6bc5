package main

import (
	"fmt"
	"io"
	"os"

	"github.com/internforge/backend/internal/config"
	"github.com/internforge/backend/internal/llmjson"
	"github.com/internforge/backend/internal/storage"
	"github.com/spf13/cobra"
)

// fetchArchived is replaced in tests.
var fetchArchived = func(cmd *cobra.Command, key string) (string, error) {
	cfg := config.MinIOConfig{
		Endpoint:  os.Getenv("MINIO_ENDPOINT"),
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		UseSSL:    getenvBool("MINIO_USE_SSL"),
		Bucket:    getenv("MINIO_BUCKET", "internforge"),
	}
	if !cfg.Enabled() {
		return "", fmt.Errorf("MINIO_ENDPOINT is not set")
	}
	st, err := storage.NewMinIOStorage(cmd.Context(), cfg)
	if err != nil {
		return "", err
	}
	return storage.NewMinIOArchiver(st).Fetch(cmd.Context(), key)
}

func checkOutputCMD() *cobra.Command {
	var kind, archived string

	cmd := &cobra.Command{
		Use:   "check-output [FILE]",
		Short: "Validate a raw model output the way the API does",
		Long:  "Reads a plan or feedback output from FILE, stdin (-) or the archive (--archived KEY) and reports whether it would be accepted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readOutput(cmd, args, archived)
			if err != nil {
				return err
			}
			return checkOutput(cmd.OutOrStdout(), kind, raw)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "plan", "output kind: plan or feedback")
	cmd.Flags().StringVar(&archived, "archived", "", "archive object key to fetch instead of FILE")
	return cmd
}

func readOutput(cmd *cobra.Command, args []string, archived string) (string, error) {
	if archived != "" {
		return fetchArchived(cmd, archived)
	}
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	}
	b, err := os.ReadFile(args[0])
	return string(b), err
}

func checkOutput(w io.Writer, kind, raw string) error {
	var err error
	switch kind {
	case "plan":
		var plan *llmjson.Plan
		if plan, err = llmjson.DecodePlan(raw); err == nil {
			fmt.Fprintf(w, "ok: %d weekly plans, %d tasks\n", len(plan.WeeklyPlans), len(plan.Tasks))
		}
	case "feedback":
		var fb *llmjson.Feedback
		if fb, err = llmjson.DecodeFeedback(raw); err == nil {
			fmt.Fprintf(w, "ok: %d strengths, %d weaknesses\n", len(fb.Strengths), len(fb.Weaknesses))
		}
	default:
		return fmt.Errorf("unknown kind %q (want plan or feedback)", kind)
	}
	if err != nil {
		fmt.Fprintf(w, "rejected: stage=%s\n", llmjson.Stage(err))
		return err
	}
	return nil
}
