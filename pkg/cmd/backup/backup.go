package backup

import (
	"fmt"
	"os"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/ingenium-notes/ingenium/internal/backup"
	"github.com/ingenium-notes/ingenium/internal/state"
)

func NewCmdBackup(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export, import and upload snapshots of your notes.",
	}

	cmd.AddCommand(newCmdExport(s), newCmdImport(s), newCmdPush(s))
	return cmd
}

func newCmdExport(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write a JSON snapshot to a file, or stdout with no argument.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Queue.Flush(cmd.Context()); err != nil {
				return err
			}

			data, err := backup.Export(s.Collection)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[0])
			return nil
		},
	}
}

func newCmdImport(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all folders and notes with a snapshot.",
		Long: heredoc.Doc(`
			Replaces the entire collection, in memory and in storage, with
			the contents of the snapshot file. There is no merge.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}
			if err := backup.Import(cmd.Context(), s.Collection, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", args[0])
			return nil
		},
	}
}

func newCmdPush(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upload a snapshot to the configured S3 bucket.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket := s.Config.Backup.S3Bucket
			if b, _ := cmd.Flags().GetString("bucket"); b != "" {
				bucket = b
			}
			if bucket == "" {
				return fmt.Errorf("no bucket: set backup.s3_bucket or pass --bucket")
			}

			if err := s.Queue.Flush(cmd.Context()); err != nil {
				return err
			}
			data, err := backup.Export(s.Collection)
			if err != nil {
				return err
			}

			key := fmt.Sprintf("ingenium/%s.json", time.Now().UTC().Format("2006-01-02T15-04-05"))
			if err := backup.Push(cmd.Context(), s.Config.Backup.S3Region, bucket, key, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded s3://%s/%s\n", bucket, key)
			return nil
		},
	}

	cmd.Flags().String("bucket", "", "Override the configured S3 bucket")
	return cmd
}
