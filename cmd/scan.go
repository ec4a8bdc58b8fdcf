package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/opengs/questionbank/ingest"
	"github.com/spf13/cobra"
)

var scanCMD = &cobra.Command{
	Use:   "scan <image>",
	Short: "Print text recognized on the image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _, err := newSession(cmd)
		if err != nil {
			return err
		}

		file, err := os.Open(args[0])
		if err != nil {
			return errors.Join(errors.New("failed to open image"), err)
		}
		defer file.Close()

		if _, err := session.Ingest(ingest.File{Name: filepath.Base(args[0]), Content: file}); err != nil {
			return err
		}

		scan, err := session.Draft.StartScan(context.Background())
		if err != nil {
			return err
		}
		for progress := range scan.Updates() {
			fmt.Fprintf(cmd.ErrOrStderr(), "\rscanning... %d%%", progress)
		}
		fmt.Fprintln(cmd.ErrOrStderr())

		text, err := scan.Wait()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}
