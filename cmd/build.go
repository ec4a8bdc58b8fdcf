package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/opengs/questionbank"
	"github.com/opengs/questionbank/ingest"
	"github.com/opengs/questionbank/source"
	sourcefs "github.com/opengs/questionbank/source/fs"
	"github.com/spf13/cobra"
)

var buildCMD = &cobra.Command{
	Use:   "build <folder>",
	Short: "Scan every image in the folder and export question bank",
	Long: "Scans every image in the folder and commits recognized text as a question. " +
		"Answer is read from `<image>" + sourcefs.AnswerSuffix + "` next to the image if it exists.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, cfg, err := newSession(cmd)
		if err != nil {
			return err
		}

		committed, err := buildFromSource(cmd.Context(), session, sourcefs.New(os.DirFS(args[0]), "."))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d questions collected\n", committed)

		artifact, err := session.Export(cmd.Context())
		if err != nil {
			return err
		}
		path, err := artifact.Save(cfg.Export.OutputDir)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

// Ingests, scans and commits every image of the source. Images that fail are skipped.
func buildFromSource(ctx context.Context, session *questionbank.Session, src source.Source) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	iterator, err := src.Open()
	if err != nil {
		return 0, errors.Join(errors.New("failed to open source"), err)
	}
	defer iterator.Close()

	committed := 0
	for {
		file, err := iterator.Next(ctx)
		if err != nil {
			if err == io.EOF {
				break
			}
			return committed, errors.Join(errors.New("error while iterating over source files"), err)
		}

		ok, err := buildFromFile(ctx, session, file)
		if closeErr := file.Close(); closeErr != nil {
			return committed, errors.Join(errors.New("error during closing processed file"), closeErr, err)
		}
		if err != nil {
			return committed, err
		}
		if ok {
			committed++
		}
	}

	return committed, nil
}

func buildFromFile(ctx context.Context, session *questionbank.Session, file source.FileHandler) (bool, error) {
	logger := session.Logger().With("path", file.Path())

	if _, err := session.Ingest(ingest.File{Name: file.Path(), Content: file}); err != nil {
		if errors.Is(err, ingest.ErrInvalidMediaType) || errors.Is(err, ingest.ErrTooLarge) {
			logger.Warn("skipping file", "error", err)
			return false, nil
		}
		return false, err
	}

	session.Draft.SetQuestion("")
	if _, err := session.Draft.Scan(ctx); err != nil {
		logger.Warn("image was not recognized", "error", err)
	}
	session.Draft.SetAnswer(file.Answer())

	record, err := session.Draft.Commit()
	if err != nil {
		return false, err
	}
	if record == nil {
		logger.Warn("nothing recognized on the image and no answer provided")
		if err := session.Draft.RemoveImage(); err != nil {
			return false, err
		}
		return false, nil
	}
	logger.Info("question collected", "id", record.ID)
	return true, nil
}
