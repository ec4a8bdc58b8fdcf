package main

import (
	"errors"
	"os"

	"github.com/opengs/questionbank"
	"github.com/opengs/questionbank/config"
	"github.com/opengs/questionbank/export"
	"github.com/opengs/questionbank/ocr"
	"github.com/spf13/cobra"
)

func addConfigFlags(cmd *cobra.Command) {
	defaults := config.Default()
	flags := cmd.PersistentFlags()

	flags.String("config", "", "Path to YAML configuration file")
	flags.String("ocr-provider", string(defaults.OCR.Provider), "OCR provider to use. Possible values are TESSERACT, TESSERACT_SERVER, PADDLE")
	flags.Bool("ocr-tesseract-load-custom-models", defaults.OCR.Tesseract.LoadCustomModels, "Load custom OCR models for tesseract during runtime")
	flags.String("ocr-tesseract-model", string(defaults.OCR.Tesseract.ModelType), "Model type to use. Supported values are FAST, NORMAL, BEST_QUALITY. Only works when custom models are loaded")
	flags.String("ocr-tesseract-models-folder", defaults.OCR.Tesseract.ModelsFolder, "Location on the disk where to load custom tesseract models")
	flags.StringSlice("ocr-tesseract-supported-mime-types", defaults.OCR.Tesseract.SupportedImageFormats, "List of mime types supported by tesseract")
	flags.String("ocr-server-url", "", "Base URL of the TESSERACT_SERVER or PADDLE OCR server")
	flags.String("export-format", defaults.Export.Format, "Exported document format. Possible values are docx, html, markdown")
	flags.String("output", defaults.Export.OutputDir, "Folder where exported documents are saved")
	flags.String("log-level", defaults.Log.Level, "Log level: debug, info, warn, error")
}

// Loads configuration file and applies flags that were explicitly set
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	flags := cmd.Flags()

	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if flags.Changed("ocr-provider") {
		provider, _ := flags.GetString("ocr-provider")
		cfg.OCR.Provider = config.OCRProviderName(provider)
	}
	if flags.Changed("ocr-tesseract-load-custom-models") {
		cfg.OCR.Tesseract.LoadCustomModels, _ = flags.GetBool("ocr-tesseract-load-custom-models")
	}
	if flags.Changed("ocr-tesseract-model") {
		model, _ := flags.GetString("ocr-tesseract-model")
		cfg.OCR.Tesseract.ModelType = ocr.TesseractModelType(model)
	}
	if flags.Changed("ocr-tesseract-models-folder") {
		cfg.OCR.Tesseract.ModelsFolder, _ = flags.GetString("ocr-tesseract-models-folder")
	}
	if flags.Changed("ocr-tesseract-supported-mime-types") {
		cfg.OCR.Tesseract.SupportedImageFormats, _ = flags.GetStringSlice("ocr-tesseract-supported-mime-types")
	}
	if flags.Changed("ocr-server-url") {
		url, _ := flags.GetString("ocr-server-url")
		cfg.OCR.TesseractServer.BaseURL = url
		cfg.OCR.Paddle.BaseURL = url
	}
	if flags.Changed("export-format") {
		cfg.Export.Format, _ = flags.GetString("export-format")
	}
	if flags.Changed("output") {
		cfg.Export.OutputDir, _ = flags.GetString("output")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// Builds session from command flags
func newSession(cmd *cobra.Command) (*questionbank.Session, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, config.Config{}, err
	}

	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return nil, config.Config{}, err
	}

	provider, err := cfg.OCR.NewProvider()
	if err != nil {
		return nil, config.Config{}, err
	}
	if cfg.OCR.Provider == config.OCRProviderTesseract && !ocr.FeatureTesseractEnabled {
		logger.Warn("binary was built without tesseract, scanning will fail. Rebuild with -tags qbank_feature_ocr_tesseract or use an OCR server")
	}

	serializer, err := export.SerializerFor(cfg.Export.Format)
	if err != nil {
		return nil, config.Config{}, err
	}

	session, err := questionbank.New(&questionbank.Config{
		OCRProvider:  provider,
		Serializer:   serializer,
		MaxImageSize: cfg.Server.MaxImageSize,
		Logger:       logger,
	})
	if err != nil {
		return nil, config.Config{}, errors.Join(errors.New("failed to create session"), err)
	}
	return session, cfg, nil
}
