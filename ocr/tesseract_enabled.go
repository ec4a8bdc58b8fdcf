//go:build qbank_feature_ocr_tesseract || test

package ocr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

const FeatureTesseractEnabled = true

// Runs OCR with tesseract library linked into the binary
type Tesseract struct {
	config       TesseractConfig
	downloadLock sync.Mutex
}

func NewTesseract(config TesseractConfig) *Tesseract {
	return &Tesseract{
		config: config,
	}
}

func (p *Tesseract) NewWorker(ctx context.Context, languages []string, observer Observer) (Worker, error) {
	notify(observer, StageInitializing, 0)
	client := gosseract.NewClient()
	if err := client.DisableOutput(); err != nil {
		client.Close()
		return nil, errors.Join(errors.New("failed to disable logs"), err)
	}
	for key, val := range p.config.Variables {
		if err := client.SetVariable(gosseract.SettableVariable(key), val); err != nil {
			client.Close()
			return nil, errors.Join(fmt.Errorf("failed to set variable [%s]", key), err)
		}
	}
	notify(observer, StageInitializing, 1)

	notify(observer, StageLoadingLanguage, 0)
	if p.config.LoadCustomModels {
		if err := p.loadModels(ctx, languages); err != nil {
			client.Close()
			return nil, errors.Join(errors.New("failed to load language models"), err)
		}
		if err := client.SetTessdataPrefix(p.getModelsFolder()); err != nil {
			client.Close()
			return nil, errors.Join(errors.New("failed to set custom models folder"), err)
		}
	}
	if len(languages) > 0 {
		if err := client.SetLanguage(languages...); err != nil {
			client.Close()
			return nil, errors.Join(errors.New("failed to set languages"), err)
		}
	}
	notify(observer, StageLoadingLanguage, 1)

	return &tesseractWorker{client: client, observer: observer}, nil
}

type tesseractWorker struct {
	client   *gosseract.Client
	observer Observer
}

func (w *tesseractWorker) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	notify(w.observer, StageRecognizing, 0)
	if err := w.client.SetImageFromBytes(image); err != nil {
		return "", errors.Join(errors.New("failed to prepare image for OCR"), err)
	}
	result, err := w.client.Text()
	if err != nil {
		return "", errors.Join(errors.New("OCR process failed"), err)
	}
	notify(w.observer, StageRecognizing, 1)

	return result, nil
}

func (w *tesseractWorker) Terminate() error {
	return w.client.Close()
}

func (p *Tesseract) getModelDownloadLink(language string) string {
	var ocrModelLinkByType map[TesseractModelType]string = map[TesseractModelType]string{
		TesseractModelFast:        "https://github.com/tesseract-ocr/tessdata_fast/raw/refs/heads/main/",
		TesseractModelNormal:      "https://github.com/tesseract-ocr/tessdata/raw/refs/heads/main/",
		TesseractModelBestQuality: "https://github.com/tesseract-ocr/tessdata_best/raw/refs/heads/main/",
	}
	return ocrModelLinkByType[p.config.ModelType] + language + ".traineddata"
}

func (p *Tesseract) getModelsFolder() string {
	return path.Join(p.config.ModelsFolder, string(p.config.ModelType))
}

func (p *Tesseract) getModelPath(language string) string {
	return path.Join(p.getModelsFolder(), language+".traineddata")
}

func (p *Tesseract) loadModels(ctx context.Context, languages []string) error {
	p.downloadLock.Lock()
	defer p.downloadLock.Unlock()

	if err := os.MkdirAll(p.getModelsFolder(), 0700); err != nil {
		return errors.Join(errors.New("failed to create folder for models"), err)
	}

	for _, language := range languages {
		if _, err := os.Stat(p.getModelPath(language)); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				if downloadErr := p.downloadModel(ctx, language); downloadErr != nil {
					return errors.Join(errors.New("failed to download language model "+language), downloadErr)
				}
			} else {
				return errors.Join(errors.New("unexpected error while checking if model exists"), err)
			}
		}
	}

	return nil
}

func (p *Tesseract) downloadModel(ctx context.Context, language string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.getModelDownloadLink(language), nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(p.getModelPath(language)), "*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	return os.Rename(tmpFile.Name(), p.getModelPath(language))
}
