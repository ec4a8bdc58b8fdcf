package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

type PaddleConfig struct {
	// HTTP client used to make requests to the server
	Client *http.Client `yaml:"-"`
	// Server base URL. For example http://127.0.0.1:8884
	BaseURL string `json:"baseURL" yaml:"baseURL"`
}

func DefaultPaddleConfig() PaddleConfig {
	return PaddleConfig{
		BaseURL: "http://127.0.0.1:8884",
		Client:  http.DefaultClient,
	}
}

// Uses Paddle OCR server as OCR backend
type Paddle struct {
	config PaddleConfig
}

func NewPaddle(config PaddleConfig) *Paddle {
	return &Paddle{
		config: config,
	}
}

func (p *Paddle) NewWorker(ctx context.Context, languages []string, observer Observer) (Worker, error) {
	return &remoteWorker{
		observer: observer,
		recognize: func(ctx context.Context, image []byte) (string, error) {
			return p.ocr(ctx, image, languages)
		},
	}, nil
}

func (p *Paddle) ocr(ctx context.Context, image []byte, languages []string) (string, error) {
	responseBytes, err := postMultipart(ctx, p.config.Client, p.config.BaseURL+"/ocr", image, map[string]string{
		"languages": strings.Join(languages, ","),
	})
	if err != nil {
		return "", err
	}

	var responseData struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(responseBytes, &responseData); err != nil {
		return "", errors.Join(errors.New("failed to unmarshall response from remote server"), err)
	}

	return responseData.Text, nil
}

func (p *Paddle) IsMimeTypeSupported(mimeType string) bool {
	return mimeType == "image/jpeg" || mimeType == "image/png"
}
