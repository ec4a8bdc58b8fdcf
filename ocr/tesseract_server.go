package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type TesseractServerConfig struct {
	// HTTP client used to make requests to the server
	Client *http.Client `yaml:"-"`
	// Server base URL. For example http://127.0.0.1:8080
	// Make sure languages are installed on the server because default OCR server has only several languages enabled by default.
	BaseURL string `json:"baseURL" yaml:"baseURL"`
}

// Uses tesseract server as OCR backend. https://github.com/otiai10/ocrserver
type TesseractServer struct {
	config TesseractServerConfig
}

func NewTesseractServer(config TesseractServerConfig) *TesseractServer {
	return &TesseractServer{
		config: config,
	}
}

func (p *TesseractServer) NewWorker(ctx context.Context, languages []string, observer Observer) (Worker, error) {
	options, err := json.Marshal(struct {
		Languages []string `json:"languages"`
	}{Languages: languages})
	if err != nil {
		return nil, errors.Join(errors.New("failed to marshall OCR options"), err)
	}

	return &remoteWorker{
		observer: observer,
		recognize: func(ctx context.Context, image []byte) (string, error) {
			return p.ocr(ctx, image, string(options))
		},
	}, nil
}

func (p *TesseractServer) ocr(ctx context.Context, image []byte, options string) (string, error) {
	responseBytes, err := postMultipart(ctx, p.config.Client, p.config.BaseURL+"/tesseract", image, map[string]string{
		"options": options,
	})
	if err != nil {
		return "", err
	}

	var responseData struct {
		Data struct {
			Exit struct {
				Code uint `json:"code"`
			} `json:"exit"`
			StdErr string `json:"stderr"`
			StdOut string `json:"stdout"`
		} `json:"data"`
	}
	if err := json.Unmarshal(responseBytes, &responseData); err != nil {
		return "", errors.Join(errors.New("failed to unmarshall response from remote server"), err)
	}

	if responseData.Data.Exit.Code != 0 {
		return "", fmt.Errorf("bad OCR execution status code: status code %d: %s", responseData.Data.Exit.Code, responseData.Data.StdErr)
	}

	return responseData.Data.StdOut, nil
}

func (p *TesseractServer) IsMimeTypeSupported(mimeType string) bool {
	return mimeType == "image/jpeg" || mimeType == "image/png"
}
