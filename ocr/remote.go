package ocr

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
)

// Worker for OCR backends running behind HTTP. Holds no resources, servers do not report progress.
type remoteWorker struct {
	observer  Observer
	recognize func(ctx context.Context, image []byte) (string, error)
}

func (w *remoteWorker) Recognize(ctx context.Context, image []byte) (string, error) {
	notify(w.observer, StageRecognizing, 0)
	text, err := w.recognize(ctx, image)
	if err != nil {
		return "", err
	}
	notify(w.observer, StageRecognizing, 1)
	return text, nil
}

func (w *remoteWorker) Terminate() error {
	return nil
}

// Builds multipart body with the image in `file` field and additional fields
func buildMultipart(image []byte, fields map[string]string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	imagePart, err := writer.CreateFormFile("file", "data")
	if err != nil {
		return nil, "", errors.Join(errors.New("failed to prepare multipart form data: failed to prepare image for sending as file"), err)
	}
	if _, err = io.Copy(imagePart, bytes.NewReader(image)); err != nil {
		return nil, "", errors.Join(errors.New("failed to prepare multipart form data: failed to write image to multipart"), err)
	}

	for key, value := range fields {
		if err = writer.WriteField(key, value); err != nil {
			return nil, "", errors.Join(errors.New("failed to prepare multipart form data: failed to write field "+key), err)
		}
	}

	if err = writer.Close(); err != nil {
		return nil, "", errors.Join(errors.New("failed to prepare multipart form data: failed to finalize writer"), err)
	}
	return body, writer.FormDataContentType(), nil
}

func postMultipart(ctx context.Context, client *http.Client, url string, image []byte, fields map[string]string) ([]byte, error) {
	body, contentType, err := buildMultipart(image, fields)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, errors.Join(errors.New("failed to prepare HTTP request"), err)
	}
	req.Header.Set("Content-Type", contentType)

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Join(errors.New("HTTP request to external server failed"), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ErrBadStatus{StatusCode: resp.StatusCode}
	}

	responseBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(errors.New("error while reading response body from remote server"), err)
	}
	return responseBytes, nil
}
