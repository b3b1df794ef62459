package recognition

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
)

// RecognitionService posts face images to the external recognition
// backend. Calls use an explicit timeout with a bounded number of
// retries and a fixed delay between attempts.
type RecognitionService struct {
	app    *config.AppConfig
	client *retryablehttp.Client
	logger *logrus.Entry
}

// ImagePart is one image of a registration request.
type ImagePart struct {
	FileName string
	Content  []byte
}

// RegisterResult is the decoded recognition-service response.
type RegisterResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func New(app *config.AppConfig) *RecognitionService {
	client := retryablehttp.NewClient()
	client.Logger = nil

	retries := 3
	if app.Recognition.MaxRetries != nil && *app.Recognition.MaxRetries >= 0 {
		retries = *app.Recognition.MaxRetries
	}
	client.RetryMax = retries

	delay := 2 * time.Second
	if app.Recognition.RetryDelay != nil && *app.Recognition.RetryDelay > 0 {
		delay = *app.Recognition.RetryDelay
	}
	// fixed delay between attempts
	client.RetryWaitMin = delay
	client.RetryWaitMax = delay

	timeout := 15 * time.Second
	if app.Recognition.RequestTimeout != nil && *app.Recognition.RequestTimeout > 0 {
		timeout = *app.Recognition.RequestTimeout
	}
	client.HTTPClient.Timeout = timeout

	return &RecognitionService{
		app:    app,
		client: client,
		logger: app.Logger.WithField("service", "recognition"),
	}
}

// RegisterFace submits the images of one registered face.
func (s *RecognitionService) RegisterFace(ctx context.Context, userId, registeredFaceId string, images []ImagePart) (*RegisterResult, error) {
	if !s.app.Recognition.Enabled {
		return nil, fmt.Errorf("recognition service is disabled")
	}

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)

	fields := map[string]string{
		"user_id":            userId,
		"registered_face_id": registeredFaceId,
		"project_id":         s.app.Recognition.ProjectId,
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	for _, img := range images {
		part, err := w.CreateFormFile("images", img.FileName)
		if err != nil {
			return nil, err
		}
		if _, err = part.Write(img.Content); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, "POST", s.app.Recognition.Url, body.Bytes())
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	res := new(RegisterResult)
	if err = json.Unmarshal(raw, res); err != nil {
		return nil, fmt.Errorf("invalid recognition response: %w", err)
	}
	if resp.StatusCode >= 400 {
		s.logger.Errorf("recognition service returned %d: %s", resp.StatusCode, res.Message)
		return res, fmt.Errorf("recognition service returned status %d", resp.StatusCode)
	}

	return res, nil
}
