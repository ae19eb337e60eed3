package decision

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pobyzaarif/goshortcute"
)

type DecisionConfig struct {
	BaseURL           string
	BasicAuthUsername string
	BasicAuthPassword string
}

// DecisionRepository calls the upstream personalization backend. The widget
// payload comes back as raw bytes on purpose: the backend may answer with a
// directive object, a JSON-encoded string, or a plain acknowledgement, and
// normalizing that union is the widget parser's job, not the transport's.
type DecisionRepository struct {
	decisionConfig DecisionConfig
	client         *http.Client
}

func NewDecisionRepository(cfg DecisionConfig) *DecisionRepository {
	return &DecisionRepository{
		decisionConfig: cfg,
		client:         &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *DecisionRepository) GetWidget(ctx context.Context, page, token string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/ai/widget/%s?token=%s",
		r.decisionConfig.BaseURL, url.PathEscape(page), url.QueryEscape(token))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, err
	}
	r.setHeaders(req)

	res, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("widget request returned status %d", res.StatusCode)
	}

	return body, nil
}

func (r *DecisionRepository) TrackPageVisit(ctx context.Context, page, token string) error {
	endpoint := fmt.Sprintf("%s/tracking/page-visit/%s?token=%s",
		r.decisionConfig.BaseURL, url.PathEscape(page), url.QueryEscape(token))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return err
	}
	r.setHeaders(req)

	res, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	// Response body is ignored for control flow; tracking is side effect only.
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("tracking request returned status %d", res.StatusCode)
	}

	return nil
}

func (r *DecisionRepository) setHeaders(req *http.Request) {
	req.Header.Add("Content-Type", "application/json")
	if r.decisionConfig.BasicAuthUsername != "" {
		buildBasicAuth := goshortcute.StringtoBase64Encode(
			r.decisionConfig.BasicAuthUsername + ":" + r.decisionConfig.BasicAuthPassword)
		req.Header.Add("Authorization", fmt.Sprintf("Basic %s", buildBasicAuth))
	}
}
