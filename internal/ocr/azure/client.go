package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stipsportal/docintel/internal/ocr"
)

// analyzeResult mirrors the slice of the layout-analysis payload we consume:
// full content, per-word confidences, page count, detected languages.
type analyzeResult struct {
	Status        string `json:"status"`
	CreatedOn     string `json:"createdDateTime"`
	LastUpdatedOn string `json:"lastUpdatedDateTime"`
	AnalyzeResult struct {
		Content string `json:"content"`
		Pages   []struct {
			Words []struct {
				Confidence *float64 `json:"confidence"`
			} `json:"words"`
		} `json:"pages"`
		Languages []struct {
			Locale string `json:"locale"`
		} `json:"languages"`
	} `json:"analyzeResult"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Analyze implements ocr.TextExtractor: submits the document to the layout
// model and polls the returned operation until it settles. Unsupported or
// malformed input surfaces as the submit call's error.
func (c *Client) Analyze(ctx context.Context, document []byte) (ocr.AnalysisResult, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("ocr.analyze.start",
		"req_id", rid,
		"model_id", c.cfg.ModelID,
		"bytes", len(document),
	)

	opURL, err := c.submit(ctx, document)
	if err != nil {
		c.logger.Error("ocr.analyze.submit_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return ocr.AnalysisResult{}, err
	}

	res, err := c.poll(ctx, opURL)
	if err != nil {
		c.logger.Error("ocr.analyze.poll_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return ocr.AnalysisResult{}, err
	}

	out := toResult(res)
	out.Duration = time.Since(start)
	c.logger.Info("ocr.analyze.ok",
		"req_id", rid,
		"pages", out.Pages,
		"text_len", len(out.Text),
		"confidence", out.Confidence,
		"elapsed_ms", out.Duration.Milliseconds(),
	)
	return out, nil
}

// submit posts the document bytes and returns the Operation-Location URL.
func (c *Client) submit(ctx context.Context, document []byte) (string, error) {
	endpoint := fmt.Sprintf("%s/formrecognizer/documentModels/%s:analyze?api-version=%s",
		strings.TrimRight(c.cfg.Endpoint, "/"),
		url.PathEscape(c.cfg.ModelID),
		url.QueryEscape(c.cfg.APIVersion),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(document))
	if err != nil {
		return "", err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("document intelligence http error: %w", err)
	}
	defer closeBody(c, resp.Body)

	if resp.StatusCode != http.StatusAccepted {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("document intelligence status %d: %s", resp.StatusCode, string(raw))
	}
	opURL := resp.Header.Get("Operation-Location")
	if opURL == "" {
		return "", fmt.Errorf("document intelligence response missing Operation-Location")
	}
	return opURL, nil
}

// poll fetches the operation result until it succeeds, fails, or the
// configured deadline passes.
func (c *Client) poll(ctx context.Context, opURL string) (analyzeResult, error) {
	deadline := time.Now().Add(c.cfg.Timeout)
	for {
		res, err := c.fetch(ctx, opURL)
		if err != nil {
			return analyzeResult{}, err
		}
		switch res.Status {
		case "succeeded":
			return res, nil
		case "failed":
			if res.Error != nil {
				return analyzeResult{}, fmt.Errorf("analysis failed: %s: %s", res.Error.Code, res.Error.Message)
			}
			return analyzeResult{}, fmt.Errorf("analysis failed")
		}
		if time.Now().After(deadline) {
			return analyzeResult{}, fmt.Errorf("analysis timed out after %s", c.cfg.Timeout)
		}
		select {
		case <-ctx.Done():
			return analyzeResult{}, ctx.Err()
		case <-time.After(c.cfg.PollInterval):
		}
	}
}

func (c *Client) fetch(ctx context.Context, opURL string) (analyzeResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opURL, nil)
	if err != nil {
		return analyzeResult{}, err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return analyzeResult{}, fmt.Errorf("document intelligence poll error: %w", err)
	}
	defer closeBody(c, resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return analyzeResult{}, fmt.Errorf("document intelligence poll status %d: %s", resp.StatusCode, string(raw))
	}
	var res analyzeResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return analyzeResult{}, fmt.Errorf("decode analysis result: %w", err)
	}
	return res, nil
}

func toResult(res analyzeResult) ocr.AnalysisResult {
	var sum float64
	var n int
	for _, p := range res.AnalyzeResult.Pages {
		for _, w := range p.Words {
			if w.Confidence != nil {
				sum += *w.Confidence
				n++
			}
		}
	}
	var confidence float32
	if n > 0 {
		confidence = float32(sum / float64(n))
	}

	language := "en"
	if len(res.AnalyzeResult.Languages) > 0 && res.AnalyzeResult.Languages[0].Locale != "" {
		language = res.AnalyzeResult.Languages[0].Locale
	}

	return ocr.AnalysisResult{
		Text:       strings.TrimSpace(res.AnalyzeResult.Content),
		Pages:      len(res.AnalyzeResult.Pages),
		Confidence: confidence,
		Language:   language,
		AnalyzedOn: res.LastUpdatedOn,
	}
}

func closeBody(c *Client, body io.ReadCloser) {
	if err := body.Close(); err != nil {
		c.logger.Warn("document intelligence response body close error", "error", err)
	}
}
