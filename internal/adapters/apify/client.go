// Package apify implements the ScraperClient port against the Apify actor
// platform REST API.
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JulienDevoi/sdrleads/config"
	"github.com/JulienDevoi/sdrleads/internal/core"
	"github.com/JulienDevoi/sdrleads/internal/domain/model"
	apperrors "github.com/JulienDevoi/sdrleads/internal/errors"
)

// prospectsFileName labels the export file on the actor side.
const prospectsFileName = "Apollo Prospects"

// Client talks to the Apify API for one configured actor.
type Client struct {
	token   string
	baseURL string
	actorID string
	client  *http.Client
}

// NewClient builds an Apify client from configuration. The token may be
// empty; calls then fail with a configuration error so the rest of the API
// stays usable without the integration.
func NewClient(cfg config.ApifyConfig, hc *http.Client) *Client {
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		token:   cfg.Token,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		actorID: cfg.ActorID,
		client:  hc,
	}
}

// runEnvelope is the Apify response wrapper around run objects.
type runEnvelope struct {
	Data runData `json:"data"`
}

type runData struct {
	ID               string         `json:"id"`
	Status           string         `json:"status"`
	StartedAt        *time.Time     `json:"startedAt"`
	FinishedAt       *time.Time     `json:"finishedAt"`
	Stats            map[string]any `json:"stats"`
	DefaultDatasetID string         `json:"defaultDatasetId"`
}

func (d *runData) toActorRun() *core.ActorRun {
	run := &core.ActorRun{
		ID:         d.ID,
		Status:     model.RunStatus(d.Status),
		StartedAt:  d.StartedAt,
		FinishedAt: d.FinishedAt,
		Stats:      d.Stats,
	}
	if run.Stats == nil {
		run.Stats = map[string]any{}
	}
	if d.DefaultDatasetID != "" {
		id := d.DefaultDatasetID
		run.DefaultDatasetID = &id
	}
	return run
}

// StartRun submits an actor run without waiting for completion.
func (c *Client) StartRun(ctx context.Context, params core.StartRunParams) (*core.ActorRun, error) {
	if err := c.checkConfigured(); err != nil {
		return nil, err
	}

	fileName := params.FileName
	if fileName == "" {
		fileName = prospectsFileName
	}
	payload := map[string]any{
		"getPersonalEmails": true,
		"getWorkEmails":     true,
		"totalRecords":      params.TotalRecords,
		"url":               params.SearchURL,
		"fileName":          fileName,
		"waitForFinish":     false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode run input: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/acts/%s/runs?token=%s",
		c.baseURL, url.PathEscape(c.actorID), url.QueryEscape(c.token))

	var env runEnvelope
	if err := c.doJSON(ctx, http.MethodPost, endpoint, body, &env); err != nil {
		return nil, err
	}
	if env.Data.ID == "" {
		return nil, apperrors.Upstream("scraper run response missing run id", nil)
	}
	return env.Data.toActorRun(), nil
}

// GetRun fetches the current state of an actor run.
func (c *Client) GetRun(ctx context.Context, runID string) (*core.ActorRun, error) {
	if err := c.checkConfigured(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(runID) == "" {
		return nil, apperrors.Validation("run id is required")
	}

	endpoint := fmt.Sprintf("%s/v2/actor-runs/%s?token=%s",
		c.baseURL, url.PathEscape(runID), url.QueryEscape(c.token))

	var env runEnvelope
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &env); err != nil {
		return nil, err
	}
	return env.Data.toActorRun(), nil
}

// GetDatasetItems fetches the raw result records of a run's dataset.
func (c *Client) GetDatasetItems(ctx context.Context, datasetID string) ([]map[string]any, error) {
	if err := c.checkConfigured(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(datasetID) == "" {
		return nil, apperrors.Validation("dataset id is required")
	}

	endpoint := fmt.Sprintf("%s/v2/datasets/%s/items?clean=true&format=json&token=%s",
		c.baseURL, url.PathEscape(datasetID), url.QueryEscape(c.token))

	var items []map[string]any
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) checkConfigured() error {
	if c.token == "" {
		return apperrors.Configuration("apify api token is not configured")
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create scraper request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "scraper request timed out")
		}
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, "scraper request failed")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return apperrors.Upstreamf("scraper API %s: %s",
			resp.Status, strings.TrimSpace(string(respBody)))
	}

	if out == nil {
		return nil
	}
	if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
		return apperrors.Wrap(decodeErr, apperrors.ErrCodeUpstream, "decode scraper response")
	}
	return nil
}
