package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/arbcheck/internal/globalconfig"
	"github.com/MrSnakeDoc/arbcheck/internal/logger"
	"github.com/MrSnakeDoc/arbcheck/internal/models"
	"github.com/MrSnakeDoc/arbcheck/internal/utils"
)

var ErrInsecureURL = utils.ErrInsecureURL

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type DefaultHTTPClient struct{ *http.Client }

func NewHTTPClient(timeout time.Duration) *DefaultHTTPClient {
	return &DefaultHTTPClient{Client: &http.Client{Timeout: timeout}}
}

func MakeHTTPRequest(ctx context.Context, client HTTPClient, url string) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsedURL, err := utils.ParseSecureURL(url)
	if err != nil {
		logger.Debug("Failed to parse URL %q: %v", url, err)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedURL.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", globalconfig.AppName+"/"+globalconfig.Version)

	resp, err := client.Do(req)
	if err != nil {
		logger.Debug("Failed to perform request: %v", err)
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		utils.Try(resp.Body.Close)
		logger.Debug("Received non-200 response: %d", resp.StatusCode)
		return nil, fmt.Errorf("non-200 response: %d", resp.StatusCode)
	}

	return resp, nil
}

// FetchDatabase downloads and decodes <baseURL>/database.json.
func FetchDatabase(ctx context.Context, client HTTPClient, baseURL string) (models.Database, error) {
	url := utils.JoinURL(baseURL, globalconfig.DatabaseFile)
	start := time.Now()

	resp, err := MakeHTTPRequest(ctx, client, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer utils.Try(resp.Body.Close)

	body, err := utils.MaybeGunzip(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("open response body: %w", err)
	}

	data, err := utils.LimitedReadAll(body, globalconfig.MaxDatabaseBytes)
	if err != nil {
		return nil, fmt.Errorf("read database: %w", err)
	}

	var db models.Database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("decode database: %w", err)
	}
	if err := db.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database: %w", err)
	}

	logger.Debug("fetched database: %d models, %s in %s",
		len(db), utils.HumanSize(int64(len(data))), time.Since(start).Truncate(time.Millisecond))
	return db, nil
}
