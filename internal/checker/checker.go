package checker

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/arbcheck/internal/config"
	"github.com/MrSnakeDoc/arbcheck/internal/device"
	"github.com/MrSnakeDoc/arbcheck/internal/logger"
	"github.com/MrSnakeDoc/arbcheck/internal/matcher"
	"github.com/MrSnakeDoc/arbcheck/internal/models"
	"github.com/MrSnakeDoc/arbcheck/internal/runner"
	"github.com/MrSnakeDoc/arbcheck/internal/service"
	"github.com/MrSnakeDoc/arbcheck/internal/settings"

	"github.com/google/uuid"
)

// Stage names the step a check is in, for spinners and progress lines.
type Stage string

const (
	StageReadingDevice Stage = "Reading device info…"
	StageFetchingDB    Stage = "Fetching database…"
	StageMatching      Stage = "Matching build…"
)

// StageError tags a failure with the step it happened in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type Report struct {
	ID        string            `json:"id"`
	Props     device.Properties `json:"device"`
	Result    matcher.Result    `json:"result"`
	CheckedAt time.Time         `json:"checked_at"`
}

type CheckerController struct {
	Props    device.PropertySource
	Client   service.HTTPClient
	Settings settings.Store
	BaseURL  string
	Now      func() time.Time
	// OnStage, when set, is told about each step before it starts.
	OnStage func(Stage)
}

func New(cfg config.Config, props device.PropertySource, client service.HTTPClient, st settings.Store) *CheckerController {
	if props == nil {
		r := device.NewReader(runner.ExecRunner{}, cfg.Serial, cfg.DeviceTimeout)
		r.Model, r.Build = cfg.Model, cfg.Build
		props = r
	}
	if client == nil {
		client = service.NewHTTPClient(cfg.HTTPTimeout)
	}
	return &CheckerController{
		Props:    props,
		Client:   client,
		Settings: st,
		BaseURL:  cfg.BaseURL,
		Now:      time.Now,
	}
}

// Execute reads the device, fetches the database and matches the build.
// Unsupported devices and unknown builds are successful reports; only
// property, network and decode failures are errors. A successful run
// records the last-check timestamp.
func (c *CheckerController) Execute(ctx context.Context) (*Report, error) {
	id := uuid.NewString()
	log := logger.With("check_id", id)

	c.stage(StageReadingDevice)
	props, err := c.Props.Properties(ctx)
	if err != nil {
		log.Debug("reading device properties failed: %v", err)
		return nil, &StageError{Stage: StageReadingDevice, Err: fmt.Errorf("read device properties: %w", err)}
	}
	log.Debug("device model=%s build=%s", props.Model, props.BuildVersion)

	c.stage(StageFetchingDB)
	db, err := c.FetchDatabase(ctx)
	if err != nil {
		log.Debug("database fetch failed: %v", err)
		return nil, &StageError{Stage: StageFetchingDB, Err: err}
	}

	c.stage(StageMatching)
	res := matcher.Match(db, props.Model, props.BuildVersion)

	report := &Report{
		ID:        id,
		Props:     props,
		Result:    res,
		CheckedAt: c.now(),
	}
	log.Debug("outcome=%s key=%q exact=%t max_arb=%d", res.Outcome, res.MatchedKey, res.Exact, res.MaxARB)

	if c.Settings != nil {
		if err := c.Settings.SetLastCheckTimestamp(ctx, report.CheckedAt.UnixMilli()); err != nil {
			log.Warn("could not record last check time: %v", err)
		}
	}

	return report, nil
}

func (c *CheckerController) FetchDatabase(ctx context.Context) (models.Database, error) {
	return service.FetchDatabase(ctx, c.Client, c.BaseURL)
}

func (c *CheckerController) stage(s Stage) {
	if c.OnStage != nil {
		c.OnStage(s)
	}
}

func (c *CheckerController) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
